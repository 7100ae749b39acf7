package observability

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/jonathan/talent-scout/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintSearch(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSearch("TARGET", "Acme", "https://www.google.com/search?q=x")
	output := buf.String()

	assert.Contains(t, output, "CANDIDATE SEARCH")
	assert.Contains(t, output, "TARGET")
	assert.Contains(t, output, "Acme")
}

func TestPrintCandidates(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	candidates := []types.Candidate{
		{
			FirstName:      "Ann",
			LastName:       "Lee",
			Location:       "Austin, Texas",
			Skills:         []string{"Go", "Kubernetes"},
			CurrentCompany: &types.ExperienceEntry{Company: "Acme", Title: "Engineer"},
		},
		{FirstName: "Bob", LastName: "Ray", Headline: "Looking for work"},
	}

	p.PrintCandidates(candidates)
	output := buf.String()

	assert.Contains(t, output, "Total candidates: 2")
	assert.Contains(t, output, "Ann Lee")
	assert.Contains(t, output, "Engineer @ Acme")
	assert.Contains(t, output, "Looking for work")
	assert.Contains(t, output, "Go, Kubernetes")
}

func TestPrintCandidates_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintCandidates(nil)

	assert.Contains(t, buf.String(), "No candidates found")
}

func TestPrintCandidates_Overflow(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	candidates := make([]types.Candidate, 8)
	for i := range candidates {
		candidates[i] = types.Candidate{FirstName: fmt.Sprintf("Person%d", i)}
	}
	p.PrintCandidates(candidates)
	output := buf.String()

	assert.Contains(t, output, "Person4")
	assert.NotContains(t, output, "Person5")
	assert.Contains(t, output, "... and 3 more candidates")
}

func TestPrintPriorEmployers(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintPriorEmployers("Acme", []types.ExperienceEntry{
		{Company: "Globex"},
		{Company: "Initech"},
		{Company: "Globex"},
	})
	output := buf.String()

	assert.Contains(t, output, "PRIOR EMPLOYERS OF ACME STAFF")
	assert.Contains(t, output, "Total entries: 3")
	assert.Contains(t, output, "Globex (2)")
	assert.Contains(t, output, "Initech (1)")
	assert.Less(t, strings.Index(output, "Globex"), strings.Index(output, "Initech"))
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 100))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)))
	}
	assert.Contains(t, buf.String(), "...")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ééé...", truncate("éééééééé", 6))
}
