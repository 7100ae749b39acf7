// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/talent-scout/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSearch outputs the search that is about to run.
func (p *Printer) PrintSearch(flag, parentCompany, searchURL string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Mode:     %s\n", flag))
	if parentCompany != "" {
		sb.WriteString(fmt.Sprintf("Company:  %s\n", parentCompany))
	}
	sb.WriteString(fmt.Sprintf("URL:      %s", searchURL))
	p.printBox("CANDIDATE SEARCH", sb.String())
}

// PrintCandidates outputs the first candidates found with their current role.
func (p *Printer) PrintCandidates(candidates []types.Candidate) {
	if len(candidates) == 0 {
		p.printBox("CANDIDATES", "No candidates found")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total candidates: %d\n\n", len(candidates)))

	count := min(len(candidates), maxItemsToShow)
	for i := 0; i < count; i++ {
		c := candidates[i]
		sb.WriteString(fmt.Sprintf("#%d  %s %s\n", i+1, c.FirstName, c.LastName))
		if c.CurrentCompany != nil {
			sb.WriteString(fmt.Sprintf("    %s @ %s\n", c.CurrentCompany.Title, c.CurrentCompany.Company))
		} else if c.Headline != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", c.Headline))
		}
		if c.Location != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", c.Location))
		}
		if len(c.Skills) > 0 {
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", truncate(strings.Join(c.Skills, ", "), 40)))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(candidates) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(candidates)-maxItemsToShow))
	}

	p.printBox("CANDIDATES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPriorEmployers outputs the employers held just before joining the target company.
func (p *Printer) PrintPriorEmployers(parentCompany string, entries []types.ExperienceEntry) {
	title := "PRIOR EMPLOYERS"
	if parentCompany != "" {
		title = fmt.Sprintf("PRIOR EMPLOYERS OF %s STAFF", strings.ToUpper(parentCompany))
	}
	if len(entries) == 0 {
		p.printBox(title, "No prior employers found")
		return
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, e := range entries {
		if counts[e.Company] == 0 {
			order = append(order, e.Company)
		}
		counts[e.Company]++
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total entries: %d\n\n", len(entries)))
	count := min(len(order), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("• %s (%d)\n", order[i], counts[order[i]]))
	}
	if len(order) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more companies", len(order)-maxItemsToShow))
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// truncate shortens s to at most width runes, marking the cut with "...".
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}
