package profile

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/talent-scout/internal/dates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullProfileJSON = `{
	"firstName": "Jane",
	"lastName": "Doe",
	"headline": "Data Scientist at Google",
	"summary": "Numbers person.",
	"geoLocationName": "San Francisco Bay Area",
	"locationName": "United States",
	"student": false,
	"skills": [{"name": "Python"}, {"name": "python"}, {"name": "Machine Learning"}],
	"education": [
		{"schoolName": "MIT", "degreeName": "BSc", "timePeriod": {"startDate": {"year": 2012, "month": 9}, "endDate": {"year": 2016, "month": 6}}}
	],
	"experience": [
		{"companyName": "Google", "title": "Data Scientist", "locationName": "Mountain View", "companyLogoUrl": "https://logo/google.png",
		 "timePeriod": {"startDate": {"year": 2024, "month": 9}}},
		{"companyName": "Acme", "title": "Analyst", "locationName": "Boston",
		 "timePeriod": {"startDate": {"year": 2020, "month": 1}, "endDate": {"year": 2024, "month": 8}}}
	],
	"certifications": [
		{"name": "TensorFlow Developer", "authority": "Google", "url": "https://cert/1", "timePeriod": {"startDate": {"year": 2021, "month": 3}}},
		{"name": "AWS ML", "authority": "Amazon", "timePeriod": {"startDate": {"year": 2019, "month": 1}, "endDate": {"year": 2022, "month": 1}}}
	]
}`

func loadRaw(t *testing.T, doc string) *RawProfile {
	t.Helper()
	var raw RawProfile
	require.NoError(t, json.Unmarshal([]byte(doc), &raw))
	return &raw
}

func TestNormalize_FullProfile(t *testing.T) {
	candidate := Normalize(loadRaw(t, fullProfileJSON), "https://www.linkedin.com/in/jane-doe")

	assert.Equal(t, "Jane", candidate.FirstName)
	assert.Equal(t, "Doe", candidate.LastName)
	assert.Equal(t, "Numbers person.", candidate.Bio)
	assert.Equal(t, "San Francisco Bay Area, United States", candidate.Location)
	assert.Equal(t, "https://www.linkedin.com/in/jane-doe", candidate.LinkedInURL)
	assert.Equal(t, []string{"Python", "python", "Machine Learning"}, candidate.Skills, "skills are kept verbatim")
	assert.Nil(t, candidate.Email)
	assert.Nil(t, candidate.Phone)

	require.Len(t, candidate.Experience, 2)
	assert.Equal(t, "Google", candidate.Experience[0].Company, "source order is preserved")
	assert.True(t, candidate.Experience[0].IsCurrent)
	assert.Nil(t, candidate.Experience[0].TotalMonths)
	assert.Equal(t, "https://logo/google.png", candidate.Experience[0].CompanyLogoURL)

	acme := candidate.Experience[1]
	assert.False(t, acme.IsCurrent)
	require.NotNil(t, acme.TotalMonths)
	assert.Equal(t, 55, *acme.TotalMonths)

	require.NotNil(t, candidate.CurrentCompany)
	assert.Equal(t, "Google", candidate.CurrentCompany.Company)

	require.Len(t, candidate.Education, 1)
	assert.Equal(t, dates.PartialDate{Year: 2012}, candidate.Education[0].Interval.Start)
	require.NotNil(t, candidate.Education[0].Interval.End)
	assert.Equal(t, dates.PartialDate{Year: 2016}, *candidate.Education[0].Interval.End)

	require.Len(t, candidate.Certificates, 2)
	assert.True(t, candidate.Certificates[0].IsActive)
	assert.Equal(t, "Google", candidate.Certificates[0].IssuingAuthority)
	assert.False(t, candidate.Certificates[1].IsActive)
}

func TestNormalize_EmptyRecordNeverFails(t *testing.T) {
	for _, raw := range []*RawProfile{nil, {}, loadRaw(t, `{}`)} {
		candidate := Normalize(raw, "")

		assert.Equal(t, []string{}, candidate.Skills)
		assert.Empty(t, candidate.Education)
		assert.NotNil(t, candidate.Education)
		assert.Empty(t, candidate.Experience)
		assert.NotNil(t, candidate.Experience)
		assert.Empty(t, candidate.Certificates)
		assert.Nil(t, candidate.CurrentCompany)
		assert.False(t, candidate.IsStudent)
		assert.Equal(t, ", ", candidate.Location, "location join is literal even when both parts are empty")
	}
}

func TestNormalize_EmptyEndDateMeansOngoing(t *testing.T) {
	raw := loadRaw(t, `{"experience": [
		{"companyName": "Initech", "title": "Engineer", "timePeriod": {"startDate": {"year": 2022, "month": 2}, "endDate": {}}}
	]}`)

	candidate := Normalize(raw, "")

	require.Len(t, candidate.Experience, 1)
	assert.True(t, candidate.Experience[0].IsCurrent)
	assert.Nil(t, candidate.Experience[0].Interval.End)
	require.NotNil(t, candidate.CurrentCompany)
	assert.Equal(t, "Initech", candidate.CurrentCompany.Company)
}

func TestNormalize_MissingMonthsLeaveDurationUnknown(t *testing.T) {
	raw := loadRaw(t, `{"experience": [
		{"companyName": "Globex", "title": "Engineer", "timePeriod": {"startDate": {"year": 2018}, "endDate": {"year": 2020, "month": 4}}},
		{"companyName": "Hooli", "title": "Engineer", "timePeriod": {"startDate": {"year": 2015, "month": 3}, "endDate": {"year": 2018}}}
	]}`)

	candidate := Normalize(raw, "")

	require.Len(t, candidate.Experience, 2)
	for _, exp := range candidate.Experience {
		assert.False(t, exp.IsCurrent, exp.Company)
		assert.Nil(t, exp.TotalMonths, exp.Company)
	}
	assert.Nil(t, candidate.CurrentCompany)
}

func TestNormalize_MissingTimePeriod(t *testing.T) {
	raw := loadRaw(t, `{"experience": [{"companyName": "Umbrella"}]}`)

	candidate := Normalize(raw, "")

	require.Len(t, candidate.Experience, 1)
	assert.True(t, candidate.Experience[0].IsCurrent)
	assert.True(t, candidate.Experience[0].Interval.Start.IsZero())
}

func TestNormalizeExperience_LastOngoingWins(t *testing.T) {
	raw := []RawExperience{
		{CompanyName: "First", TimePeriod: &RawTimePeriod{StartDate: &RawDate{Year: 2023, Month: 1}}},
		{CompanyName: "Closed", TimePeriod: &RawTimePeriod{StartDate: &RawDate{Year: 2020, Month: 1}, EndDate: &RawDate{Year: 2022, Month: 12}}},
		{CompanyName: "Second", TimePeriod: &RawTimePeriod{StartDate: &RawDate{Year: 2021, Month: 6}}},
	}

	entries, current := NormalizeExperience(raw)

	require.Len(t, entries, 3)
	require.NotNil(t, current)
	assert.Equal(t, "Second", current.Company)
}
