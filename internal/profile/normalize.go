package profile

import (
	"github.com/jonathan/talent-scout/internal/dates"
	"github.com/jonathan/talent-scout/internal/types"
)

// Normalize maps a raw profile record into a Candidate.
// Missing fields default to empty values; a nil record yields an empty candidate.
func Normalize(raw *RawProfile, profileURL string) types.Candidate {
	if raw == nil {
		raw = &RawProfile{}
	}

	experience, current := NormalizeExperience(raw.Experience)

	return types.Candidate{
		FirstName:      raw.FirstName,
		LastName:       raw.LastName,
		Headline:       raw.Headline,
		Bio:            raw.Summary,
		Location:       raw.GeoLocationName + ", " + raw.LocationName,
		Skills:         normalizeSkills(raw.Skills),
		Education:      normalizeEducation(raw.Education),
		Experience:     experience,
		LinkedInURL:    profileURL,
		CurrentCompany: current,
		Certificates:   normalizeCertifications(raw.Certifications),
		IsStudent:      raw.Student,
	}
}

// NormalizeExperience converts positions in source order and returns the
// ongoing position as the current company. When several positions are ongoing
// the last one wins.
func NormalizeExperience(raw []RawExperience) ([]types.ExperienceEntry, *types.ExperienceEntry) {
	entries := make([]types.ExperienceEntry, 0, len(raw))
	var current *types.ExperienceEntry

	for _, exp := range raw {
		interval := exp.TimePeriod.interval()
		entry := types.ExperienceEntry{
			Company:        exp.CompanyName,
			Title:          exp.Title,
			Location:       exp.LocationName,
			Interval:       interval,
			IsCurrent:      interval.IsOngoing(),
			CompanyLogoURL: exp.CompanyLogoURL,
			TotalMonths:    durationOf(interval),
		}
		if entry.IsCurrent {
			c := entry
			current = &c
		}
		entries = append(entries, entry)
	}

	return entries, current
}

// normalizeSkills keeps skill names verbatim
func normalizeSkills(raw []RawSkill) []string {
	skills := make([]string, 0, len(raw))
	for _, s := range raw {
		skills = append(skills, s.Name)
	}
	return skills
}

func normalizeEducation(raw []RawEducation) []types.EducationEntry {
	entries := make([]types.EducationEntry, 0, len(raw))
	for _, edu := range raw {
		interval := edu.TimePeriod.interval()
		interval.Start = interval.Start.YearOnly()
		if interval.End != nil {
			end := interval.End.YearOnly()
			interval.End = dates.OptionalEnd(end)
		}
		entries = append(entries, types.EducationEntry{
			School:   edu.SchoolName,
			Degree:   edu.DegreeName,
			Interval: interval,
		})
	}
	return entries
}

func normalizeCertifications(raw []RawCertification) []types.CertificationEntry {
	entries := make([]types.CertificationEntry, 0, len(raw))
	for _, cert := range raw {
		interval := cert.TimePeriod.interval()
		entries = append(entries, types.CertificationEntry{
			Name:             cert.Name,
			IssuingAuthority: cert.Authority,
			Interval:         interval,
			CertificateURL:   cert.URL,
			IsActive:         interval.IsOngoing(),
		})
	}
	return entries
}

// durationOf returns nil when the duration is unknown
func durationOf(interval dates.Interval) *int {
	months, ok := interval.DurationMonths()
	if !ok {
		return nil
	}
	return &months
}
