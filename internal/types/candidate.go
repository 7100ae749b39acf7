// Package types provides type definitions for structured data used throughout the talent-scout system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"

	"github.com/jonathan/talent-scout/internal/dates"
)

// ExperienceEntry represents one position in a candidate's career history
type ExperienceEntry struct {
	Company        string         `json:"company"`
	Title          string         `json:"title"`
	Location       string         `json:"location"`
	Interval       dates.Interval `json:"-"`
	IsCurrent      bool           `json:"is_current"`
	CompanyLogoURL string         `json:"company_logo"`
	TotalMonths    *int           `json:"total_months"`
}

// EducationEntry represents a school attended. Only years are kept.
type EducationEntry struct {
	School   string         `json:"school"`
	Degree   string         `json:"degree"`
	Interval dates.Interval `json:"-"`
}

// CertificationEntry represents a certificate held by the candidate
type CertificationEntry struct {
	Name             string         `json:"name"`
	IssuingAuthority string         `json:"platform"`
	Interval         dates.Interval `json:"-"`
	CertificateURL   string         `json:"certificate_url"`
	IsActive         bool           `json:"is_active"`
}

// Candidate is the normalized summary of one fetched profile.
// Email and Phone are never derivable from the profile source and stay nil.
type Candidate struct {
	FirstName      string               `json:"first_name"`
	LastName       string               `json:"last_name"`
	Headline       string               `json:"headline"`
	Bio            string               `json:"bio"`
	Location       string               `json:"location"`
	Skills         []string             `json:"skills"`
	Education      []EducationEntry     `json:"education"`
	Experience     []ExperienceEntry    `json:"experience"`
	LinkedInURL    string               `json:"linkedin_url"`
	CurrentCompany *ExperienceEntry     `json:"current_company"`
	Certificates   []CertificationEntry `json:"certificates"`
	IsStudent      bool                 `json:"is_student"`
	Email          *string              `json:"email"`
	Phone          *string              `json:"phone"`
}

// The interval is flattened into start_date/end_date on the wire, with a null
// end_date for ongoing entries.

type experienceJSON struct {
	Company        string             `json:"company"`
	Title          string             `json:"title"`
	Location       string             `json:"location"`
	StartDate      dates.PartialDate  `json:"start_date"`
	EndDate        *dates.PartialDate `json:"end_date"`
	IsCurrent      bool               `json:"is_current"`
	CompanyLogoURL string             `json:"company_logo"`
	TotalMonths    *int               `json:"total_months"`
}

// MarshalJSON implements json.Marshaler
func (e ExperienceEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(experienceJSON{
		Company:        e.Company,
		Title:          e.Title,
		Location:       e.Location,
		StartDate:      e.Interval.Start,
		EndDate:        e.Interval.End,
		IsCurrent:      e.IsCurrent,
		CompanyLogoURL: e.CompanyLogoURL,
		TotalMonths:    e.TotalMonths,
	})
}

// UnmarshalJSON implements json.Unmarshaler
func (e *ExperienceEntry) UnmarshalJSON(data []byte) error {
	var raw experienceJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = ExperienceEntry{
		Company:        raw.Company,
		Title:          raw.Title,
		Location:       raw.Location,
		Interval:       dates.Interval{Start: raw.StartDate, End: raw.EndDate},
		IsCurrent:      raw.IsCurrent,
		CompanyLogoURL: raw.CompanyLogoURL,
		TotalMonths:    raw.TotalMonths,
	}
	return nil
}

type educationJSON struct {
	School    string             `json:"school"`
	Degree    string             `json:"degree"`
	StartDate dates.PartialDate  `json:"start_date"`
	EndDate   *dates.PartialDate `json:"end_date"`
}

// MarshalJSON implements json.Marshaler
func (e EducationEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(educationJSON{
		School:    e.School,
		Degree:    e.Degree,
		StartDate: e.Interval.Start,
		EndDate:   e.Interval.End,
	})
}

// UnmarshalJSON implements json.Unmarshaler
func (e *EducationEntry) UnmarshalJSON(data []byte) error {
	var raw educationJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = EducationEntry{
		School:   raw.School,
		Degree:   raw.Degree,
		Interval: dates.Interval{Start: raw.StartDate, End: raw.EndDate},
	}
	return nil
}

type certificationJSON struct {
	Name             string             `json:"name"`
	IssuingAuthority string             `json:"platform"`
	StartDate        dates.PartialDate  `json:"start_date"`
	EndDate          *dates.PartialDate `json:"end_date"`
	IsActive         bool               `json:"is_active"`
	CertificateURL   string             `json:"certificate_url"`
}

// MarshalJSON implements json.Marshaler
func (c CertificationEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(certificationJSON{
		Name:             c.Name,
		IssuingAuthority: c.IssuingAuthority,
		StartDate:        c.Interval.Start,
		EndDate:          c.Interval.End,
		IsActive:         c.IsActive,
		CertificateURL:   c.CertificateURL,
	})
}

// UnmarshalJSON implements json.Unmarshaler
func (c *CertificationEntry) UnmarshalJSON(data []byte) error {
	var raw certificationJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = CertificationEntry{
		Name:             raw.Name,
		IssuingAuthority: raw.IssuingAuthority,
		Interval:         dates.Interval{Start: raw.StartDate, End: raw.EndDate},
		IsActive:         raw.IsActive,
		CertificateURL:   raw.CertificateURL,
	}
	return nil
}
