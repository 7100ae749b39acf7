// Package profile turns raw profile records from the profile data source into
// normalized candidates and infers recent job transitions from career histories.
package profile

import "github.com/jonathan/talent-scout/internal/dates"

// RawProfile is a profile record as returned by the profile data source.
// Every field is optional.
type RawProfile struct {
	FirstName       string             `json:"firstName"`
	LastName        string             `json:"lastName"`
	Headline        string             `json:"headline"`
	Summary         string             `json:"summary"`
	GeoLocationName string             `json:"geoLocationName"`
	LocationName    string             `json:"locationName"`
	Student         bool               `json:"student"`
	Skills          []RawSkill         `json:"skills"`
	Education       []RawEducation     `json:"education"`
	Experience      []RawExperience    `json:"experience"`
	Certifications  []RawCertification `json:"certifications"`
}

// RawSkill is a skill endorsement entry
type RawSkill struct {
	Name string `json:"name"`
}

// RawEducation is an education entry
type RawEducation struct {
	SchoolName string         `json:"schoolName"`
	DegreeName string         `json:"degreeName"`
	TimePeriod *RawTimePeriod `json:"timePeriod"`
}

// RawExperience is a position entry
type RawExperience struct {
	CompanyName    string         `json:"companyName"`
	Title          string         `json:"title"`
	LocationName   string         `json:"locationName"`
	CompanyLogoURL string         `json:"companyLogoUrl"`
	TimePeriod     *RawTimePeriod `json:"timePeriod"`
}

// RawCertification is a certification entry
type RawCertification struct {
	Name       string         `json:"name"`
	Authority  string         `json:"authority"`
	URL        string         `json:"url"`
	TimePeriod *RawTimePeriod `json:"timePeriod"`
}

// RawTimePeriod holds the optional start and end of an entry
type RawTimePeriod struct {
	StartDate *RawDate `json:"startDate"`
	EndDate   *RawDate `json:"endDate"`
}

// RawDate is a date whose components may each be missing
type RawDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (d *RawDate) partial() dates.PartialDate {
	if d == nil {
		return dates.PartialDate{}
	}
	return dates.PartialDate{Year: d.Year, Month: d.Month}
}

// interval converts a time period, treating an absent or empty end date as ongoing.
func (p *RawTimePeriod) interval() dates.Interval {
	if p == nil {
		return dates.Interval{}
	}
	return dates.Interval{
		Start: p.StartDate.partial(),
		End:   dates.OptionalEnd(p.EndDate.partial()),
	}
}
