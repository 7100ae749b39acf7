package types

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// Flag selects which crawl a search request runs
type Flag string

const (
	// FlagTarget returns the prior employers of people who recently joined the parent company.
	FlagTarget Flag = "TARGET"
	// FlagNotTarget returns candidates who do not currently work at the parent company.
	FlagNotTarget Flag = "NOT_TARGET"
	// FlagAll returns every candidate found.
	FlagAll Flag = "ALL"
)

// SearchRequest represents the request body for /get-candidate.
// Field presence is enforced by the request schema; empty strings are allowed.
type SearchRequest struct {
	ParentCompany string   `json:"parent_company,omitempty" validate:"required_unless=Flag ALL"`
	Position      string   `json:"position"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	Country       string   `json:"country"`
	Skills        []string `json:"skills"`
	Flag          Flag     `json:"flag" validate:"required,oneof=TARGET NOT_TARGET ALL"`
}

// UnmarshalJSON accepts parentCompany as an alias of parent_company.
func (r *SearchRequest) UnmarshalJSON(data []byte) error {
	type plain SearchRequest
	var aux struct {
		plain
		ParentCompanyCamel string `json:"parentCompany"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = SearchRequest(aux.plain)
	if r.ParentCompany == "" {
		r.ParentCompany = aux.ParentCompanyCamel
	}
	return nil
}

// Validate validates the SearchRequest using the validator.
func (r *SearchRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
