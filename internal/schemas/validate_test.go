package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedSchemas_Compile(t *testing.T) {
	for _, name := range []string{SearchRequest, CandidateList, PriorEmployerList} {
		t.Run(name, func(t *testing.T) {
			_, err := load(name)
			require.NoError(t, err)
		})
	}
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("does_not_exist", []byte(`{}`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidate_SearchRequest(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantError bool
		field     string
	}{
		{
			name: "full target request",
			body: `{"parentCompany":"Google","position":"Data Scientist","city":"Austin","state":"TX","country":"USA","skills":["Python"],"flag":"TARGET"}`,
		},
		{
			name: "snake case parent company",
			body: `{"parent_company":"Google","position":"Data Scientist","city":"Austin","state":"TX","country":"USA","skills":[],"flag":"NOT_TARGET"}`,
		},
		{
			name: "empty strings accepted",
			body: `{"position":"","city":"","state":"","country":"","skills":[],"flag":"ALL"}`,
		},
		{
			name:      "missing position",
			body:      `{"city":"Austin","state":"TX","country":"USA","skills":[],"flag":"ALL"}`,
			wantError: true,
			field:     "(root)",
		},
		{
			name:      "missing state",
			body:      `{"position":"Engineer","city":"Austin","country":"USA","skills":[],"flag":"ALL"}`,
			wantError: true,
			field:     "(root)",
		},
		{
			name:      "missing skills",
			body:      `{"position":"Engineer","city":"Austin","state":"TX","country":"USA","flag":"ALL"}`,
			wantError: true,
			field:     "(root)",
		},
		{
			name:      "unknown flag",
			body:      `{"position":"Engineer","city":"Austin","state":"TX","country":"USA","skills":[],"flag":"SOME"}`,
			wantError: true,
			field:     "flag",
		},
		{
			name:      "skills must be strings",
			body:      `{"position":"Engineer","city":"Austin","state":"TX","country":"USA","flag":"ALL","skills":[1,2]}`,
			wantError: true,
			field:     "skills.0",
		},
		{
			name:      "not an object",
			body:      `["Engineer"]`,
			wantError: true,
			field:     "(root)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(SearchRequest, []byte(tt.body))
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			fields := make([]string, 0, len(validationErr.Errors))
			for _, fe := range validationErr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidate_MalformedJSON(t *testing.T) {
	err := Validate(SearchRequest, []byte(`{ invalid json }`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Summary(), "invalid JSON")
}

func TestValidate_CandidateList(t *testing.T) {
	valid := `[{
		"first_name": "Jane", "last_name": "Doe", "headline": "", "bio": "", "location": ", ",
		"skills": [], "education": [], "experience": [
			{"company": "Acme", "title": "Dev", "location": "", "start_date": {"year": 2020, "month": 1},
			 "end_date": null, "is_current": true, "company_logo": "", "total_months": null}
		],
		"linkedin_url": "https://www.linkedin.com/in/jane", "current_company": null,
		"certificates": [], "is_student": false, "email": null, "phone": null
	}]`
	assert.NoError(t, Validate(CandidateList, []byte(valid)))
	assert.NoError(t, Validate(CandidateList, []byte(`[]`)))

	err := Validate(CandidateList, []byte(`[{"first_name": "Jane"}]`))
	require.Error(t, err)
}

func TestValidate_PriorEmployerList(t *testing.T) {
	valid := `[{"company": "Acme", "title": "Dev", "location": "Austin",
		"start_date": {"year": 2020, "month": 1}, "end_date": {"year": 2024, "month": 12},
		"is_current": false, "company_logo": "", "total_months": 59}]`
	assert.NoError(t, Validate(PriorEmployerList, []byte(valid)))

	current := `[{"company": "Acme", "title": "Dev", "location": "",
		"start_date": {"year": 2020, "month": 1}, "end_date": null,
		"is_current": true, "company_logo": "", "total_months": null}]`
	assert.Error(t, Validate(PriorEmployerList, []byte(current)))
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "position", Message: "is required"},
			{Field: "flag", Message: "must be one of the following"},
		},
	}

	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "position")
	assert.Equal(t, "position: is required; flag: must be one of the following", err.Summary())
}
