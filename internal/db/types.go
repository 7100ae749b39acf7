package db

import (
	"time"

	"github.com/google/uuid"
)

// Search run statuses
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// SearchRunInput is the search request recorded when a run starts
type SearchRunInput struct {
	Flag          string
	ParentCompany string
	Position      string
	City          string
	State         string
	Country       string
	Skills        []string
}

// SearchRun represents a search run record
type SearchRun struct {
	ID            uuid.UUID  `json:"id"`
	Flag          string     `json:"flag"`
	ParentCompany string     `json:"parent_company,omitempty"`
	Position      string     `json:"position"`
	City          string     `json:"city"`
	State         string     `json:"state"`
	Country       string     `json:"country"`
	Skills        []string   `json:"skills"`
	Status        string     `json:"status"`
	ResultCount   int        `json:"result_count"`
	ErrorMessage  *string    `json:"error_message,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}
