package dto

import "github.com/google/uuid"

type ComparativeQuery struct {
	Topic         string `query:"topic"`
	Jurisdictions string `query:"jurisdictions"` // comma separated, e.g. "ES,FR,UK"
}

type ComparativeEntryDTO struct {
	Id           uuid.UUID `json:"id"`
	Jurisdiction string    `json:"jurisdiction"`
	Requirement  string    `json:"requirement"`
	Status       string    `json:"status"`
	Value        string    `json:"value,omitempty"`
	Notes        string    `json:"notes,omitempty"`
}

// ComparativeMatrixResponse groups entries per jurisdiction for a topic so
// the client can render the matrix column by column.
type ComparativeMatrixResponse struct {
	Topic         string                           `json:"topic"`
	Jurisdictions []string                         `json:"jurisdictions"`
	Entries       map[string][]ComparativeEntryDTO `json:"entries"`
}
