package model

import "time"

// MatchRequest is the body of the match and hint endpoints
type MatchRequest struct {
	Text             string            `json:"text" validate:"max=20000"`
	ManufacturerHint *ManufacturerHint `json:"manufacturer_hint,omitempty"`
}

// DisplayResponse renders a single reference
type DisplayResponse struct {
	Input     string   `json:"input"`
	Canon     string   `json:"canon"`
	Display   string   `json:"display"`
	InCatalog bool     `json:"in_catalog"`
	RichData  RichData `json:"rich_data"`
}

// SourceStatus reports what one catalog source contributed
type SourceStatus struct {
	Name       string `json:"name"`
	Loaded     bool   `json:"loaded"`
	Canonicals int    `json:"canonicals"`
	Error      string `json:"error,omitempty"`
}

// CatalogStatsResponse describes the loaded snapshot
type CatalogStatsResponse struct {
	Canonicals int            `json:"canonicals"`
	Preferred  int            `json:"preferred"`
	RichData   int            `json:"rich_data"`
	LoadedAt   time.Time      `json:"loaded_at"`
	Sources    []SourceStatus `json:"sources"`
}

// HealthResponse is the health check payload
type HealthResponse struct {
	Status    string    `json:"status"`
	Catalog   int       `json:"catalog"`
	Database  string    `json:"database,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse is returned on any client or server error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
