// file: internal/server/response_types.go
// version: 2.0.0
// guid: 4a5b6c7d-8e9f-0a1b-2c3d-4e5f6a7b8c9d

package server

import "github.com/jdfalk/catalog-search/internal/models"

// SuggestResponse is returned by GET /api/v1/:kind/suggest
type SuggestResponse struct {
	Kind        models.EntityKind `json:"kind"`
	Query       string            `json:"query"`
	Suggestions []string          `json:"suggestions"`
}

// HealthResponse is returned by GET /api/v1/health
type HealthResponse struct {
	Status    string               `json:"status"`
	Timestamp int64                `json:"timestamp"`
	Version   string               `json:"version"`
	Threshold float64              `json:"similarity_threshold"`
	Catalog   *models.CatalogStats `json:"catalog,omitempty"`
	Clients   int                  `json:"sse_clients"`
}

// ReloadResponse is returned by POST /api/v1/catalog/reload
type ReloadResponse struct {
	Reloaded bool                `json:"reloaded"`
	Catalog  models.CatalogStats `json:"catalog"`
}
