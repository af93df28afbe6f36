// file: internal/server/search_handlers.go
// version: 1.0.0
// guid: 6f1c2a9e-3b7d-4e58-8c06-a4d9e2f17b53

package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jdfalk/catalog-search/internal/models"
	"github.com/jdfalk/catalog-search/internal/search"
)

// queryParam is the free-text query; every other query parameter is a filter.
const queryParam = "q"

// filtersFromQuery builds search filters from the URL query string. Only the
// first value of a repeated key is used.
func filtersFromQuery(c *gin.Context) search.Filters {
	filters := search.Filters{}
	for key, values := range c.Request.URL.Query() {
		if key == queryParam || len(values) == 0 {
			continue
		}
		filters[key] = values[0]
	}
	return filters
}

// kindParam resolves :kind, answering 404 itself when it is unknown.
func kindParam(c *gin.Context) (models.EntityKind, bool) {
	kind, err := models.ParseEntityKind(c.Param("kind"))
	if err != nil {
		RespondWithNotFound(c, "entity kind", c.Param("kind"))
		return "", false
	}
	return kind, true
}

func (s *Server) respondServiceError(c *gin.Context, ol *OperationLogger, err error) {
	switch {
	case IsNotLoaded(err):
		ol.LogError(http.StatusServiceUnavailable, err)
		RespondWithUnavailable(c, "catalog not loaded")
	case errors.Is(err, search.ErrUnknownKind):
		ol.LogError(http.StatusNotFound, err)
		RespondWithNotFound(c, "entity kind", c.Param("kind"))
	default:
		ol.LogError(http.StatusInternalServerError, err)
		RespondWithInternalError(c, err.Error())
	}
}

// searchEntities handles GET /api/v1/:kind/search
func (s *Server) searchEntities(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	ol := NewOperationLogger("searchEntities", c)

	rawQuery := c.Query(queryParam)
	filters := filtersFromQuery(c)
	env, err := s.catalog.Search(kind, rawQuery, filters, RequestID(c))
	if err != nil {
		s.respondServiceError(c, ol, err)
		return
	}
	ol.AddDetail("total", env.Total)
	c.JSON(http.StatusOK, env)
	ol.LogSuccess(http.StatusOK)
}

// suggestEntities handles GET /api/v1/:kind/suggest
func (s *Server) suggestEntities(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	ol := NewOperationLogger("suggestEntities", c)

	rawQuery := c.Query(queryParam)
	out, err := s.catalog.Suggest(kind, rawQuery, RequestID(c))
	if err != nil {
		s.respondServiceError(c, ol, err)
		return
	}
	c.JSON(http.StatusOK, SuggestResponse{Kind: kind, Query: rawQuery, Suggestions: out})
}

// catalogStats handles GET /api/v1/catalog/stats
func (s *Server) catalogStats(c *gin.Context) {
	stats, err := s.catalog.Stats()
	if err != nil {
		s.respondServiceError(c, NewOperationLogger("catalogStats", c), err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// reloadCatalog handles POST /api/v1/catalog/reload
func (s *Server) reloadCatalog(c *gin.Context) {
	ol := NewOperationLogger("reloadCatalog", c)
	stats, err := s.catalog.Reload(c.Request.Context(), RequestID(c))
	if err != nil {
		s.events.CatalogReloadFailed(err)
		ol.LogError(http.StatusInternalServerError, err)
		RespondWithInternalError(c, "reload failed: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, ReloadResponse{Reloaded: true, Catalog: stats})
	ol.LogSuccess(http.StatusOK)
}

// healthCheck handles GET /api/v1/health. It answers 200 even before the
// catalog is loaded so orchestration can tell "up" from "ready".
func (s *Server) healthCheck(c *gin.Context) {
	resp := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().Unix(),
		Version:   Version,
		Threshold: s.engine.Threshold(),
		Clients:   s.events.GetClientCount(),
	}
	if stats, err := s.catalog.Stats(); err == nil {
		resp.Catalog = &stats
	} else {
		resp.Status = "loading"
	}
	c.JSON(http.StatusOK, resp)
}
