// file: internal/server/logger_test.go
// version: 2.0.0
// guid: 2e3f4a5b-6c7d-8e9f-0a1b-2c3d4e5f6a7b

package server

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return &buf
}

func testContext(method, target, requestID string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(method, target, nil)
	if requestID != "" {
		c.Set(requestIDKey, requestID)
	}
	return c
}

func TestNewOperationLogger(t *testing.T) {
	logger := NewOperationLogger("searchEntities", testContext(http.MethodGet, "/api/v1/parts/search", "req-123"))

	if logger.handler != "searchEntities" {
		t.Errorf("expected handler 'searchEntities', got %q", logger.handler)
	}
	if logger.method != http.MethodGet {
		t.Errorf("expected method 'GET', got %q", logger.method)
	}
	if logger.path != "/api/v1/parts/search" {
		t.Errorf("expected path '/api/v1/parts/search', got %q", logger.path)
	}
	if logger.requestID != "req-123" {
		t.Errorf("expected requestID 'req-123', got %q", logger.requestID)
	}
}

func TestOperationLogger_AddDetail(t *testing.T) {
	logger := NewOperationLogger("searchEntities", testContext(http.MethodGet, "/api/v1/parts/search", ""))
	logger.AddDetail("kind", "parts")
	logger.AddDetail("total", 2)

	if logger.details["kind"] != "parts" {
		t.Errorf("expected detail 'kind' to be 'parts', got %v", logger.details["kind"])
	}
	if logger.details["total"] != 2 {
		t.Errorf("expected detail 'total' to be 2, got %v", logger.details["total"])
	}
}

func TestOperationLogger_Output(t *testing.T) {
	buf := captureLog(t)
	logger := NewOperationLogger("reloadCatalog", testContext(http.MethodPost, "/api/v1/catalog/reload", "req-9"))
	logger.AddDetail("parts", 3)

	logger.LogSuccess(http.StatusOK)
	logger.LogError(http.StatusInternalServerError, errors.New("boom"))

	out := buf.String()
	for _, want := range []string{"[INFO] [SUCCESS] POST /api/v1/catalog/reload (200)", "map[parts:3]",
		"[ERROR] reloadCatalog POST /api/v1/catalog/reload (500)", "boom", "[request-id: req-9]"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in log output %q", want, out)
		}
	}
}

func TestServiceLogger(t *testing.T) {
	buf := captureLog(t)
	logger := NewServiceLogger("CatalogService", "req-123")

	if logger.serviceName != "CatalogService" {
		t.Errorf("expected serviceName 'CatalogService', got %q", logger.serviceName)
	}

	logger.LogOperation("Search", map[string]any{"kind": "colors"})
	logger.LogError("Reload", errors.New("disk"))
	logger.LogDebug("Search", "cache hit")

	out := buf.String()
	for _, want := range []string{"[INFO] CatalogService.Search map[kind:colors] [request-id: req-123]",
		"[ERROR] CatalogService.Reload: disk", "[DEBUG] CatalogService.Search: cache hit"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in log output %q", want, out)
		}
	}
}
