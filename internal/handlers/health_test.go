package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"openrouter-chat/internal/handlers"
	"openrouter-chat/internal/storage"
)

func TestHealthHandler_ServeHTTP(t *testing.T) {
	db, err := storage.New(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	handler := handlers.NewHealthHandler(db)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("ServeHTTP() status = %d, want 200", rec.Code)
	}

	var resp handlers.HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("ServeHTTP() status = %q, want healthy", resp.Status)
	}
	if resp.Checks["call_store"] != "ok" {
		t.Errorf("ServeHTTP() call_store check = %q, want ok", resp.Checks["call_store"])
	}
	if resp.Timestamp == "" {
		t.Error("ServeHTTP() missing timestamp")
	}
}

func TestHealthHandler_DatabaseDown(t *testing.T) {
	db, err := storage.New(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	_ = db.Close() // Force the ping to fail

	handler := handlers.NewHealthHandler(db)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("ServeHTTP() status = %d, want 503", rec.Code)
	}

	var resp handlers.HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "unhealthy" {
		t.Errorf("ServeHTTP() status = %q, want unhealthy", resp.Status)
	}
	if len(resp.Issues) == 0 {
		t.Error("ServeHTTP() missing issues list")
	}
}

func TestHealthHandler_MethodNotAllowed(t *testing.T) {
	db, err := storage.New(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	handler := handlers.NewHealthHandler(db)

	req := httptest.NewRequest(http.MethodPost, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("ServeHTTP() status = %d, want 405", rec.Code)
	}
}
