package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriteJSON_SetsContentTypeAndStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSON(rr, http.StatusCreated, map[string]int{"count": 3})

	if rr.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}

	var resp map[string]int
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["count"] != 3 {
		t.Errorf("expected count=3, got %d", resp["count"])
	}
}

func TestWriteError_ShapesErrorBody(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, http.StatusBadRequest, "mode is invalid")

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "mode is invalid" {
		t.Errorf("expected error message, got %q", resp.Error)
	}
}

func TestRequireMethod_AllowsListedMethod(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/trades", nil)
	rr := httptest.NewRecorder()

	if !RequireMethod(rr, req, http.MethodGet, http.MethodDelete) {
		t.Fatal("expected GET to be allowed")
	}
	if rr.Code != http.StatusOK {
		t.Errorf("allowed method must not write a response, got %d", rr.Code)
	}
}

func TestRequireMethod_RejectsWithAllowHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodPatch, "/api/trades", nil)
	rr := httptest.NewRecorder()

	if RequireMethod(rr, req, http.MethodGet, http.MethodDelete) {
		t.Fatal("expected PATCH to be rejected")
	}
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rr.Code)
	}
	if allow := rr.Header().Get("Allow"); allow != "GET, DELETE" {
		t.Errorf("expected Allow: GET, DELETE, got %q", allow)
	}
}

func TestDecodeJSON_ValidBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/test", strings.NewReader(`{"name":"folio"}`))
	rr := httptest.NewRecorder()

	var body struct {
		Name string `json:"name"`
	}
	if !DecodeJSON(rr, req, &body) {
		t.Fatalf("expected decode to succeed, got %d: %s", rr.Code, rr.Body.String())
	}
	if body.Name != "folio" {
		t.Errorf("expected name=folio, got %q", body.Name)
	}
}

func TestDecodeJSON_InvalidBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/test", strings.NewReader(`{not json`))
	rr := httptest.NewRecorder()

	var body struct{}
	if DecodeJSON(rr, req, &body) {
		t.Fatal("expected decode to fail")
	}
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}
}
