package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthEndpoint(t *testing.T) {
	deps := testDeps(t)
	router := Router(deps)

	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	res := decodeResponse(t, rec)
	if res.Code != 0 {
		t.Fatalf("business code = %d, want 0", res.Code)
	}
}

func TestUploadedFileIsServedStatically(t *testing.T) {
	deps := testDeps(t)
	router := Router(deps)

	body, contentType := multipartBody(t, "file", "sticker.gif", "image/gif", []byte("gifbytes"))
	r := httptest.NewRequest(http.MethodPost, "/upload", body)
	r.Header.Set("Content-Type", contentType)
	r.RemoteAddr = "192.0.2.10:1234"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)

	if rec.Code != http.StatusOK {
		t.Fatalf("upload status = %d, body = %s", rec.Code, rec.Body.String())
	}

	data, ok := decodeResponse(t, rec).Data.(map[string]any)
	if !ok {
		t.Fatal("upload response carried no data")
	}
	url, _ := data["url"].(string)

	get := httptest.NewRequest(http.MethodGet, url, nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, get)

	if getRec.Code != http.StatusOK {
		t.Fatalf("static fetch of %q returned %d", url, getRec.Code)
	}
	if getRec.Body.String() != "gifbytes" {
		t.Fatalf("served content = %q", getRec.Body.String())
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	deps := testDeps(t)
	router := Router(deps)

	r := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
