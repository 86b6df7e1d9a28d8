package colorapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/id" || r.URL.Query().Get("hex") != "AABBCC" {
			t.Errorf("unexpected request %s?%s", r.URL.Path, r.URL.RawQuery)
		}
		_, _ = io.WriteString(w, `{"hex":{"value":"#AABBCC","clean":"AABBCC"},"name":{"value":"Pigeon Post","closest_named_hex":"#AFBDD9","exact_match_name":false}}`)
	}))
	defer srv.Close()

	name, err := NewClient(srv.URL, time.Second, nil).Name(context.Background(), "#AABBCC")
	if err != nil {
		t.Fatalf("Name: %v", err)
	}
	if name != "Pigeon Post" {
		t.Fatalf("name = %q", name)
	}
}

func TestNameErrors(t *testing.T) {
	t.Run("non-200", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusBadGateway)
		}))
		defer srv.Close()
		if _, err := NewClient(srv.URL, time.Second, nil).Name(context.Background(), "000000"); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("missing name", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"name":{}}`)
		}))
		defer srv.Close()
		if _, err := NewClient(srv.URL, time.Second, nil).Name(context.Background(), "000000"); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("not configured", func(t *testing.T) {
		if _, err := NewClient("", time.Second, nil).Name(context.Background(), "000000"); err == nil {
			t.Fatalf("expected error")
		}
	})
}
