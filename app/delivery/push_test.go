package delivery

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPushChannel_Enabled(t *testing.T) {
	if NewPushChannel("", "https://sctapi.ftqq.com").Enabled() {
		t.Error("Expected channel disabled without a send key")
	}
	if !NewPushChannel("SCT123", "https://sctapi.ftqq.com").Enabled() {
		t.Error("Expected channel enabled with a send key")
	}
}

func TestPushChannel_Send(t *testing.T) {
	var gotPath, gotTitle, gotBody string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseForm(); err != nil {
			t.Errorf("Failed to parse form: %s", err)
		}
		gotTitle = r.FormValue("title")
		gotBody = r.FormValue("desp")
		fmt.Fprint(w, `{"code":0,"message":""}`)
	}))
	defer server.Close()

	channel := NewPushChannel("SCT123", server.URL+"/")

	err := channel.Send(context.Background(), "Market Brief - 2026-03-15", "digest body")
	if err != nil {
		t.Fatalf("Expected successful send, got: %s", err)
	}

	if gotPath != "/SCT123.send" {
		t.Errorf("Expected path /SCT123.send, got %q", gotPath)
	}
	if gotTitle != "Market Brief - 2026-03-15" {
		t.Errorf("Unexpected title: %q", gotTitle)
	}
	if gotBody != "digest body" {
		t.Errorf("Unexpected body: %q", gotBody)
	}
}

func TestPushChannel_SendRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":40001,"message":"bad key"}`)
	}))
	defer server.Close()

	channel := NewPushChannel("SCT123", server.URL)

	err := channel.Send(context.Background(), "subject", "body")
	if err == nil {
		t.Fatal("Expected error for non-zero response code")
	}
	if !strings.Contains(err.Error(), "40001") || !strings.Contains(err.Error(), "bad key") {
		t.Errorf("Expected code and message in error, got: %s", err)
	}
	if !strings.Contains(err.Error(), "expired") {
		t.Errorf("Expected expiry hint for code 40001, got: %s", err)
	}
}

func TestPushChannel_SendHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer server.Close()

	channel := NewPushChannel("SCT123", server.URL)

	if err := channel.Send(context.Background(), "subject", "body"); err == nil {
		t.Error("Expected error for non-200 response")
	}
}
