package slack

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewServiceRequiresTokenAndChannel(t *testing.T) {
	if s := NewService(ServiceConfig{Token: "", Channel: "C1"}); s != nil {
		t.Error("expected nil service with empty token")
	}
	if s := NewService(ServiceConfig{Token: "xoxb-1", Channel: ""}); s != nil {
		t.Error("expected nil service with empty channel")
	}
}

func TestNotifyOnNilServiceIsNoOp(t *testing.T) {
	var s *Service
	if err := s.Notify(context.Background(), "hello"); err != nil {
		t.Errorf("Notify on nil service returned %v, want nil", err)
	}
}

func TestNotifyPostsMessage(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := make([]byte, r.ContentLength)
		_, _ = r.Body.Read(body)
		gotBody = string(body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true, "ts": "123.456"}`))
	}))
	defer server.Close()

	client := NewClientWithAPIURL("xoxb-test", "C123", server.URL+"/")
	s := NewServiceWithClient(client)

	if err := s.Notify(context.Background(), "3 prospect(s) ready for READY_TO_SEND gate this week"); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if gotBody == "" {
		t.Error("expected the client to have posted a request body")
	}
}
