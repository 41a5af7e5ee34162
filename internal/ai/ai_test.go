package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/generative-ai-go/genai"

	"wanderlust/internal/modules/itinerary"
)

func newTestGroq(t *testing.T, handler http.HandlerFunc) *GroqProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	p := NewGroqProvider("test-key", "llama-test", 0.5)
	p.endpoint = srv.URL
	return p
}

func TestGroqGenerateJSON(t *testing.T) {
	var got groqRequest
	p := newTestGroq(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token, got %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"ok\":true}"}}]}`))
	})

	out, err := p.GenerateJSON(context.Background(), Prompt{System: "sys", User: "usr"})
	if err != nil {
		t.Fatalf("GenerateJSON: %v", err)
	}
	if out != `{"ok":true}` {
		t.Errorf("unexpected content %q", out)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Content != "usr" {
		t.Errorf("unexpected messages %+v", got.Messages)
	}
	if got.ResponseFormat["type"] != "json_object" {
		t.Errorf("expected json_object response format, got %v", got.ResponseFormat)
	}
	if got.Model != "llama-test" || got.Stream {
		t.Errorf("unexpected model/stream %q %v", got.Model, got.Stream)
	}
}

func TestGroqErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		is     error
	}{
		{name: "non-200", status: http.StatusTooManyRequests, body: `{"error":{"message":"slow down"}}`},
		{name: "api error field", status: http.StatusOK, body: `{"error":{"message":"bad model"}}`},
		{name: "empty choices", status: http.StatusOK, body: `{"choices":[]}`, is: ErrEmptyResponse},
		{name: "blank content", status: http.StatusOK, body: `{"choices":[{"message":{"content":"  "}}]}`, is: ErrEmptyResponse},
		{name: "garbage", status: http.StatusOK, body: `not json`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestGroq(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := p.GenerateJSON(context.Background(), Prompt{User: "x"})
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("expected %v, got %v", tt.is, err)
			}
		})
	}
}

func TestToGenaiSchema(t *testing.T) {
	s := toGenaiSchema(itinerary.NewRouteSchema().Root())
	if s.Type != genai.TypeObject {
		t.Fatalf("expected object root, got %v", s.Type)
	}
	if s.Properties["travelType"].Format != "enum" || len(s.Properties["travelType"].Enum) != 2 {
		t.Errorf("travelType should be an enum of car/bike")
	}
	wp := s.Properties["Day2"].Properties["waypoints"]
	if wp.Type != genai.TypeArray || wp.Items == nil || wp.Items.Type != genai.TypeObject {
		t.Fatalf("waypoints should be an array of objects")
	}
	if wp.Items.Properties["position"].Items.Type != genai.TypeNumber {
		t.Errorf("position items should be numbers")
	}
	if len(s.Required) != 6 {
		t.Errorf("expected 6 required root fields, got %v", s.Required)
	}
}
