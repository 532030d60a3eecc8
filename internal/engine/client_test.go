package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSimulate_Success(t *testing.T) {
	var captured SimulationRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/simulate" {
			t.Errorf("Expected /simulate, got %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		json.NewEncoder(w).Encode(SimulationResponse{
			Summary: &SummaryStats{ProbProfit: 0.72},
			Meta:    &Meta{NSimulations: captured.NSimulations},
		})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	res, err := client.Simulate(context.Background(), &SimulationRequest{
		NSimulations: 500,
		TimeHorizon:  36,
	})
	if err != nil {
		t.Fatalf("Simulate() returned error: %v", err)
	}

	if captured.NSimulations != 500 {
		t.Errorf("Run count not forwarded: %d", captured.NSimulations)
	}
	if res.Summary == nil || res.Summary.ProbProfit != 0.72 {
		t.Errorf("Summary not decoded: %+v", res.Summary)
	}
}

func TestSimulate_StatusTriage(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"InvalidSpec", http.StatusUnprocessableEntity},
		{"Busy", http.StatusServiceUnavailable},
		{"InternalError", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := NewClient(Config{BaseURL: server.URL})
			_, err := client.Simulate(context.Background(), &SimulationRequest{})
			if err == nil {
				t.Fatalf("Expected error for status %d", tt.status)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	if err := client.Health(context.Background()); err != nil {
		t.Errorf("Health() returned error: %v", err)
	}
}
