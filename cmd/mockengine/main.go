package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"

	"runway-dss/cmd/mockengine/payload"
	"runway-dss/internal/engine"
)

func main() {
	addr := flag.String("addr", ":8000", "Listen address")
	scenario := flag.String("scenario", "healthy", "Scenario to serve: healthy, stressed")
	seed := flag.Int64("seed", 1, "Seed for deterministic payload noise")
	flag.Parse()

	if *scenario != "healthy" && *scenario != "stressed" {
		fmt.Printf("Unknown scenario '%s'\n", *scenario)
		os.Exit(1)
	}

	cfg := payload.Config{Scenario: *scenario, Seed: *seed}

	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	http.HandleFunc("/simulate", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req engine.SimulationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]string{"detail": err.Error()})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload.Build(&req, cfg))
	})

	fmt.Printf("Mock engine serving scenario '%s' on %s...\n", *scenario, *addr)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		fmt.Printf("Server failed: %v\n", err)
		os.Exit(1)
	}
}
