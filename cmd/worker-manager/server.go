package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type check struct {
	name string
	fn   func(ctx context.Context) error
}

func newServeMux(version string, readiness []check) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]interface{}{
			"status":  "healthy",
			"version": version,
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		failures := map[string]string{}
		for _, c := range readiness {
			if err := c.fn(ctx); err != nil {
				failures[c.name] = err.Error()
			}
		}

		if len(failures) > 0 {
			writeStatus(w, http.StatusServiceUnavailable, map[string]interface{}{
				"status": "not ready",
				"checks": failures,
			})
			return
		}
		writeStatus(w, http.StatusOK, map[string]interface{}{
			"status": "ready",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func writeStatus(w http.ResponseWriter, code int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
