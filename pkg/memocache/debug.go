package memocache

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DebugResponse represents the JSON response structure for debug endpoints.
type DebugResponse struct {
	Stats *DebugStats `json:"stats"`
	Keys  []string    `json:"keys,omitempty"`
}

// DebugStats represents cache statistics in the debug response.
type DebugStats struct {
	Calls         int64        `json:"calls"`
	Hits          int64        `json:"hits"`
	LateHits      int64        `json:"lateHits"`
	Evaluations   int64        `json:"evaluations"`
	Evictions     int64        `json:"evictions"`
	Invalidations int64        `json:"invalidations"`
	KeyCount      int64        `json:"keyCount"`
	InFlight      int64        `json:"inFlight"`
	HitRate       float64      `json:"hitRate"`
	Config        *DebugConfig `json:"config"`
}

// DebugConfig represents cache configuration in the debug response.
type DebugConfig struct {
	Capacity int `json:"capacity"`
}

// DebugHandler returns an HTTP handler that provides cache debug
// information. The handler supports the following endpoints:
//   - GET /stats - Returns only cache statistics (no keys)
//   - GET /keys - Returns statistics and cached keys, most recent first
//   - GET / - Same as /keys
func (c *Cache[K, V]) DebugHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		stats := c.Stats()
		response := DebugResponse{
			Stats: &DebugStats{
				Calls:         stats.Calls(),
				Hits:          stats.Hits(),
				LateHits:      stats.LateHits(),
				Evaluations:   stats.Evaluations(),
				Evictions:     stats.Evictions(),
				Invalidations: stats.Invalidations(),
				KeyCount:      stats.KeyCount(),
				InFlight:      stats.InFlight(),
				HitRate:       stats.HitRate(),
				Config: &DebugConfig{
					Capacity: c.Capacity(),
				},
			},
		}

		if r.URL.Path == "/" || r.URL.Path == "/keys" {
			keys := c.Keys()
			response.Keys = make([]string, len(keys))
			for i, key := range keys {
				response.Keys[i] = fmt.Sprint(key)
			}
		}

		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, "Failed to encode JSON response", http.StatusInternalServerError)
		}
	})
}

// NewDebugServer creates a new HTTP server with cache debug endpoints:
//   - GET /stats - Cache statistics only
//   - GET /keys - Cache statistics and keys
//   - GET / - Cache statistics and keys (default)
func (c *Cache[K, V]) NewDebugServer(addr string) *http.Server {
	mux := http.NewServeMux()
	handler := c.DebugHandler()

	mux.Handle("/stats", handler)
	mux.Handle("/keys", handler)
	mux.Handle("/", handler)

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
