/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package http

import (
	"encoding/json"
	"net/http"

	"github.com/carverauto/vmsync/pkg/logger"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthFunc reports the service health; a nil error means healthy.
type HealthFunc func() (map[string]interface{}, error)

// AdminOptions configures the admin router.
type AdminOptions struct {
	Gatherer prometheus.Gatherer
	Health   HealthFunc
	APIKey   string
	Logger   logger.Logger
}

// NewAdminRouter serves:
//
//	GET /healthz  liveness and last run status (no authentication)
//	GET /metrics  Prometheus exposition (X-API-Key when configured)
func NewAdminRouter(opts AdminOptions) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(opts.Logger))
	r.Use(APIKeyMiddleware(APIKeyOptions{
		APIKey:       opts.APIKey,
		ExcludePaths: []string{"/healthz"},
		Logger:       opts.Logger,
	}))

	r.HandleFunc("/healthz", healthHandler(opts.Health)).Methods(http.MethodGet)

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	return r
}

func healthHandler(fn HealthFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		body := map[string]interface{}{"status": "ok"}
		status := http.StatusOK

		if fn != nil {
			details, err := fn()
			for k, v := range details {
				body[k] = v
			}

			if err != nil {
				if _, ok := details["status"]; !ok {
					body["status"] = "unhealthy"
				}

				body["error"] = err.Error()
				status = http.StatusServiceUnavailable
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)

		_ = json.NewEncoder(w).Encode(body)
	}
}
