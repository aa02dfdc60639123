// Package router wires every handler onto a single http.Handler.
//
// Route table:
//
//	POST   /profile    → create the profile
//	GET    /profile    → get the profile
//	GET    /tank       → list tanks
//	POST   /tank       → create a tank
//	PATCH  /tank/{id}  → replace a tank
//	DELETE /tank/{id}  → delete a tank
//	GET    /health     → store reachability
//	GET    /metrics    → Prometheus metrics
package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aanand-mishra/tank-man-api/internal/http/handlers/health"
	"github.com/aanand-mishra/tank-man-api/internal/http/handlers/profile"
	"github.com/aanand-mishra/tank-man-api/internal/http/handlers/tank"
	"github.com/aanand-mishra/tank-man-api/internal/http/middleware"
	"github.com/aanand-mishra/tank-man-api/internal/storage"
)

// New returns the instrumented router. Metrics are registered with reg and
// served from it.
func New(store storage.Storage, reg *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /profile", profile.New(store))
	mux.HandleFunc("GET /profile", profile.Get(store))

	mux.HandleFunc("GET /tank", tank.GetList(store))
	mux.HandleFunc("POST /tank", tank.New(store))
	mux.HandleFunc("PATCH /tank/{id}", tank.Update(store))
	mux.HandleFunc("DELETE /tank/{id}", tank.Delete(store))

	mux.HandleFunc("GET /health", health.Check(store))
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return middleware.Instrument(middleware.NewMetrics(reg), mux)
}
