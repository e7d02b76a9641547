package rpc

import (
	"net/http"

	"github.com/gorilla/mux"
)

/*
MetricsEndpoints exposes the metrics handler (ie promhttp) under /metrics.
Does nothing when the handler is nil, ie metrics collection is disabled.
*/
func MetricsEndpoints(h http.Handler) RegistrarFunc {
	return func(r *mux.Router) {
		if h == nil {
			return
		}
		r.Handle("/metrics", h).Methods(http.MethodGet, http.MethodOptions)
	}
}
