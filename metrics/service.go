// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler exposes the registered metrics
func Handler() http.Handler {
	return promhttp.Handler()
}

// Service serves metrics on a dedicated address.
type Service struct {
	*http.Server
}

// NewService returns nil when addr is empty, which disables the service
func NewService(addr string) *Service {
	if addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", Handler())
	return &Service{Server: &http.Server{Addr: addr, Handler: mux}}
}

// Start runs the service until ShutDown. A nil service does nothing.
func (ms *Service) Start() {
	if ms == nil {
		return
	}
	slog.Info("metrics service is running", "endpoint", ms.Addr)
	err := ms.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Warn("metrics service couldn't start on configured address", "error", err)
	}
}

// ShutDown stops the service.
func (ms *Service) ShutDown(ctx context.Context) {
	if ms == nil {
		return
	}
	slog.Info("shutting down metrics service", "endpoint", ms.Addr)
	if err := ms.Shutdown(ctx); err != nil {
		slog.Error("can't shut metrics service down", "error", err)
	}
}
