package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/theoremus-urban-solutions/gtfs-csv/metrics"
)

type healthResponse struct {
	Status string `json:"status"`
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthResponse{Status: "ok"})
}

func newMux(collector *metrics.Collector) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", handleHealth)
	mux.Handle("/metrics", collector.Handler())
	return mux
}

func startServer(addr string, collector *metrics.Collector, logger *zap.Logger) *http.Server {
	server := &http.Server{
		Addr:              addr,
		Handler:           newMux(collector),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server error", zap.Error(err))
		}
	}()
	logger.Info("metrics server listening", zap.String("addr", addr))
	return server
}

func shutdownServer(server *http.Server, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("metrics server shutdown error", zap.Error(err))
		return
	}
	logger.Info("metrics server shut down")
}
