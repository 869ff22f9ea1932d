package main

import (
	"errors"
	"log"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

const healthService = "lolanalyzer.Scheduler"

// Start the grpc health check used by the orchestrator.
func startHealthServer(addr string) (*grpc.Server, *health.Server) {
	// Start a TPC listener.
	list, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("Couldn't start the tcp server: %v", err)
	}

	grpcServer := grpc.NewServer()

	// Register the health check.
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)

	// Set the serving status as serving.
	healthServer.SetServingStatus(healthService, grpc_health_v1.HealthCheckResponse_SERVING)

	go func() {
		log.Printf("Running gRPC health server on %s.", addr)
		if err := grpcServer.Serve(list); err != nil {
			log.Fatalf("Failed to serve grpc: %v", err)
		}
	}()

	return grpcServer, healthServer
}

func setNotServing(healthServer *health.Server) {
	healthServer.SetServingStatus(healthService, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
}

// Separate port for Prometheus scraping.
func startMetricsServer(addr string) *http.Server {
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())

	metricsServer := &http.Server{
		Addr:    addr,
		Handler: metricsMux,
	}

	go func() {
		log.Printf("Metrics server listening on %s", addr)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Metrics server error: %v", err)
		}
	}()

	return metricsServer
}
