// Package main runs the health stats MCP server over stdio (for local editor use).
// The same MCP server is also mounted on the main backend at /mcp over HTTP.
package main

import (
	"context"
	"flag"

	"github.com/2beens/healthtracker/internal/config"
	healthstatsmcp "github.com/2beens/healthtracker/internal/healthstats/mcp"
	"github.com/2beens/healthtracker/internal/healthstats/measurements"
	"github.com/2beens/healthtracker/internal/telemetry/metrics"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	// stdout carries the protocol, logrus writes to stderr
	log.SetLevel(log.WarnLevel)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	store, err := measurements.NewFileStore(cfg.MeasurementsPath)
	if err != nil {
		log.Fatalf("measurements store: %v", err)
	}

	ctx := context.Background()
	dataset := measurements.NewDataset(store)
	dataset.Load(ctx)
	log.Warnf("serving %d measurement rows over stdio", dataset.Len())

	// nothing scrapes a stdio process, the registry only backs the service counters
	metricsManager := metrics.NewManager("healthstats_mcp", "stdio", prometheus.NewRegistry())
	service := measurements.NewService(dataset, metricsManager)

	server := healthstatsmcp.NewServer(service, cfg.TrailingWindowDays)
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}
