// Package main runs the fitnessdash MCP server over stdio (for local MCP clients).
// The same MCP server is also mounted on the dashboard at /mcp over HTTP when mcp_enabled is set.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/2beens/fitnessdash/internal"
	"github.com/2beens/fitnessdash/internal/cache"
	"github.com/2beens/fitnessdash/internal/config"
	"github.com/2beens/fitnessdash/internal/dashboard"
	fitnessmcp "github.com/2beens/fitnessdash/internal/mcp"
	"github.com/2beens/fitnessdash/internal/telemetry/metrics"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	// stdout carries the protocol
	log.SetOutput(os.Stderr)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	loader, err := dashboard.NewLoader(dashboard.LoaderParams{
		Source:          internal.OpenSource(ctx, cfg, ""),
		Store:           cache.NewMemoryStore(cfg.MemoryCacheBytes()),
		RefreshInterval: cfg.RefreshDuration(),
		MetricsManager:  metrics.NewTestManager(),
	})
	if err != nil {
		log.Fatalf("new loader: %v", err)
	}

	server := fitnessmcp.NewServer(loader, time.Now)
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}
