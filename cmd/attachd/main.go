package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/GriffinCanCode/AttachKit/internal/config"
	"github.com/GriffinCanCode/AttachKit/internal/server"
)

func main() {
	httpAddr := flag.String("http", "", "Diagnostics HTTP address (overrides ATTACH_HTTP_ADDR)")
	namePrefix := flag.String("prefix", "", "Channel namespace prefix (overrides ATTACH_NAME_PREFIX)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *httpAddr != "" {
		cfg.HTTP.Addr = *httpAddr
	}
	if *namePrefix != "" {
		cfg.Listener.NamePrefix = *namePrefix
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
