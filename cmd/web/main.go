// Package main starts the browser-facing MyDuka client.
//
// This process owns session restoration, role-gated page rendering, and
// notification panel state for one signed-in shop user.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	webcmd "github.com/Patrickson2/MY-DUKA-SYSTEM/internal/cmd/web"
	"github.com/Patrickson2/MY-DUKA-SYSTEM/internal/platform/config"
)

func main() {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	cfg, err := webcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[WEB] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := webcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
