// Package main is the entry point for the Command Center server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"commandcenter/internal/config"
	"commandcenter/internal/events"
	"commandcenter/internal/router"
	"commandcenter/internal/services"
	"commandcenter/internal/version"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	showVersion := flag.Bool("version", false, "show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("Command Center %s\n", version.Version)
		fmt.Printf("Build Time: %s\n", version.BuildTime)
		fmt.Printf("Git Commit: %s\n", version.GitCommit)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("Warning: Could not load config from %s: %v", *configPath, err)
		log.Println("Using default configuration...")
		cfg, _ = config.Load("")
	}

	bus := events.NewBus(cfg.Events.BufferSize)
	authService := services.NewAuthService(cfg.Auth.GetSessionDuration())
	registryService := services.NewRegistryService(bus)
	executorService := services.NewExecutorService(registryService, bus)
	systemService := services.NewSystemService()

	seeded, err := authService.SeedDefaultOperator(cfg.Admin.Username, cfg.Admin.Password)
	if err != nil {
		log.Fatalf("Failed to seed operator credential: %v", err)
	}
	if seeded && cfg.Admin.Password == "admin123" {
		log.Printf("WARNING: Seeded operator %q with the well-known default password.", cfg.Admin.Username)
		log.Printf("Set 'admin.password' in %s before exposing this server to a network.", *configPath)
	}

	if err := services.SeedSampleCommands(registryService); err != nil {
		log.Fatalf("Failed to seed sample commands: %v", err)
	}

	r := router.New(router.Deps{
		Auth:     authService,
		Registry: registryService,
		Executor: executorService,
		System:   systemService,
		Bus:      bus,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Command Center %s starting on %s", version.Version, addr)

	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
