package main

import (
	"fmt"

	"github.com/jonathan/jobmatch/internal/config"
	"github.com/jonathan/jobmatch/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for scraping job boards, matching, and application tracking.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Port = servePort
	}

	boards, err := cfg.LoadBoards()
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:            cfg.Port,
		DatabaseURL:     cfg.DatabaseURL,
		GeminiAPIKey:    cfg.GeminiAPIKey,
		LifecyclePolicy: cfg.LifecyclePolicy,
		Boards:          boards,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
