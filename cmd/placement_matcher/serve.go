package main

import (
	"fmt"

	"github.com/jonathan/placement-matcher/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the analysis endpoints.
Results are persisted to PostgreSQL when DATABASE_URL (or database_url in the config) is set.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, PORT, or 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	port := cfg.Port
	if servePort > 0 {
		port = servePort
	}

	srv, err := server.New(server.Config{
		Port:          port,
		DatabaseURL:   cfg.DatabaseURL,
		MaxInputBytes: cfg.MaxInputBytes,
		DefaultRole:   cfg.DefaultRole,
		Lexicon:       engine.Lexicon(),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
