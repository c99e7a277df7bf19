package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/stlcheck/internal/server"
)

var (
	servePort    int
	serveHistory string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis HTTP API",
	Long:  "Start an HTTP server that accepts STL uploads on POST /api/analyze and returns the report as JSON.",
	Args:  cobra.NoArgs,
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "HTTP port (overrides config)")
	serveCmd.Flags().StringVar(&serveHistory, "history", "", "Store reports in this SQLite database (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) {
	if cmd.Flags().Changed("port") {
		cfg.HTTP.Port = servePort
	}
	if cmd.Flags().Changed("history") {
		cfg.History.Enabled = serveHistory != ""
		cfg.History.Path = serveHistory
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if err := server.Run(cmd.Context(), cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error running server: %v\n", err)
		os.Exit(1)
	}
}
