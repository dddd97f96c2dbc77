package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-encodings-mcp/internal/config"
	"github.com/ironsheep/image-encodings-mcp/internal/server"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	cfg := config.Load()
	if cfg.Debug() {
		log.Printf("Image Encodings MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv := server.New(cfg)
	return srv.Serve(cmd.InOrStdin(), cmd.OutOrStdout())
}
