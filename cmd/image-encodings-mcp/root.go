package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-encodings-mcp/internal/config"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "image-encodings-mcp",
		Short: "ROS image encoding classifier and MCP server",
		Long: `image-encodings-mcp classifies ROS sensor_msgs image encodings
(mono8, bgra16, bayer_rggb8, 16UC3, ...) and serves them, together with a
viewer for serialized sensor_msgs/Image messages, over the Model Context
Protocol on stdin/stdout.

Environment variables:
  IMAGE_ENCODINGS_LOG_LEVEL=debug            Enable debug logging
  IMAGE_ENCODINGS_MAX_MESSAGE_BYTES=<bytes>  Largest message file to decode

Variables may also be set in a .env file in the working directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env file is optional, don't fail if not found
			config.LoadDotEnv()

			// Logging goes to stderr (stdout is for MCP protocol)
			log.SetOutput(os.Stderr)
			log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newInfoCommand())
	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newInspectCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
