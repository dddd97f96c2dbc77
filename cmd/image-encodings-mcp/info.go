package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-encodings-mcp/internal/encodings"
)

func newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <encoding>...",
		Short: "Print channel count and bit depth of encodings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			var unknown []string
			for _, name := range args {
				info, err := encodings.Lookup(name)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
					unknown = append(unknown, name)
					continue
				}
				fmt.Fprintf(out, "%s: channels=%d bit_depth=%d kind=%s family=%s\n",
					info.Name, info.Channels, info.BitDepth, info.Kind, info.Family)
			}
			if len(unknown) > 0 {
				return fmt.Errorf("%d unknown encoding(s): %v", len(unknown), unknown)
			}
			return nil
		},
	}
}
