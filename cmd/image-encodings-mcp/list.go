package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-encodings-mcp/internal/encodings"
)

func newListCommand() *cobra.Command {
	var family string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List named encodings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if family == string(encodings.FamilyGeneric) {
				return fmt.Errorf("generic encodings are parsed from <bits><U|S|F>C<channels> names and are not listed; use info")
			}
			if family != "" && !knownFamily(family) {
				return fmt.Errorf("unknown family %q (want color, mono, bayer or yuv)", family)
			}

			var rows [][]string
			for _, info := range encodings.Named() {
				if family != "" && string(info.Family) != family {
					continue
				}
				rows = append(rows, []string{
					info.Name,
					strconv.Itoa(info.Channels),
					strconv.Itoa(info.BitDepth),
					string(info.Kind),
					string(info.Family),
					info.Order,
				})
			}

			out := cmd.OutOrStdout()
			headers := []string{"Encoding", "Channels", "Bits", "Kind", "Family", "Order"}
			aligns := []columnAlignment{alignLeft, alignRight, alignRight, alignLeft, alignLeft, alignLeft}
			fmt.Fprintln(out, renderTable(headers, rows, aligns, isTerminal(out)))
			return nil
		},
	}

	cmd.Flags().StringVar(&family, "family", "", "Only list encodings of this family (color, mono, bayer, yuv)")
	return cmd
}

func knownFamily(name string) bool {
	for _, f := range encodings.Families() {
		if string(f) == name {
			return true
		}
	}
	return false
}
