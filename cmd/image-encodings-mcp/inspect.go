package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-encodings-mcp/internal/config"
	"github.com/ironsheep/image-encodings-mcp/internal/imaging"
	"github.com/ironsheep/image-encodings-mcp/internal/rosmsg"
)

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print metadata of a serialized sensor_msgs/Image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			msg, err := rosmsg.ReadFile(args[0], rosmsg.WithMaxMessageBytes(cfg.MaxMessageBytes))
			if err != nil {
				return err
			}
			if err := msg.Validate(); err != nil {
				return err
			}

			info := imaging.Describe(msg)
			rows := [][]string{
				{"Size", fmt.Sprintf("%dx%d", info.Width, info.Height)},
				{"Encoding", info.Encoding},
				{"Channels", strconv.Itoa(info.Channels)},
				{"Bit depth", strconv.Itoa(info.BitDepth)},
				{"Kind", string(info.Kind)},
				{"Family", string(info.Family)},
				{"Step", strconv.Itoa(info.Step)},
				{"Big endian", strconv.FormatBool(info.IsBigEndian)},
				{"Renderable", strconv.FormatBool(info.Renderable)},
				{"Frame", info.FrameID},
				{"Seq", strconv.FormatUint(uint64(info.Seq), 10)},
				{"Stamp", fmt.Sprintf("%d.%09d", info.Stamp.Sec, info.Stamp.Nsec)},
				{"Data bytes", strconv.Itoa(info.DataBytes)},
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows, nil, isTerminal(out)))
			return nil
		},
	}
}
