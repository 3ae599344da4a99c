package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPresetsCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the available sensor presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := g.presets()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, p := range presets {
				fmt.Fprintf(w, "%-18s %3d channels  stereo=%-5t on/off=%-5t addresses=%-4d raw=%d+%d bytes  tick=%gus\n",
					p.Name, p.AddressSpace.Channels, p.AddressSpace.Stereo, p.AddressSpace.OnOffBoth,
					p.AddressSpace.Size(), p.AddressSize, p.TimestampSize, p.TimestampTick)
			}

			return nil
		},
	}
}
