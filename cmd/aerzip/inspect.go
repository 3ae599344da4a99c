package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"code.cloudfoundry.org/bytefmt"
	"github.com/arloliu/aerzip/container"
	"github.com/arloliu/aerzip/section"
	"github.com/spf13/cobra"
)

func newInspectCmd(g *globalOptions) *cobra.Command {
	var (
		in     string
		decode bool
	)

	c := &cobra.Command{
		Use:   "inspect",
		Short: "Print the header of an aerzip file",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := container.ReadFile(in)
			if err != nil {
				return err
			}

			header, payload, err := container.Disassemble(data)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printHeader(w, header, len(payload))

			if !decode {
				return nil
			}

			result, err := container.NewDecoder(container.WithDecoderLogger(g.logger)).Decode(data)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "events:           %d\n", len(result.Events))
			fmt.Fprintf(w, "packed size:      %s\n", bytefmt.ByteSize(uint64(result.Stats.OriginalSize)))
			fmt.Fprintf(w, "space savings:    %.1f%%\n", result.Stats.SpaceSavings())

			return nil
		},
	}

	c.Flags().StringVarP(&in, "in", "i", "", "aerzip file to inspect")
	c.Flags().BoolVarP(&decode, "decode", "d", false, "also decode the payload and report statistics")
	_ = c.MarkFlagRequired("in")

	return c
}

func printHeader(w io.Writer, h section.FileHeader, payloadSize int) {
	fmt.Fprintf(w, "version:          %s\n", h.Version)
	fmt.Fprintf(w, "compressor:       %s\n", h.Compression)
	fmt.Fprintf(w, "address width:    %d\n", h.Widths.AddressWidth)
	fmt.Fprintf(w, "timestamp width:  %d\n", h.Widths.TimestampWidth)
	fmt.Fprintf(w, "record size:      %d\n", h.Widths.RecordSize())
	fmt.Fprintf(w, "payload size:     %s\n", bytefmt.ByteSize(uint64(payloadSize)))

	if !h.KnowsExtensionLayout() {
		fmt.Fprintf(w, "extension:        opaque (%s)\n", hex.EncodeToString(h.Extension[:]))
		return
	}

	entries, err := h.Extensions()
	for _, e := range entries {
		switch e.Tag {
		case section.ExtAddressSpace:
			space, _ := e.AddressSpace()
			fmt.Fprintf(w, "address space:    %d channels, stereo=%t, on/off=%t (%d addresses)\n",
				space.Channels, space.Stereo, space.OnOffBoth, space.Size())
		case section.ExtPayloadChecksum:
			sum, _ := e.Checksum()
			fmt.Fprintf(w, "checksum:         %016x\n", sum)
		default:
			fmt.Fprintf(w, "extension %s: %s\n", e.Tag, hex.EncodeToString(e.Value))
		}
	}
	if err != nil {
		fmt.Fprintf(w, "extension:        %v\n", err)
	}
}
