package main

import (
	"bytes"
	"fmt"
	"os"

	"code.cloudfoundry.org/bytefmt"
	"github.com/arloliu/aerzip/config"
	"github.com/arloliu/aerzip/container"
	"github.com/arloliu/aerzip/encoding"
	"github.com/arloliu/aerzip/format"
	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type compressOptions struct {
	in           string
	out          string
	csvInput     bool
	preset       string
	addrSize     uint8
	tsSize       uint8
	addressSpace uint64
	compressor   string
	policy       string
	checksum     bool
	storeSpace   bool
	force        bool
}

func newCompressCmd(g *globalOptions) *cobra.Command {
	o := &compressOptions{}

	c := &cobra.Command{
		Use:   "compress",
		Short: "Compress raw spike records into an aerzip file",
		Long: `Compress reads headerless raw spike records, each an address followed by a
timestamp in big-endian byte order, and writes an aerzip file.

The raw record layout comes from --preset or from --addr-size/--ts-size. The address
width of the output is derived from the sensor address space (--preset or
--address-space), or from the largest address present if neither is given.`,
		Example: "aerzip compress --in recording.raw --preset matlab --compressor LZ4",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompress(cmd, g, o)
		},
	}

	f := c.Flags()
	f.StringVarP(&o.in, "in", "i", "", "input file of raw records (or CSV with --csv)")
	f.StringVarP(&o.out, "out", "o", "", "output file (default: <in>.aerzip)")
	f.BoolVar(&o.csvInput, "csv", false, "read input as CSV with address,timestamp columns")
	f.StringVarP(&o.preset, "preset", "p", "", "sensor preset (see 'aerzip presets')")
	f.Uint8Var(&o.addrSize, "addr-size", 4, "address width of the raw input records")
	f.Uint8Var(&o.tsSize, "ts-size", 4, "timestamp width of the raw input records")
	f.Uint64Var(&o.addressSpace, "address-space", 0, "number of distinct sensor addresses (ignored with --preset)")
	f.StringVarP(&o.compressor, "compressor", "c", format.CompressionZstd.String(), "ZSTD, LZ4 or LZMA")
	f.StringVar(&o.policy, "policy", format.WidthPolicyMinimal.String(), "width policy: minimal or full")
	f.BoolVar(&o.checksum, "checksum", false, "store a payload checksum in the header")
	f.BoolVar(&o.storeSpace, "store-address-space", false, "store the preset address space in the header")
	f.BoolVarP(&o.force, "force", "f", false, "overwrite the output file if it exists")
	_ = c.MarkFlagRequired("in")

	return c
}

func runCompress(cmd *cobra.Command, g *globalOptions, o *compressOptions) error {
	policy, err := format.ParseWidthPolicy(o.policy)
	if err != nil {
		return err
	}

	opts := []container.EncoderOption{
		container.WithCompressionName(o.compressor),
		container.WithWidthPolicy(policy),
		container.WithChecksum(o.checksum),
		container.WithLogger(g.logger),
	}

	source := format.WidthSpec{AddressWidth: o.addrSize, TimestampWidth: o.tsSize}
	if o.preset != "" {
		presets, err := g.presets()
		if err != nil {
			return err
		}
		preset, err := config.Find(presets, o.preset)
		if err != nil {
			return err
		}

		if !cmd.Flags().Changed("addr-size") {
			source.AddressWidth = preset.AddressSize
		}
		if !cmd.Flags().Changed("ts-size") {
			source.TimestampWidth = preset.TimestampSize
		}
		opts = append(opts,
			container.WithAddressSpace(preset.AddressSpace),
			container.WithAddressSpaceExtension(o.storeSpace),
		)
	} else if o.storeSpace {
		return fmt.Errorf("--store-address-space requires --preset")
	}
	if o.addressSpace > 0 {
		opts = append(opts, container.WithAddressSpaceSize(o.addressSpace))
	}

	events, err := readEvents(o.in, o.csvInput, source)
	if err != nil {
		return err
	}

	enc, err := container.NewEncoder(opts...)
	if err != nil {
		return err
	}

	data, stats, err := enc.EncodeWithStats(events)
	if err != nil {
		return err
	}

	out := o.out
	if out == "" {
		out = o.in + ".aerzip"
	}
	if err := container.WriteFile(out, data, o.force); err != nil {
		return err
	}

	g.logger.Info("compressed file written", zap.String("path", out), zap.Int("bytes", len(data)))

	header, _, err := container.Disassemble(data)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d events, %s packed -> %s (%s, %s, %.1f%% saved)\n",
		out, len(events),
		bytefmt.ByteSize(uint64(stats.OriginalSize)),
		bytefmt.ByteSize(uint64(len(data))),
		header.Compression, header.Widths, stats.SpaceSavings())

	return nil
}

// readEvents loads events from raw records at the given widths, or from CSV.
func readEvents(path string, csvInput bool, source format.WidthSpec) ([]encoding.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if csvInput {
		var events []encoding.Event
		if err := gocsv.Unmarshal(bytes.NewReader(data), &events); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}

		return events, nil
	}

	events, _, err := encoding.Unpack(data, source)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return events, nil
}
