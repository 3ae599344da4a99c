package main

import (
	"bytes"
	"fmt"
	"strings"

	"code.cloudfoundry.org/bytefmt"
	"github.com/arloliu/aerzip/container"
	"github.com/arloliu/aerzip/encoding"
	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"
)

type decompressOptions struct {
	in       string
	out      string
	csv      bool
	noVerify bool
	force    bool
}

func newDecompressCmd(g *globalOptions) *cobra.Command {
	o := &decompressOptions{}

	c := &cobra.Command{
		Use:   "decompress",
		Short: "Restore raw spike records from an aerzip file",
		Long: `Decompress writes the stored events as headerless big-endian raw records at their
native widths (3-byte fields are written as 4 bytes), or as CSV with --csv.`,
		Example: "aerzip decompress --in recording.raw.aerzip --csv",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecompress(cmd, g, o)
		},
	}

	f := c.Flags()
	f.StringVarP(&o.in, "in", "i", "", "aerzip file to decompress")
	f.StringVarP(&o.out, "out", "o", "", "output file (default: <in> without .aerzip, plus .csv with --csv)")
	f.BoolVar(&o.csv, "csv", false, "write CSV with address,timestamp columns")
	f.BoolVar(&o.noVerify, "no-verify", false, "skip payload checksum verification")
	f.BoolVarP(&o.force, "force", "f", false, "overwrite the output file if it exists")
	_ = c.MarkFlagRequired("in")

	return c
}

func runDecompress(cmd *cobra.Command, g *globalOptions, o *decompressOptions) error {
	data, err := container.ReadFile(o.in)
	if err != nil {
		return err
	}

	dec := container.NewDecoder(
		container.WithChecksumVerification(!o.noVerify),
		container.WithDecoderLogger(g.logger),
	)
	result, err := dec.Decode(data)
	if err != nil {
		return err
	}

	var out []byte
	if o.csv {
		var buf bytes.Buffer
		if err := gocsv.Marshal(result.Events, &buf); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		out = buf.Bytes()
	} else {
		out, err = encoding.Pack(result.Events, result.Widths)
		if err != nil {
			return err
		}
	}

	path := o.out
	if path == "" {
		path = defaultDecompressPath(o.in, o.csv)
	}
	if err := container.WriteFile(path, out, o.force); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d events (%s), %s written\n",
		path, len(result.Events), result.Widths, bytefmt.ByteSize(uint64(len(out))))

	return nil
}

func defaultDecompressPath(in string, csv bool) string {
	base := strings.TrimSuffix(in, ".aerzip")
	if base == in {
		base += ".raw"
	}
	if csv {
		base += ".csv"
	}

	return base
}
