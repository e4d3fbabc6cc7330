package main

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dougnukem/vgp-tools/compression"
)

const packMagic = "VGC1"

const flagDNA = 1

var (
	packDNA     bool
	packPartial bool
)

var packCmd = &cobra.Command{
	Use:   "pack <in> <out>",
	Short: "Compress a file with a codec trained on its own contents",
	Long: `Pack trains a length-limited Huffman codec on the input file,
encodes the file with it, and writes codec blob and payload to the
output container. With --dna the input is treated as a nucleotide
sequence and packed at two bits per base instead.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		var (
			c     *compression.Codec
			flags byte
		)
		if packDNA {
			c = compression.DNACodec()
			flags = flagDNA
		} else {
			c = compression.New()
			if err := c.Add(data); err != nil {
				return err
			}
			if err := c.Build(packPartial); err != nil {
				return fmt.Errorf("building codec for %s: %w", args[0], err)
			}
		}

		blob := make([]byte, compression.MaxSerialSize())
		blobLen, err := c.Serialize(blob)
		if err != nil {
			return err
		}

		enc, nbits, err := c.Encode(data)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", args[0], err)
		}

		out := make([]byte, 0, len(packMagic)+1+2+blobLen+8+len(enc))
		out = append(out, packMagic...)
		out = append(out, flags)
		out = binary.LittleEndian.AppendUint16(out, uint16(blobLen))
		out = append(out, blob[:blobLen]...)
		out = binary.LittleEndian.AppendUint64(out, uint64(nbits))
		out = append(out, enc...)

		if err := os.WriteFile(args[1], out, 0644); err != nil {
			return err
		}
		fmt.Printf("%s: %d bytes in, %d bits out (%.1f%%)\n",
			args[0], len(data), nbits, 100*float64(len(out))/float64(max(len(data), 1)))
		return nil
	},
}

func init() {
	packCmd.Flags().BoolVar(&packDNA, "dna", false, "use the fixed 2-bit DNA codec")
	packCmd.Flags().BoolVar(&packPartial, "partial", true,
		"reserve an escape code for bytes absent from the file")
	rootCmd.AddCommand(packCmd)
}
