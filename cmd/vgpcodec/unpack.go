package main

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dougnukem/vgp-tools/compression"
)

var unpackCmd = &cobra.Command{
	Use:   "unpack <in> <out>",
	Short: "Decompress a file written by pack",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		if len(data) < len(packMagic)+1+2 || string(data[:len(packMagic)]) != packMagic {
			return fmt.Errorf("%s: not a vgpcodec container", args[0])
		}
		flags := data[len(packMagic)]
		o := len(packMagic) + 1
		blobLen := int(binary.LittleEndian.Uint16(data[o:]))
		o += 2
		if len(data) < o+blobLen+8 {
			return fmt.Errorf("%s: truncated container", args[0])
		}

		var c *compression.Codec
		if flags&flagDNA != 0 {
			c = compression.DNACodec()
		} else {
			c, err = compression.Deserialize(data[o : o+blobLen])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
		}
		o += blobLen

		nbits := int(binary.LittleEndian.Uint64(data[o:]))
		o += 8
		if len(data)-o < (nbits+7)/8 {
			return fmt.Errorf("%s: truncated payload", args[0])
		}

		dec, err := c.Decode(data[o:], nbits)
		if err != nil {
			return fmt.Errorf("decoding %s: %w", args[0], err)
		}
		if err := os.WriteFile(args[1], dec, 0644); err != nil {
			return err
		}
		fmt.Printf("%s: %d bits in, %d bytes out\n", args[0], nbits, len(dec))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(unpackCmd)
}
