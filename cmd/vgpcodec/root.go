package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vgpcodec",
	Short: "Length-limited Huffman codec tool for VGP field data",
	Long: `vgpcodec builds the length-limited Huffman codecs used by VGP
formats for per-record fields and applies them to whole files.

The pack and unpack commands use a small standalone container:

  "VGC1" | flags(1) | blobLen(2,LE) | codec blob | bits(8,LE) | payload

A flags value of 1 marks the fixed 2-bit DNA codec, which has no blob.`,
	SilenceUsage: true,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
