package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dougnukem/vgp-tools/compression"
)

var tablePartial bool

var tableCmd = &cobra.Command{
	Use:   "table <file>",
	Short: "Train a codec over a file and print its histogram and code table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		c := compression.New()
		if err := c.Add(data); err != nil {
			return err
		}
		if err := c.Build(tablePartial); err != nil {
			return fmt.Errorf("building codec for %s: %w", args[0], err)
		}
		return c.Print(os.Stdout)
	},
}

func init() {
	tableCmd.Flags().BoolVar(&tablePartial, "partial", true,
		"reserve an escape code for bytes absent from the file")
	rootCmd.AddCommand(tableCmd)
}
