// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citemap/internal/mapping"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a mapping as a table",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("mapping")
		return showMapping(path, cmd.OutOrStdout())
	},
}

func init() {
	showCmd.Flags().StringP("mapping", "m", mapping.DefaultFile, "mapping file to print")
	rootCmd.AddCommand(showCmd)
}

func showMapping(path string, w io.Writer) error {
	entries, err := mapping.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s not found", errMissingInput, path)
	}
	if err != nil {
		return err
	}

	mapping.FormatTable(entries, w)
	return nil
}
