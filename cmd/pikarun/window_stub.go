//go:build !ebiten

package main

import (
	"errors"

	"github.com/spf13/cobra"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window (requires -tags ebiten)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return errors.New("window: this binary was built without the desktop frontend; rebuild with -tags ebiten")
	},
}
