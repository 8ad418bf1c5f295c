// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "colorset",
	Short: "colorset - named color sets with light and dark variants",
	Long: `colorset reads, writes and resolves color set files: named colors with
an optional dark-mode variant and named lightness presets.

Files can be stored in the palette database, composed into fallback chains,
served over HTTP as JSON or CSS, and published to S3.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
