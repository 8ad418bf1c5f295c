// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thatcatcamp/colorset/internal/colorset"
	"github.com/thatcatcamp/colorset/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search stored palettes for colors",
	Long: `Search the color index by name, or with --near for the stored colors
closest to a hex value.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		near, _ := cmd.Flags().GetString("near")
		limit, _ := cmd.Flags().GetInt("limit")
		if near == "" && len(args) == 0 {
			fmt.Fprintln(os.Stderr, "Error: give a query or --near")
			os.Exit(1)
		}

		store, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		var results []search.SearchResult
		if near != "" {
			target, err := colorset.ParseHex(near)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			results, err = store.NearestColors(target, limit)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error searching: %v\n", err)
				os.Exit(1)
			}
		} else {
			results, err = store.SearchColors(args[0])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error searching: %v\n", err)
				os.Exit(1)
			}
		}

		if len(results) == 0 {
			fmt.Println("No matching colors")
			return
		}
		printResults(os.Stdout, results, near != "")
	},
}

func printResults(out io.Writer, results []search.SearchResult, distance bool) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if distance {
		fmt.Fprintln(w, "PALETTE\tCOLOR\tHEX\tDISTANCE")
	} else {
		fmt.Fprintln(w, "PALETTE\tCOLOR\tHEX")
	}
	for _, r := range results {
		if distance {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.3f\n", r.Palette, r.Color, r.Hex, r.Distance)
		} else {
			fmt.Fprintf(w, "%s\t%s\t%s\n", r.Palette, r.Color, r.Hex)
		}
	}
	w.Flush()
}

var paletteReindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the color search index",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if err := store.Reindex(); err != nil {
			fmt.Fprintf(os.Stderr, "Error rebuilding index: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("Search index rebuilt")
	},
}

func init() {
	searchCmd.Flags().String("near", "", "Find colors closest to this hex value")
	searchCmd.Flags().Int("limit", 10, "Maximum results for --near")

	paletteCmd.AddCommand(paletteReindexCmd)
	rootCmd.AddCommand(searchCmd)
}
