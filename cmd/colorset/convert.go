// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thatcatcamp/colorset/internal/colorset"
	"github.com/thatcatcamp/colorset/internal/config"
	"github.com/thatcatcamp/colorset/internal/palettefile"
	"github.com/thatcatcamp/colorset/internal/themes"
)

var convertCmd = &cobra.Command{
	Use:   "convert <in> <out>",
	Short: "Rewrite a colorset file in another format",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		format, err := formatFlag(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		set, err := colorset.Load(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if err := set.WriteFile(args[1], format); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Wrote %d colors to %s\n", set.Count(), args[1])
	},
}

var importCmd = &cobra.Command{
	Use:   "import <palette.yaml|theme> <out>",
	Short: "Compile a YAML palette or built-in theme into a colorset file",
	Long: `Compile a hand-written YAML palette into a colorset file. The first
argument may also name a built-in theme (see "colorset themes"), in which
case its brand and neutral roles are written as one flat set.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		format, err := formatFlag(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		set, err := compileSource(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if err := set.WriteFile(args[1], format); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Wrote %d colors to %s\n", set.Count(), args[1])
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <in> <out.yaml>",
	Short: "Write a colorset file as an editable YAML palette",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		set, err := colorset.Load(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		data, err := palettefile.FromColorSet(name, set).Marshal()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if err := os.WriteFile(args[1], data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Wrote %d colors to %s\n", set.Count(), args[1])
	},
}

// compileSource builds a set from a YAML palette file or a built-in theme
// name. Built-in themes are flattened so the file stands alone.
func compileSource(source string) (*colorset.ColorSet, error) {
	if p := themes.GetPalette(source); p != nil {
		if _, err := os.Stat(source); os.IsNotExist(err) {
			return flattenedTheme(p)
		}
	}

	palette, err := palettefile.LoadPalette(source)
	if err != nil {
		return nil, err
	}
	return palette.Compile()
}

func flattenedTheme(p *themes.Palette) (*colorset.ColorSet, error) {
	set, err := p.ColorSet()
	if err != nil {
		return nil, err
	}

	flat := colorset.New()
	for _, name := range themes.AllNames(set) {
		if pair, ok := set.Lookup(name, nil); ok {
			flat.AddPair(name, pair)
		}
	}
	for _, name := range set.AccentNames() {
		flat.UseAccentFor(name)
	}
	return flat, nil
}

// formatFlag reads --format, falling back to palette.format.
func formatFlag(cmd *cobra.Command) (colorset.Format, error) {
	value, _ := cmd.Flags().GetString("format")
	if !cmd.Flags().Changed("format") {
		value = config.GetString("palette.format")
	}
	return colorset.ParseFormat(value)
}

func init() {
	for _, c := range []*cobra.Command{convertCmd, importCmd} {
		c.Flags().String("format", "auto", "Output format: binary, xml, json or auto")
	}

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
}
