// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thatcatcamp/colorset/internal/colorset"
	"github.com/thatcatcamp/colorset/internal/config"
)

// composeSet loads the palette at path, attaches each child file in order
// and marks accentNames for accent substitution. Relative child paths are
// resolved against the directory of path.
func composeSet(path string, children, accentNames []string) (*colorset.ColorSet, error) {
	set, err := colorset.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	for _, child := range children {
		if !filepath.IsAbs(child) {
			child = filepath.Join(filepath.Dir(path), child)
		}
		childSet, err := colorset.Load(child)
		if err != nil {
			return nil, fmt.Errorf("failed to load child %s: %w", child, err)
		}
		set.AddChild(childSet)
	}

	for _, name := range accentNames {
		set.UseAccentFor(name)
	}
	return set, nil
}

// loadConfiguredSet loads path, or palette.path when path is empty, with the
// configured children and accent names applied. The configured composition
// only applies to the configured palette.
func loadConfiguredSet(path string) (*colorset.ColorSet, error) {
	if path != "" {
		return composeSet(path, nil, nil)
	}

	path = config.GetString("palette.path")
	if path == "" {
		return nil, fmt.Errorf("no palette file given and palette.path is not set")
	}
	return composeSet(path,
		config.GetStringSlice("palette.children"),
		config.GetStringSlice("palette.accent_names"))
}

// addAppearanceFlags registers --dark and --accent on cmd.
func addAppearanceFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("dark", false, "Resolve for dark mode (default from palette.dark_mode)")
	cmd.Flags().String("accent", "", "Accent color as #RRGGBB (default from palette.accent)")
}

// readAppearance returns the dark mode and accent for cmd, falling back to
// the configured values for flags that were not given.
func readAppearance(cmd *cobra.Command) (bool, *colorset.Color, error) {
	dark := config.GetBool("palette.dark_mode")
	if cmd.Flags().Changed("dark") {
		dark, _ = cmd.Flags().GetBool("dark")
	}

	hex := config.GetString("palette.accent")
	if cmd.Flags().Changed("accent") {
		hex, _ = cmd.Flags().GetString("accent")
	}
	if hex == "" {
		return dark, nil, nil
	}

	accent, err := colorset.ParseHex(hex)
	if err != nil {
		return false, nil, fmt.Errorf("invalid accent: %w", err)
	}
	return dark, &accent, nil
}

// optionalArg returns args[i] or "" when it is absent.
func optionalArg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
