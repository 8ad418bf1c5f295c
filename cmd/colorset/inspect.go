// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/thatcatcamp/colorset/internal/colorset"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "List the colors in a colorset file",
	Long: `List every color in a colorset file with its dark variant and lightness
pairs. Without a file argument the configured palette.path is used.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		set, err := loadConfiguredSet(optionalArg(args, 0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		swatch, _ := cmd.Flags().GetBool("swatch")
		printInspection(os.Stdout, set, swatch)
	},
}

// printInspection writes a table of the set's own colors to w.
func printInspection(w io.Writer, set *colorset.ColorSet, swatch bool) {
	fmt.Fprintf(w, "Format: %s (version %d.%d)\n", set.Format(), colorset.VersionMajor, colorset.VersionMinor)
	fmt.Fprintf(w, "Colors: %d", set.Count())
	if n := len(set.Children()); n > 0 {
		fmt.Fprintf(w, " (+%d child sets)", n)
	}
	fmt.Fprintln(w)
	if accents := set.AccentNames(); len(accents) > 0 {
		fmt.Fprintf(w, "Accent: %s\n", strings.Join(accents, ", "))
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCOLOR\tVARIANT\tLIGHTNESSES")
	for _, name := range set.Names() {
		p, ok := set.Entry(name)
		if !ok {
			continue
		}

		variant := "-"
		if p.HasVariant() {
			variant = formatColor(*p.Variant, swatch)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			name, formatColor(*p.Color, swatch), variant, formatLightnesses(p.Lightnesses))
	}
	tw.Flush()
}

func formatColor(c colorset.Color, swatch bool) string {
	text := c.Hex()
	if c.A < 1 {
		text = c.HexAlpha()
	}
	if !swatch {
		return text
	}
	return swatchStyle(c).Render(text)
}

// swatchStyle paints text on the color itself, in whichever of black or
// white reads better on it.
func swatchStyle(c colorset.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Foreground(lipgloss.Color(colorset.BestTextColor(c).Hex())).
		Padding(0, 1)
}

func formatLightnesses(pairs []colorset.LightnessPair) string {
	if len(pairs) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, fmt.Sprintf("%s=%s/%s=%s",
			p.Lightness1.Name, colorset.FormatLightnessPercent(p.Lightness1.Lightness),
			p.Lightness2.Name, colorset.FormatLightnessPercent(p.Lightness2.Lightness)))
	}
	return strings.Join(parts, " ")
}

func init() {
	inspectCmd.Flags().Bool("swatch", false, "Render each color as a terminal swatch")
	rootCmd.AddCommand(inspectCmd)
}
