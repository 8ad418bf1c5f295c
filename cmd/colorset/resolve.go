// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thatcatcamp/colorset/internal/themes"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [file] <name>",
	Short: "Resolve a color name",
	Long: `Resolve a color name such as "Primary", "Primary.80" or "Primary.hover"
for light or dark mode. Without a file argument the configured palette.path,
its children and accent names are used.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		path, name := "", args[0]
		if len(args) == 2 {
			path, name = args[0], args[1]
		}

		dark, accent, err := readAppearance(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		set, err := loadConfiguredSet(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		color, ok := set.Resolve(name, dark, accent)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: color %q not found\n", name)
			os.Exit(1)
		}

		fmt.Printf("%s\t%s\t%s\n", name, color.Hex(), color.CSS())
	},
}

var cssCmd = &cobra.Command{
	Use:   "css [file]",
	Short: "Generate theme CSS for a colorset file",
	Long: `Generate CSS custom properties from a colorset file. By default the
semantic theme roles are emitted; --all emits one property per color.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		dark, accent, err := readAppearance(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		set, err := loadConfiguredSet(optionalArg(args, 0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if all, _ := cmd.Flags().GetBool("all"); all {
			fmt.Print(themes.GenerateSetCSS(set, dark, accent))
			return
		}
		fmt.Print(themes.GenerateCSS(themes.GenerateColors(set, dark, accent)))
	},
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the built-in theme palettes",
	Run: func(cmd *cobra.Command, args []string) {
		swatch, _ := cmd.Flags().GetBool("swatch")
		for _, p := range themes.ListPalettes() {
			set, err := p.ColorSet()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s: %v\n", p.Name, err)
				continue
			}
			primary, _ := set.Resolve(themes.RolePrimary, false, nil)
			secondary, _ := set.Resolve(themes.RoleSecondary, false, nil)
			fmt.Printf("%-12s %s %s\n", p.Name, formatColor(primary, swatch), formatColor(secondary, swatch))
		}
	},
}

func init() {
	addAppearanceFlags(resolveCmd)
	addAppearanceFlags(cssCmd)
	cssCmd.Flags().Bool("all", false, "Emit a custom property for every color")
	themesCmd.Flags().Bool("swatch", false, "Render each color as a terminal swatch")

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(cssCmd)
	rootCmd.AddCommand(themesCmd)
}
