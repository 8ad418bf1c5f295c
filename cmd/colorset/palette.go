// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thatcatcamp/colorset/internal/colorset"
	"github.com/thatcatcamp/colorset/internal/themes"
)

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Manage stored palettes",
	Long:  "Save, load, link and list palettes in the palette database",
}

var paletteSaveCmd = &cobra.Command{
	Use:   "save <name> <file>",
	Short: "Store a colorset file under a name",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		format, err := formatFlag(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		set, err := colorset.Load(args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		accents, _ := cmd.Flags().GetStringSlice("accent")
		for _, name := range accents {
			set.UseAccentFor(name)
		}

		palette, err := store.Save(args[0], set, format)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Palette saved: %s (%d colors, %s)\n", palette.Name, palette.ColorCount, palette.Format)
	},
}

var paletteLoadCmd = &cobra.Command{
	Use:   "load <name> <file>",
	Short: "Write a stored palette's own colors to a file",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		format, err := formatFlag(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		set, err := store.Load(args[0])
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

var paletteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored palettes",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		list, err := store.List()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing palettes: %v\n", err)
			os.Exit(1)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tFORMAT\tCOLORS\tCHILDREN\tUPDATED")
		for _, p := range list {
			children, err := store.ChildNames(p.Name)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			childList := "-"
			if len(children) > 0 {
				childList = strings.Join(children, ",")
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
				p.Name, p.Format, p.ColorCount, childList, p.UpdatedAt.Format("2006-01-02"))
		}
		w.Flush()
	},
}

var paletteDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored palette",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if err := store.Delete(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error deleting palette: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Palette deleted: %s\n", args[0])
	},
}

var paletteLinkCmd = &cobra.Command{
	Use:   "link <parent> <child>",
	Short: "Make a palette fall back to another",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if err := store.Link(args[0], args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Linked %s -> %s\n", args[0], args[1])
	},
}

var paletteUnlinkCmd = &cobra.Command{
	Use:   "unlink <parent> <child>",
	Short: "Remove a fallback link",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if err := store.Unlink(args[0], args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Unlinked %s -> %s\n", args[0], args[1])
	},
}

var paletteAccentCmd = &cobra.Command{
	Use:   "accent <name> <color>",
	Short: "Mark a color for accent substitution",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if clearMarker, _ := cmd.Flags().GetBool("clear"); clearMarker {
			if err := store.ClearAccent(args[0], args[1]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("%s in %s no longer takes the accent\n", args[1], args[0])
			return
		}

		if err := store.SetAccent(args[0], args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%s in %s now takes the accent\n", args[1], args[0])
	},
}

var paletteSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Store the built-in themes",
	Long: `Store every built-in theme as a palette, plus a "base" palette with the
neutral and status roles that each theme is linked to.`,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if _, err := store.Save("base", themes.BaseSet(), colorset.FormatBinary); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		for _, p := range themes.ListPalettes() {
			set, err := p.ColorSet()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s: %v\n", p.Name, err)
				os.Exit(1)
			}
			if _, err := store.Save(p.Name, set, colorset.FormatBinary); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}

			children, err := store.ChildNames(p.Name)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			if len(children) == 0 {
				if err := store.Link(p.Name, "base"); err != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
					os.Exit(1)
				}
			}
			fmt.Printf("Seeded %s\n", p.Name)
		}
	},
}

func init() {
	for _, c := range []*cobra.Command{paletteSaveCmd, paletteLoadCmd} {
		c.Flags().String("format", "auto", "Format: binary, xml, json or auto")
	}
	paletteSaveCmd.Flags().StringSlice("accent", nil, "Color names that take the accent")
	paletteAccentCmd.Flags().Bool("clear", false, "Remove the accent marker instead")

	paletteCmd.AddCommand(paletteSaveCmd)
	paletteCmd.AddCommand(paletteLoadCmd)
	paletteCmd.AddCommand(paletteListCmd)
	paletteCmd.AddCommand(paletteDeleteCmd)
	paletteCmd.AddCommand(paletteLinkCmd)
	paletteCmd.AddCommand(paletteUnlinkCmd)
	paletteCmd.AddCommand(paletteAccentCmd)
	paletteCmd.AddCommand(paletteSeedCmd)
	rootCmd.AddCommand(paletteCmd)
}
