// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thatcatcamp/colorset/internal/backup"
	"github.com/thatcatcamp/colorset/internal/config"
	"github.com/thatcatcamp/colorset/internal/logging"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage palette backups",
	Long:  "Commands for managing palette database backups: create, list, restore and delete",
}

func newBackupManager() *backup.BackupManager {
	return backup.NewBackupManager(config.GetString("backups.path"), logging.Component("backup"))
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Back up every stored palette",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		note, _ := cmd.Flags().GetString("note")
		filename, err := newBackupManager().CreateBackup(store, note)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: backup failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Backup created: %s\n", filename)
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available backups",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		backups, err := newBackupManager().ListBackups()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if len(backups) == 0 {
			fmt.Println("No backups found")
			return
		}

		fmt.Println("Available backups:")
		for i, b := range backups {
			fmt.Printf("%d. %s (%s, %d bytes)\n", i+1, b.Filename, b.CreatedAt.Format("2006-01-02 15:04:05"), b.Size)
		}
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <filename>",
	Short: "Restore palettes from a backup",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		filename := args[0]
		manager := newBackupManager()

		manifest, err := manager.ReadManifest(filename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			fmt.Printf("This will overwrite %d stored palettes with the copies in '%s'.\n", len(manifest.Palettes), filename)
			fmt.Printf("Type 'yes' to confirm: ")

			var confirmation string
			fmt.Scanln(&confirmation)
			if confirmation != "yes" {
				fmt.Println("Restore cancelled.")
				return
			}
		}

		count, err := manager.RestoreBackup(filename, store)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: restore failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Restored %d palettes from %s\n", count, filename)
	},
}

var backupDeleteCmd = &cobra.Command{
	Use:   "delete <filename>",
	Short: "Delete a backup",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if err := newBackupManager().DeleteBackup(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Deleted %s\n", args[0])
	},
}

func init() {
	backupCreateCmd.Flags().String("note", "", "Note stored in the backup manifest")
	backupRestoreCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")

	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	backupCmd.AddCommand(backupDeleteCmd)
	rootCmd.AddCommand(backupCmd)
}
