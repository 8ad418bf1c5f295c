// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/thatcatcamp/colorset/internal/config"
	"github.com/thatcatcamp/colorset/internal/logging"
	"github.com/thatcatcamp/colorset/internal/storage"
)

var publishCmd = &cobra.Command{
	Use:   "publish <name>...",
	Short: "Upload stored palettes to S3",
	Long: `Upload stored palettes to the configured bucket as
<storage.s3_prefix>/<name>.colorset.`,
	Args: cobra.MinimumNArgs(1),
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

		cfg := storage.Config{
			Bucket:    config.GetString("storage.s3_bucket"),
			Region:    config.GetString("storage.s3_region"),
			Prefix:    config.GetString("storage.s3_prefix"),
			AccessKey: config.GetString("storage.s3_access_key"),
			SecretKey: config.GetString("storage.s3_secret_key"),
			Endpoint:  config.GetString("storage.s3_endpoint"),
		}
		if cfg.Bucket == "" {
			fmt.Fprintf(os.Stderr, "Error: storage.s3_bucket is not set\n")
			os.Exit(1)
		}

		publisher := storage.NewPublisher(storage.NewS3Client(cfg), cfg.Bucket, cfg.Prefix, logging.Component("storage"))
		timeout, _ := cmd.Flags().GetDuration("timeout")

		for _, name := range args {
			set, err := store.Load(name)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			key, err := publisher.Publish(ctx, name, set, format)
			cancel()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}

			fmt.Printf("Published %s to s3://%s/%s\n", name, cfg.Bucket, key)
		}
	},
}

func init() {
	publishCmd.Flags().String("format", "auto", "Format: binary, xml, json or auto")
	publishCmd.Flags().Duration("timeout", 30*time.Second, "Upload timeout per palette")
	rootCmd.AddCommand(publishCmd)
}
