package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vendixlabs/vendix/pkg/storage"
)

var exportDisk string

// vendix catalog:export — snapshot the catalog to a storage disk.
var catalogExportCmd = &cobra.Command{
	Use:   "catalog:export",
	Short: "Export the catalog as JSON to a storage disk",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootApp()
		if err != nil {
			return err
		}
		data, err := app.Catalog.Export()
		if err != nil {
			return err
		}
		path := fmt.Sprintf("exports/catalog-%s.json", time.Now().Format("2006-01-02-150405"))
		if err := storage.Disk(exportDisk).Put(path, data); err != nil {
			return err
		}
		fmt.Println("Exported to", path, "on disk", exportDisk)
		return nil
	},
}

// vendix catalog:import <file> — replace the catalog from a JSON file.
var catalogImportCmd = &cobra.Command{
	Use:   "catalog:import <file>",
	Short: "Replace the whole catalog from a JSON array file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		app, err := bootApp()
		if err != nil {
			return err
		}
		count, err := app.Catalog.Import(payload)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d product(s).\n", count)
		return nil
	},
}

func init() {
	catalogExportCmd.Flags().StringVar(&exportDisk, "disk", "local", `storage disk to write to ("local" or "s3")`)
}
