package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vendix",
	Short: "Vendix — offline-first point-of-sale daemon",
	Long:  "Vendix runs a shop register: catalog, checkout, receipts and sales history, all against a local database.",
}

func init() {
	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(dbInitCmd)
	rootCmd.AddCommand(dbSeedCmd)

	// License
	rootCmd.AddCommand(licenseActivateCmd)
	rootCmd.AddCommand(licenseStatusCmd)

	// Catalog
	rootCmd.AddCommand(catalogExportCmd)
	rootCmd.AddCommand(catalogImportCmd)
}
