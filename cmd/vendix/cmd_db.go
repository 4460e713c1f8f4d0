package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vendixlabs/vendix/config"
	"github.com/vendixlabs/vendix/database/seeders"
	"github.com/vendixlabs/vendix/internal/server"
	"github.com/vendixlabs/vendix/pkg/database"
	"github.com/vendixlabs/vendix/pkg/kvstore"
	"github.com/vendixlabs/vendix/pkg/storage"
)

// bootStore opens the configured database and the document store, the
// shared prelude of every offline CLI command.
func bootStore() (kvstore.Store, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := database.Connect(); err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return kvstore.NewGorm(database.DB)
}

// bootApp additionally wires the service layer and storage disks.
func bootApp() (*server.App, error) {
	store, err := bootStore()
	if err != nil {
		return nil, err
	}
	storage.Connect()
	return server.Boot(store), nil
}

// vendix db:init — create the database schema.
var dbInitCmd = &cobra.Command{
	Use:   "db:init",
	Short: "Create the database file and the documents table",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := bootStore(); err != nil {
			return err
		}
		fmt.Println("Database initialised.")
		return nil
	},
}

// vendix db:seed — load demo data.
var dbSeedCmd = &cobra.Command{
	Use:   "db:seed",
	Short: "Seed a demo catalog and the default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := bootStore()
		if err != nil {
			return err
		}
		if err := seeders.Run(store); err != nil {
			return err
		}
		fmt.Println("Seeding complete.")
		return nil
	},
}
