package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// vendix license:activate <key> — validate and persist a license key.
var licenseActivateCmd = &cobra.Command{
	Use:   "license:activate <key>",
	Short: "Validate a license key and unlock the register",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootApp()
		if err != nil {
			return err
		}
		status, err := app.License.Activate(args[0])
		if err != nil {
			return err
		}
		if !status.Valid {
			return fmt.Errorf("license rejected: %s", status.Reason)
		}
		fmt.Printf("License active until %s (%d day(s) remaining)\n",
			status.ExpiresDisplay, status.DaysRemaining)
		if status.Warning != "" {
			fmt.Println("Warning:", status.Warning)
		}
		return nil
	},
}

// vendix license:status — print the current license state.
var licenseStatusCmd = &cobra.Command{
	Use:   "license:status",
	Short: "Show the current license state",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootApp()
		if err != nil {
			return err
		}
		status := app.License.Status()
		if !status.Valid {
			fmt.Println("Register locked:", status.Reason)
			return nil
		}
		fmt.Printf("Licensed: %s, expires %s (%d day(s) remaining)\n",
			status.Key, status.ExpiresDisplay, status.DaysRemaining)
		if status.Warning != "" {
			fmt.Println("Warning:", status.Warning)
		}
		return nil
	},
}
