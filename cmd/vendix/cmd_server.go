package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vendixlabs/vendix/internal/server"
	"github.com/vendixlabs/vendix/pkg/kvstore"
)

// vendix serve — start the register daemon.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the register daemon (HTTP, plus gRPC health when configured)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// vendix route:list — print all registered routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		// An in-memory store is enough to build the route table.
		r := server.NewRouter(server.Boot(kvstore.NewMemory()))

		infos := r.Routes()
		if len(infos) == 0 {
			fmt.Println("No named routes registered.")
			return nil
		}

		sort.Slice(infos, func(i, j int) bool {
			if infos[i].Path != infos[j].Path {
				return infos[i].Path < infos[j].Path
			}
			return infos[i].Method < infos[j].Method
		})

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
