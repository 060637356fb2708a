package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lborres/tasklist/services"
)

func routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the HTTP endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printRoutes(cmd.OutOrStdout())
		},
	}
}

func printRoutes(out io.Writer) error {
	reg, err := services.NewEndpointRegistry()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tPATH\tAUTH\tOPERATION\tDESCRIPTION")
	for _, ep := range reg.Endpoints() {
		auth := "-"
		if ep.Protected {
			auth = "session"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", ep.Method, ep.Path, auth, ep.Metadata.OperationID, ep.Metadata.Description)
	}
	return w.Flush()
}
