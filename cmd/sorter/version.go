package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/muliwe/go-package-sorter/internal/server"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sorter version %s\n", server.Version)
		},
	}
}
