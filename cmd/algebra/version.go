package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/algebra"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of algebra",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "algebra version %s\n", strings.TrimSpace(algebra.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
