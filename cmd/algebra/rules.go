package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/aretw0/algebra/pkg/rules"
	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the rewrite rules in priority order",
	RunE: func(cmd *cobra.Command, args []string) error {
		descriptions := rules.NewRegistry().Describe()

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(descriptions)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TAG\tPRIORITY\tRULE\tSYMBOLIC")
		for _, d := range descriptions {
			fmt.Fprintf(w, "%s\t%d\t%s\t%t\n", d.Tag.Short(), d.Priority, strings.TrimPrefix(d.Name, rules.Prefix), d.Symbolic)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.Flags().Bool("json", false, "Print the rules as JSON")
}
