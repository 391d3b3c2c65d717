package main

import (
	"github.com/aretw0/algebra/internal/cli"
	"github.com/spf13/cobra"
)

var reduceCmd = &cobra.Command{
	Use:   "reduce [file|-]",
	Short: "Reduce an expression document",
	Long: `Reads an expression from a file, from stdin ("-" or no argument) or from
--expr, and prints its canonical form.`,
	Example: `  algebra reduce expr.yaml
  echo '{"tag": "Negative", "children": [{"tag": "Negative", "children": ["x"]}]}' | algebra reduce
  algebra reduce --expr '{"tag": "Division", "children": ["x", 0]}' --trace`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		debug, _ := cmd.Flags().GetBool("debug")
		logger, err := cli.NewLogger(cfg.LogLevel, debug)
		if err != nil {
			return err
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		svc, err := cli.NewServices(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer svc.Close()

		opts := cli.ReduceOptions{}
		if len(args) > 0 {
			opts.Path = args[0]
		}
		opts.Expression, _ = cmd.Flags().GetString("expr")
		opts.Format, _ = cmd.Flags().GetString("format")
		opts.Output, _ = cmd.Flags().GetString("output")
		opts.Trace, _ = cmd.Flags().GetBool("trace")

		return cli.RunReduce(ctx, svc.Engine, opts, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(reduceCmd)
	reduceCmd.Flags().StringP("expr", "e", "", "Inline expression document")
	reduceCmd.Flags().StringP("format", "f", "", "Input format: json or yaml (default: by extension)")
	reduceCmd.Flags().StringP("output", "o", "text", "Output: text, json, yaml or mermaid")
	reduceCmd.Flags().Bool("trace", false, "Print the rules applied during the reduction")
	reduceCmd.Flags().String("cache", "", "Cache backend: none, memory or redis")
}
