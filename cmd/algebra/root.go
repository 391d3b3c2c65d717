package main

import (
	"fmt"
	"os"

	"github.com/aretw0/algebra/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "algebra",
	Short: "algebra reduces symbolic expressions to a canonical form",
	Long: `algebra is a term-rewriting engine for symbolic algebra.

Expressions are JSON or YAML documents describing a tree of tagged nodes:

  {"tag": "Division", "children": [{"tag": "Multiplication", "children": [6, "x"]}, 3]}

Numbers written as integers are exact; numbers with a decimal point are
approximate and computed at the configured precision.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().String("mode", "", "Reduction mode: numeric or symbolic")
	rootCmd.PersistentFlags().Uint("precision", 0, "Decimal digits for approximate numbers")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

// loadConfig reads the configuration file and applies the flags the user set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if flags.Changed("mode") {
		cfg.Mode, _ = flags.GetString("mode")
	}
	if flags.Changed("precision") {
		cfg.Precision, _ = flags.GetUint("precision")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Lookup("port") != nil && flags.Changed("port") {
		cfg.HTTP.Port, _ = flags.GetInt("port")
	}
	if flags.Lookup("cache") != nil && flags.Changed("cache") {
		cfg.Cache.Backend, _ = flags.GetString("cache")
	}
	return cfg, cfg.Validate()
}
