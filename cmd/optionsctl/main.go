// Package main is the entry point for the optionsctl CLI.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"options-contracts-api/internal/config"
	"options-contracts-api/internal/logging"
	"options-contracts-api/pkg/server"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "optionsctl",
	Short: "Query option contract snapshots from the command line",
	Long: `optionsctl runs the same contract queries as the API and prints the JSON
response. Flags override environment variables, which override the config file.`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./optionsctl.yaml or ~/.config/optionsctl/config.yaml)")
	rootCmd.PersistentFlags().String("api-key", "", "provider API key (env POLYGON_API_KEY)")
	rootCmd.PersistentFlags().String("ticker", "", "underlying ticker symbol (env DEFAULT_TICKER)")
	rootCmd.PersistentFlags().Duration("timeout", 30*time.Second, "overall command timeout")

	_ = viper.BindPFlag("POLYGON_API_KEY", rootCmd.PersistentFlags().Lookup("api-key"))
	_ = viper.BindPFlag("DEFAULT_TICKER", rootCmd.PersistentFlags().Lookup("ticker"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("optionsctl")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "optionsctl"))
		}
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newContainer loads configuration with flag bindings applied and wires the service.
func newContainer() (*server.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg.Logging)
	return server.NewContainer(cfg)
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout <= 0 {
		return context.WithCancel(cmd.Context())
	}
	return context.WithTimeout(cmd.Context(), timeout)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
