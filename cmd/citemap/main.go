// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the citemap CLI. The map stage
// resolves a free-text reference list to arXiv URLs; the download stage
// fetches the resolved PDFs.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the citemap CLI.
var rootCmd = &cobra.Command{
	Use:   "citemap",
	Short: "Map free-text citations to arXiv papers",
	Long: `citemap resolves a plain-text reference list to arXiv papers.

The map stage reads blank-line-separated citations and writes a mapping
of each citation to its arXiv URL and title. The download stage reads that
mapping and fetches every resolved paper as a PDF named after its title.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./citemap.yaml or ~/.config/citemap/config.yaml)")
	rootCmd.PersistentFlags().String("user-agent", "", "User-Agent header for outbound requests")
	viper.BindPFlag("user_agent", rootCmd.PersistentFlags().Lookup("user-agent"))
}

func initConfig() {
	// A missing .env is normal.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("citemap")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "citemap"))
		}
	}

	viper.SetEnvPrefix("CITEMAP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// userAgent returns the configured User-Agent or one naming this build.
func userAgent() string {
	if ua := viper.GetString("user_agent"); ua != "" {
		return ua
	}
	return "citemap/" + version
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error:"), err)
		os.Exit(exitCode(err))
	}
}
