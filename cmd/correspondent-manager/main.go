// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the correspondent-manager CLI,
// a maintenance tool for paperless-ngx correspondents: find duplicate
// or similar names, merge them, and clean up empty entries.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/correspondent-manager/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the correspondent-manager CLI.
var rootCmd = &cobra.Command{
	Use:   "correspondent-manager",
	Short: "Manage paperless-ngx correspondents",
	Long: `correspondent-manager talks to a paperless-ngx instance over its REST API
and cleans up the correspondent list: it finds exact duplicates and
similarly named correspondents, merges them by reassigning their
documents, and deletes correspondents that no longer own anything.

The server is configured with --url and --token, or the PAPERLESS_URL
and PAPERLESS_TOKEN environment variables, or a config file. A token
can also be placed in .secrets/paperless-token.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
			color.NoColor = true
		} else if !isatty.IsTerminal(os.Stdout.Fd()) {
			color.NoColor = true
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./correspondent-manager.yaml or ~/.config/correspondent-manager/config.yaml)")
	rootCmd.PersistentFlags().String("url", "", "paperless-ngx base URL (env: PAPERLESS_URL)")
	rootCmd.PersistentFlags().String("token", "", "paperless-ngx API token (env: PAPERLESS_TOKEN)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	rootCmd.PersistentFlags().Bool("yes", false, "answer yes to all confirmation prompts")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	viper.BindPFlag("url", rootCmd.PersistentFlags().Lookup("url"))
	viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
	viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usage("%v", err)
	})
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("correspondent-manager")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "correspondent-manager"))
		}
	}

	viper.SetEnvPrefix("PAPERLESS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// resolveToken returns the API token from flag/env/config, falling back
// to the .secrets/paperless-token key file.
func resolveToken() string {
	if token := viper.GetString("token"); token != "" {
		return token
	}
	token, err := secrets.Token(".secrets/")
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not read secrets: %v\n", err)
		return ""
	}
	return token
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var uerr *usageError
		if errors.As(err, &uerr) {
			fmt.Fprintf(os.Stderr, "error: %v\n", uerr)
			fmt.Fprintf(os.Stderr, "Run '%s --help' for usage.\n", rootCmd.Name())
			os.Exit(2)
		}
		color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
