// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the job-search CLI.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

const defaultUserAgent = "job-search/0.1"

// rootCmd is the base command for the job-search CLI.
var rootCmd = &cobra.Command{
	Use:   "job-search",
	Short: "Search Workday career sites for jobs by title keyword",
	Long: `job-search queries the search API of a Workday career site, pages through
every result, and lists the job titles that contain the search text.

Settings come from built-in profiles, a job-search.yaml config file, a .env
file, JOB_SEARCH_* environment variables, and flags, in increasing order of
precedence.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", envFile, err)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./job-search.yaml or ~/.config/job-search/job-search.yaml)")
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file loaded into the environment before running")
	rootCmd.PersistentFlags().String("history-db", "", "SQLite run history database (empty disables history)")
	rootCmd.PersistentFlags().Bool("verbose", false, "print progress to stderr")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("job-search")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "job-search"))
		}
	}

	viper.BindPFlag("history_db", rootCmd.PersistentFlags().Lookup("history-db"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	viper.SetDefault("search_text", "Security")
	viper.SetDefault("page_size", 20)
	viper.SetDefault("user_agent", defaultUserAgent)
	viper.SetDefault("timeout", time.Duration(0))
	viper.SetDefault("history_max_results", 20)

	viper.SetEnvPrefix("JOB_SEARCH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
