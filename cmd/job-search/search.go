// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/job-search/internal/history"
	"github.com/pdiddy/job-search/internal/jobsearch"
	"github.com/pdiddy/job-search/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search a Workday career site and list matching job titles",
	Long: `Search posts the query to the configured Workday jobs endpoint, fetches
every page of results, and prints the titles that contain the search text
(case-insensitive). With no endpoint configured the nvidia profile is used.

Settings are validated before any request is made; each invalid setting is
reported on its own line.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSearch,
}

func init() {
	searchCmd.Flags().String("profile", "", "built-in career site profile: "+fmt.Sprint(jobsearch.ProfileNames()))
	searchCmd.Flags().String("endpoint", "", "Workday jobs API URL")
	searchCmd.Flags().StringP("search-text", "s", "", "search text, also used to filter titles (default \"Security\")")
	searchCmd.Flags().StringSlice("location", nil, "location facet ID (repeatable)")
	searchCmd.Flags().Bool("no-locations", false, "search without a location filter")
	searchCmd.Flags().Int("page-size", 20, "postings requested per page (1-20)")
	searchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default: none)")
	searchCmd.Flags().StringP("output", "o", "", "write matching postings to a YAML result file")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	raw, err := searchRawConfig(cmd)
	if err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return err
	}

	cfg, err := jobsearch.Validate(raw, out)
	if err != nil {
		fmt.Fprintln(out, "Error: Ending program, input validation failed.")
		return err
	}

	client := jobsearch.NewClient(cfg.HTTPConfig)
	if viper.GetBool("verbose") {
		client.Log = errOut
	}

	result, err := jobsearch.Run(context.Background(), client, cfg, out)
	if err != nil {
		fmt.Fprintln(out, "There was an error running the script.")
		fmt.Fprintf(errOut, "job-search: %v\n", err)
		return err
	}

	if path, _ := cmd.Flags().GetString("output"); path != "" {
		if err := jobsearch.WriteResultFile(path, result); err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", err)
			return err
		}
		logf(errOut, "wrote %s\n", path)
	}

	if dbPath := viper.GetString("history_db"); dbPath != "" {
		if err := recordRun(dbPath, result); err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", err)
			return err
		}
		logf(errOut, "recorded run %s in %s\n", result.ID, dbPath)
	}
	return nil
}

// searchRawConfig layers settings: profile, then config file and
// environment, then flags that were set explicitly.
func searchRawConfig(cmd *cobra.Command) (jobsearch.RawConfig, error) {
	flags := cmd.Flags()

	raw := jobsearch.RawConfig{
		Endpoint:   viper.Get("endpoint"),
		SearchText: viper.Get("search_text"),
		Locations:  viper.Get("locations"),
		PageSize:   viper.Get("page_size"),
		HTTP: types.HTTPConfig{
			Timeout:   viper.GetDuration("timeout"),
			UserAgent: viper.GetString("user_agent"),
		},
	}

	if flags.Changed("endpoint") {
		raw.Endpoint, _ = flags.GetString("endpoint")
	}
	if flags.Changed("search-text") {
		raw.SearchText, _ = flags.GetString("search-text")
	}
	if flags.Changed("location") {
		raw.Locations, _ = flags.GetStringSlice("location")
	}
	if flags.Changed("page-size") {
		raw.PageSize, _ = flags.GetInt("page-size")
	}
	if flags.Changed("timeout") {
		raw.HTTP.Timeout, _ = flags.GetDuration("timeout")
	}

	profile := viper.GetString("profile")
	if flags.Changed("profile") {
		profile, _ = flags.GetString("profile")
	}
	if profile == "" && raw.Endpoint == nil {
		profile = jobsearch.DefaultProfile
	}
	if profile != "" {
		p, err := jobsearch.LookupProfile(profile)
		if err != nil {
			return raw, err
		}
		raw = raw.WithProfile(p)
	}

	if noLocations, _ := flags.GetBool("no-locations"); noLocations {
		raw.Locations = nil
	}
	return raw, nil
}

func recordRun(dbPath string, result types.RunResult) error {
	store, err := history.Open(types.HistoryConfig{
		Path:       dbPath,
		MaxResults: viper.GetInt("history_max_results"),
	})
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Record(context.Background(), result)
	return err
}

func logf(w io.Writer, format string, args ...any) {
	if viper.GetBool("verbose") {
		fmt.Fprintf(w, format, args...)
	}
}
