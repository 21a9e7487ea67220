//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
)

// Search builds the CLI and runs a search with the local configuration.
// Extra arguments can be passed in JOB_SEARCH_ARGS, e.g. "--profile workday".
func Search() error {
	mg.Deps(Build)

	args := []string{"search", "--verbose"}
	if extra := os.Getenv("JOB_SEARCH_ARGS"); extra != "" {
		args = append(args, strings.Fields(extra)...)
	}
	cmd := exec.Command(filepath.Join(binDir, binName), args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("job-search search: %w", err)
	}
	return nil
}
