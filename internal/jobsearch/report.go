// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package jobsearch

import (
	"fmt"
	"io"
)

// Report writes the one-line summary followed by each filtered title
// indented by four spaces.
func Report(w io.Writer, all, filtered []string, searchText string) {
	switch {
	case len(all) != len(filtered):
		fmt.Fprintf(w, "%d jobs found, %d of which contain the word \"%s\" in the job title:\n",
			len(all), len(filtered), searchText)
	case len(all) == 0:
		fmt.Fprintln(w, "No jobs found.")
	default:
		fmt.Fprintf(w, "%d jobs found:\n", len(all))
	}

	for _, title := range filtered {
		fmt.Fprintf(w, "    %s\n", title)
	}
}
