// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package jobsearch

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Profile is a named Workday career site with its location facet IDs.
type Profile struct {
	Name      string
	Endpoint  string
	Locations []string
}

// DefaultProfile is used when neither a profile nor an endpoint is configured.
const DefaultProfile = "nvidia"

var profiles = map[string]Profile{
	"nvidia": {
		Name:     "nvidia",
		Endpoint: "https://nvidia.wd5.myworkdayjobs.com/wday/cxs/nvidia/NVIDIAExternalCareerSite/jobs",
		Locations: []string{
			"c498fba66f4e01f896020488d5007305",
			"91336993fab910af6d702fae0bb4c2e8",
			"91336993fab910af6d716528e9d4c406",
		},
	},
	"workday": {
		Name:     "workday",
		Endpoint: "https://workday.wd5.myworkdayjobs.com/wday/cxs/workday/Workday/jobs",
		Locations: []string{
			"5e834d290de7475ba43b61959f6a9d1c",
			"289a125164674dd28c79bc9bb7e46fd8",
			"9da5d518486801f61a50c4aedf1ab23f",
		},
	},
}

// LookupProfile returns the built-in profile with the given name.
func LookupProfile(name string) (Profile, error) {
	p, ok := profiles[strings.ToLower(name)]
	if !ok {
		return Profile{}, fmt.Errorf("unknown profile %q: use one of %s", name, strings.Join(ProfileNames(), ", "))
	}
	p.Locations = slices.Clone(p.Locations)
	return p, nil
}

// ProfileNames returns the built-in profile names in sorted order.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
