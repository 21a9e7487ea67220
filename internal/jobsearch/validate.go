// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package jobsearch

import (
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cast"

	"github.com/pdiddy/job-search/pkg/types"
)

var validate = validator.New()

// RawConfig holds configuration values as they arrive from the config file,
// environment, or flags, before any type is known.
type RawConfig struct {
	Endpoint   any
	SearchText any
	Locations  any
	PageSize   any

	// HTTP is passed through to the validated config unchanged.
	HTTP types.HTTPConfig
}

// WithProfile fills Endpoint and Locations from p where they are unset.
func (r RawConfig) WithProfile(p Profile) RawConfig {
	if r.Endpoint == nil {
		r.Endpoint = p.Endpoint
	}
	if r.Locations == nil && p.Locations != nil {
		r.Locations = slices.Clone(p.Locations)
	}
	return r
}

// FieldError describes one invalid setting.
type FieldError struct {
	// Setting is the configuration key, e.g. "page_size".
	Setting string
	// Message is the user-facing sentence printed for this setting.
	Message string
}

func (e *FieldError) Error() string { return e.Message }

// Validate checks every field of raw and converts it into a SearchConfig.
// All checks run; each failed check writes one "Error: ..." line to w. When
// any check fails the returned error wraps ErrValidation and a
// *multierror.Error holding one *FieldError per failure.
func Validate(raw RawConfig, w io.Writer) (types.SearchConfig, error) {
	cfg := types.SearchConfig{HTTPConfig: raw.HTTP}
	var problems *multierror.Error

	if endpoint, ok := toEndpoint(raw.Endpoint); ok {
		cfg.Endpoint = endpoint
	} else {
		problems = multierror.Append(problems, &FieldError{
			Setting: "endpoint",
			Message: `The "endpoint" setting is not set to a valid URL.`,
		})
	}

	if text, ok := raw.SearchText.(string); ok {
		cfg.SearchText = text
	} else {
		problems = multierror.Append(problems, &FieldError{
			Setting: "search_text",
			Message: `The "search_text" setting is not set to a valid string.`,
		})
	}

	if locations, ok := toLocations(raw.Locations); ok {
		cfg.Locations = locations
	} else {
		problems = multierror.Append(problems, &FieldError{
			Setting: "locations",
			Message: `The "locations" setting is not set to a valid array.`,
		})
	}

	if size, ok := toPageSize(raw.PageSize); ok {
		cfg.PageSize = size
	} else {
		problems = multierror.Append(problems, &FieldError{
			Setting: "page_size",
			Message: fmt.Sprintf(`The "page_size" setting can only be set to a whole number between 1 and %d.`, types.MaxPageSize),
		})
	}

	if problems != nil {
		for _, p := range problems.Errors {
			fmt.Fprintf(w, "Error: %s\n", p)
		}
		return types.SearchConfig{}, fmt.Errorf("%w: %w", ErrValidation, problems)
	}
	return cfg, nil
}

// Valid reports whether raw passes validation, writing diagnostics to w.
func Valid(raw RawConfig, w io.Writer) bool {
	_, err := Validate(raw, w)
	return err == nil
}

func toEndpoint(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	if err := validate.Var(s, "required,url"); err != nil {
		return "", false
	}
	return s, true
}

// toLocations accepts nil (no location filter), a []string, or a []any of
// scalars as produced by YAML decoding.
func toLocations(v any) ([]string, bool) {
	switch l := v.(type) {
	case nil:
		return nil, true
	case []string:
		return slices.Clone(l), true
	case []any:
		out := make([]string, 0, len(l))
		for _, item := range l {
			switch item.(type) {
			case nil, []any, map[string]any:
				return nil, false
			}
			s, err := cast.ToStringE(item)
			if err != nil {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

// toPageSize accepts integers, whole floats, and numeric strings in
// [1, MaxPageSize].
func toPageSize(v any) (int, bool) {
	switch v.(type) {
	case nil, bool:
		return 0, false
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, false
	}
	if f != math.Trunc(f) || f < 1 || f > types.MaxPageSize {
		return 0, false
	}
	return int(f), true
}
