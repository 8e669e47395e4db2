package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hashicorp/go-multierror"
)

// Source names where a resolved value came from.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceFile    Source = "file"
	SourceDefault Source = "default"
)

// Flags holds command-line values. The *Set fields record whether the user
// passed the flag, so an explicit false still wins over env and file.
type Flags struct {
	ConfigPath    string
	Color         string
	ExitOnFailure bool
	Timeout       time.Duration
	Run           string
	Debug         bool

	ColorSet         bool
	ExitOnFailureSet bool
	TimeoutSet       bool
	RunSet           bool
	DebugSet         bool
}

// Resolved is the final configuration plus where it came from.
type Resolved struct {
	Config
	File        string // config file read, "" if none
	ColorSource Source
	ExitSource  Source
}

// Resolve merges defaults, the config file, the environment and flags, in
// increasing priority, and validates the result.
func Resolve(flags Flags) (*Resolved, error) {
	fc, path, err := LoadFile(flags.ConfigPath)
	if err != nil {
		return nil, err
	}

	r := &Resolved{Config: Defaults(), File: path, ColorSource: SourceDefault, ExitSource: SourceDefault}
	var errs *multierror.Error

	if err := fc.apply(&r.Config); err != nil {
		errs = multierror.Append(errs, err)
	}
	if fc.Color != "" {
		r.ColorSource = SourceFile
	}
	if fc.ExitOnFailure != nil {
		r.ExitSource = SourceFile
	}

	if err := r.applyEnv(); err != nil {
		errs = multierror.Append(errs, err)
	}
	r.applyFlags(flags)

	if err := r.Validate(); err != nil {
		errs = multierror.Append(errs, err)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return r, nil
}

func (r *Resolved) applyEnv() error {
	var errs *multierror.Error

	if v := os.Getenv("TALLY_COLOR"); v != "" {
		r.Color = ColorMode(v)
		r.ColorSource = SourceEnv
	} else if os.Getenv("NO_COLOR") != "" {
		r.Color = ColorNever
		r.ColorSource = SourceEnv
	}

	if v := os.Getenv("TALLY_EXIT_ON_FAILURE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("TALLY_EXIT_ON_FAILURE: %w", err))
		} else {
			r.ExitOnFailure = b
			r.ExitSource = SourceEnv
		}
	}
	if v := os.Getenv("TALLY_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("TALLY_TIMEOUT: %w", err))
		} else {
			r.Timeout = d
		}
	}
	if v := os.Getenv("TALLY_RUN"); v != "" {
		r.Run = v
	}
	if v := os.Getenv("TALLY_DEBUG"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("TALLY_DEBUG: %w", err))
		} else {
			r.Debug = b
		}
	}
	return errs.ErrorOrNil()
}

func (r *Resolved) applyFlags(f Flags) {
	if f.ColorSet {
		r.Color = ColorMode(f.Color)
		r.ColorSource = SourceFlag
	}
	if f.ExitOnFailureSet {
		r.ExitOnFailure = f.ExitOnFailure
		r.ExitSource = SourceFlag
	}
	if f.TimeoutSet {
		r.Timeout = f.Timeout
	}
	if f.RunSet {
		r.Run = f.Run
	}
	if f.DebugSet {
		r.Debug = f.Debug
	}
}
