// Package config resolves tally's run settings.
//
// # Precedence
//
// Values are resolved in this order (highest to lowest priority):
//
//  1. Command-line flags (--color, --exit-on-failure, --timeout, --run, --debug)
//  2. Environment variables (TALLY_COLOR, NO_COLOR, TALLY_EXIT_ON_FAILURE, ...)
//  3. YAML config file (.tally.yaml in the working directory, or
//     ~/.config/tally/.tally.yaml, or the file named by --config)
//  4. Hardcoded defaults
//
// # Settings
//
//   - color: auto, always or never. auto styles output only when stdout is
//     a terminal.
//   - exit_on_failure: exit with status 1 when any test did not pass. Off by
//     default, so a run always reports success to its caller.
//   - timeout: per-test deadline as a Go duration ("5s"). 0 disables it.
//   - run: glob selecting which tests run.
//   - debug: write debug logs to stderr.
//
// # Environment Variables
//
//   - TALLY_COLOR: auto, always or never
//   - NO_COLOR: any non-empty value forces color off (unless TALLY_COLOR is set)
//   - TALLY_EXIT_ON_FAILURE, TALLY_DEBUG: "true"/"false"/"1"/"0"
//   - TALLY_TIMEOUT: Go duration
//   - TALLY_RUN: glob
package config
