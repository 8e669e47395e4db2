//go:build mage

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	modulePath = "github.com/dkoosis/tally"
	binPath    = "./bin/tally"
)

// Default target - build the binary
var Default = Build

// Build builds the tally self-check binary with version metadata.
func Build() error {
	version := gitOutput("dev", "describe", "--tags", "--always", "--dirty", "--match=v*")
	commit := gitOutput("unknown", "rev-parse", "--short", "HEAD")
	date := time.Now().UTC().Format(time.RFC3339)

	ldflags := fmt.Sprintf("-s -w -X '%[1]s/internal/version.Version=%[2]s' -X '%[1]s/internal/version.CommitHash=%[3]s' -X '%[1]s/internal/version.BuildDate=%[4]s'",
		modulePath, version, commit, date)
	return sh.RunV("go", "build", "-ldflags", ldflags, "-o", binPath, "./cmd/tally")
}

// Clean removes build artifacts
func Clean() error {
	return os.RemoveAll("./bin")
}

// SelfTest builds tally and runs its own suite, failing on any non-pass.
func SelfTest() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "--exit-on-failure")
}

// Scenario runs the example program that shows every report outcome.
func Scenario() error {
	return sh.RunV("go", "run", "./examples/scenario")
}

// QA runs formatting, vet, tests and the self-check suite.
func QA() {
	mg.SerialDeps(Lint.Format, Lint.Vet, Test.All, SelfTest)
}

// Lint namespace for linting commands
type Lint mg.Namespace

// Format fails if any file needs gofmt.
func (Lint) Format() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return err
	}
	if out != "" {
		return fmt.Errorf("files need gofmt:\n%s", out)
	}
	return nil
}

// Vet runs go vet
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Test namespace for testing commands
type Test mg.Namespace

// All runs all tests
func (Test) All() error {
	return sh.RunV("go", "test", "./...")
}

// Race runs tests with race detector
func (Test) Race() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Update regenerates golden files.
func (Test) Update() error {
	return sh.RunV("go", "test", "./pkg/runner/", "-update")
}

func gitOutput(fallback string, args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil || strings.TrimSpace(out) == "" {
		return fallback
	}
	return strings.TrimSpace(out)
}
