//go:build mage
// +build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target when running "mage" without arguments.
func Default() error {
	var t Test
	return t.Unit()
}

// Test namespace groups the project's test targets.
type Test mg.Namespace

// Unit runs the full unit test suite.
func (Test) Unit() error {
	fmt.Println("==> go test ./...")
	return sh.RunV("go", "test", "./...")
}

// Race runs the test suite with the race detector enabled.
func (Test) Race() error {
	fmt.Println("==> go test -race ./...")
	return sh.RunV("go", "test", "-race", "./...")
}

// Cover runs the test suite with coverage profiling and prints the summary.
func (Test) Cover() error {
	if err := sh.RunV("go", "test", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-func=coverage.out")
}

// Build namespace groups the binary-build targets.
type Build mg.Namespace

// CLI builds the taprun binary into ./bin.
func (Build) CLI() error {
	mg.Deps(Test{}.Unit)
	fmt.Println("==> go build -o bin/taprun ./cmd/taprun")
	return sh.RunV("go", "build", "-o", "bin/taprun", "./cmd/taprun")
}

// Lint namespace groups static-analysis targets.
type Lint mg.Namespace

// Vet runs go vet across the module.
func (Lint) Vet() error {
	fmt.Println("==> go vet ./...")
	return sh.RunV("go", "vet", "./...")
}

// Generate regenerates the go.uber.org/mock mocks.
func Generate() error {
	fmt.Println("==> go generate ./...")
	return sh.RunV("go", "generate", "./...")
}
