// Package runenv resolves the SOURCE and BUILD roots propagated to
// every child process (§6's child-process contract) and to the test
// locator.
package runenv

import "os"

// Roots names the source and build directories a batch run is scoped
// to.
type Roots struct {
	Source string
	Build  string
}

// Resolve builds Roots from explicit CLI overrides, falling back to the
// SOURCE/BUILD environment variables, and finally to the current
// directory.
func Resolve(sourceFlag, buildFlag string) Roots {
	r := Roots{
		Source: firstNonEmpty(sourceFlag, os.Getenv("SOURCE"), "."),
		Build:  firstNonEmpty(buildFlag, os.Getenv("BUILD"), "."),
	}
	return r
}

// Env renders Roots as the extra KEY=VALUE pairs the Supervisor appends
// to every child's environment.
func (r Roots) Env() []string {
	return []string{"SOURCE=" + r.Source, "BUILD=" + r.Build}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
