package compiler

import (
	"github.com/glorpus-work/mason/pkg/platform"
	"github.com/glorpus-work/mason/pkg/recipe"
)

// Compiler is the capability this core needs from a compiler front-end:
// normalizing raw flags into structured build options and naming the build
// artifact. Actual compiler invocation lives outside this module.
type Compiler interface {
	// Name returns the compiler identity ("dmd", "ldc", ...).
	Name() string

	// ExtractBuildFlags promotes recognized raw compiler flags in the
	// settings into structured build options and strips them from the raw
	// flag list. The operation is idempotent.
	ExtractBuildFlags(bs *recipe.BuildSettings)

	// TargetFileName computes the file name of the build artifact for the
	// given settings and platform. Returns "" for target types that produce
	// no artifact.
	TargetFileName(bs recipe.BuildSettings, p platform.Platform) string
}
