// Package compiler defines the compiler capability consumed by build-settings
// resolution and provides a registry of known compiler identities with a
// DMD-style default.
package compiler

import (
	"github.com/glorpus-work/mason/pkg/platform"
	"github.com/glorpus-work/mason/pkg/recipe"
)

// dmdFlagOptions maps raw DMD-style flags to their structured option.
var dmdFlagOptions = map[string]recipe.BuildOption{
	"-debug":           recipe.OptionDebugMode,
	"-release":         recipe.OptionReleaseMode,
	"-cov":             recipe.OptionCoverage,
	"-cov=ctfe":        recipe.OptionCoverageCTFE,
	"-g":               recipe.OptionDebugInfo,
	"-gc":              recipe.OptionDebugInfoC,
	"-gs":              recipe.OptionAlwaysStackFrame,
	"-gx":              recipe.OptionStackStomping,
	"-inline":          recipe.OptionInline,
	"-boundscheck=off": recipe.OptionNoBoundsCheck,
	"-noboundscheck":   recipe.OptionNoBoundsCheck,
	"-O":               recipe.OptionOptimize,
	"-profile":         recipe.OptionProfile,
	"-profile=gc":      recipe.OptionProfileGC,
	"-unittest":        recipe.OptionUnittests,
	"-v":               recipe.OptionVerbose,
	"-ignore":          recipe.OptionIgnoreUnknownPragmas,
	"-o-":              recipe.OptionSyntaxOnly,
	"-wi":              recipe.OptionWarnings,
	"-w":               recipe.OptionWarningsAsErrors,
	"-d":               recipe.OptionIgnoreDeprecations,
	"-dw":              recipe.OptionDeprecationWarnings,
	"-de":              recipe.OptionDeprecationErrors,
	"-property":        recipe.OptionProperty,
	"-betterC":         recipe.OptionBetterC,
	"-lowmem":          recipe.OptionLowmem,
}

// DMD models the reference compiler's flag vocabulary. LDC and GDC front-ends
// accept the same flags through their dmd-compatible wrappers, so they share
// this implementation with their own identity.
type DMD struct {
	identity string
}

// NewDMD returns the default compiler capability.
func NewDMD() *DMD {
	return &DMD{identity: "dmd"}
}

// Name returns the compiler identity.
func (c *DMD) Name() string {
	return c.identity
}

// ExtractBuildFlags promotes recognized raw flags into structured options.
func (c *DMD) ExtractBuildFlags(bs *recipe.BuildSettings) {
	kept := bs.DFlags[:0]
	for _, flag := range bs.DFlags {
		if option, ok := dmdFlagOptions[flag]; ok {
			bs.Options.Add(option)
		} else {
			kept = append(kept, flag)
		}
	}
	bs.DFlags = kept
}

// TargetFileName computes the platform-specific artifact file name.
func (c *DMD) TargetFileName(bs recipe.BuildSettings, p platform.Platform) string {
	name := bs.TargetName
	if name == "" {
		return ""
	}
	windows := p.OS == platform.OSWindows

	switch bs.TargetType {
	case recipe.TargetExecutable:
		if windows {
			return name + ".exe"
		}
		return name
	case recipe.TargetLibrary, recipe.TargetStaticLibrary:
		if windows {
			return name + ".lib"
		}
		return "lib" + name + ".a"
	case recipe.TargetDynamicLibrary:
		switch p.OS {
		case platform.OSWindows:
			return name + ".dll"
		case platform.OSDarwin:
			return "lib" + name + ".dylib"
		default:
			return "lib" + name + ".so"
		}
	case recipe.TargetObject:
		if windows {
			return name + ".obj"
		}
		return name + ".o"
	default:
		// none, sourceLibrary and autodetect produce no artifact.
		return ""
	}
}
