package pack

import (
	"strings"

	"github.com/glorpus-work/mason/pkg/errors"
	"github.com/glorpus-work/mason/pkg/platform"
	"github.com/glorpus-work/mason/pkg/recipe"
)

// BuildTypeDFlags is the reserved pseudo build type that appends the DFLAGS
// environment value verbatim as raw compiler flags. It is the single point
// where the process environment is consulted during settings resolution.
const BuildTypeDFlags = "$DFLAGS"

// builtinBuildType carries the deterministic effect of a built-in build type.
type builtinBuildType struct {
	options recipe.BuildOptions
	dflags  []string
}

var builtinBuildTypes = map[string]builtinBuildType{
	"plain": {},
	"debug": {
		options: recipe.NewBuildOptions(recipe.OptionDebugMode, recipe.OptionDebugInfo),
	},
	"release": {
		options: recipe.NewBuildOptions(recipe.OptionReleaseMode, recipe.OptionOptimize, recipe.OptionInline),
	},
	"release-debug": {
		options: recipe.NewBuildOptions(recipe.OptionReleaseMode, recipe.OptionOptimize,
			recipe.OptionInline, recipe.OptionDebugInfo),
	},
	"release-nobounds": {
		options: recipe.NewBuildOptions(recipe.OptionReleaseMode, recipe.OptionOptimize,
			recipe.OptionInline, recipe.OptionNoBoundsCheck),
	},
	"unittest": {
		options: recipe.NewBuildOptions(recipe.OptionUnittests, recipe.OptionDebugMode, recipe.OptionDebugInfo),
	},
	"unittest-cov": {
		options: recipe.NewBuildOptions(recipe.OptionUnittests, recipe.OptionCoverage,
			recipe.OptionDebugMode, recipe.OptionDebugInfo),
	},
	"cov": {
		options: recipe.NewBuildOptions(recipe.OptionCoverage, recipe.OptionDebugInfo),
	},
	"docs": {
		options: recipe.NewBuildOptions(recipe.OptionSyntaxOnly),
		dflags:  []string{"-Dddocs"},
	},
	"ddox": {
		options: recipe.NewBuildOptions(recipe.OptionSyntaxOnly),
		dflags:  []string{"-Xfdocs.json", "-Df__dummy.html"},
	},
	"profile": {
		options: recipe.NewBuildOptions(recipe.OptionProfile, recipe.OptionOptimize,
			recipe.OptionInline, recipe.OptionDebugInfo),
	},
	"profile-gc": {
		options: recipe.NewBuildOptions(recipe.OptionProfileGC, recipe.OptionDebugInfo),
	},
	"syntax": {
		options: recipe.NewBuildOptions(recipe.OptionSyntaxOnly),
	},
}

// AddBuildTypeSettings applies a named build-type overlay on top of already
// resolved settings. A custom overlay declared in the recipe wins over the
// built-in vocabulary; an unrecognized name is a fatal usage error. Applying
// the same build type twice yields the same result as applying it once.
func (p *Package) AddBuildTypeSettings(bs *recipe.BuildSettings, pl platform.Platform, buildType string) error {
	if tmpl, ok := p.recipe.BuildTypes[buildType]; ok {
		tmpl.ApplyTo(bs, pl)
		p.compiler.ExtractBuildFlags(bs)
		return nil
	}

	if buildType == BuildTypeDFlags {
		// Appended verbatim as raw flags, deliberately without structured
		// promotion.
		if value, ok := p.envLookup("DFLAGS"); ok && value != "" {
			bs.AddDFlags(strings.Fields(value)...)
		}
		return nil
	}

	builtin, ok := builtinBuildTypes[buildType]
	if !ok {
		return errors.Wrapf(errors.ErrUnknownBuildType,
			"package %q, build type %q", p.Name(), buildType)
	}
	bs.Options.Union(builtin.options)
	bs.AddDFlags(builtin.dflags...)
	return nil
}
