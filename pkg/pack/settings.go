package pack

import (
	"strings"

	"github.com/glorpus-work/mason/pkg/errors"
	"github.com/glorpus-work/mason/pkg/platform"
	"github.com/glorpus-work/mason/pkg/recipe"
)

// GetBuildSettings merges the root template and, when configName is
// non-empty, the named configuration's template into one effective settings
// value for the given platform. List-valued fields extend, scalar fields
// override. A non-empty configName that matches no declared configuration is
// a fatal usage error; the empty name resolves root-only settings.
func (p *Package) GetBuildSettings(pl platform.Platform, configName string) (recipe.BuildSettings, error) {
	var bs recipe.BuildSettings
	p.recipe.BuildSettings.ApplyTo(&bs, pl)

	if configName != "" {
		config, ok := p.recipe.Configuration(configName)
		if !ok {
			return recipe.BuildSettings{}, errors.Wrapf(errors.ErrUnknownConfiguration,
				"package %q, configuration %q", p.Name(), configName)
		}
		config.Settings.ApplyTo(&bs, pl)
	}

	p.finalizeSettings(&bs)
	return bs, nil
}

// GetCombinedBuildSettings merges the root template and every declared
// configuration against the wildcard platform. The result unions all
// platform-conditioned entries and is meant for exhaustive file-listing
// views, never for actual builds.
func (p *Package) GetCombinedBuildSettings() recipe.BuildSettings {
	var bs recipe.BuildSettings
	p.recipe.BuildSettings.ApplyTo(&bs, platform.Any)
	for i := range p.recipe.Configurations {
		p.recipe.Configurations[i].Settings.ApplyTo(&bs, platform.Any)
	}

	// No exclusion filtering here: the combined view must stay a superset of
	// every per-configuration resolution.
	p.deriveTargetName(&bs)
	p.compiler.ExtractBuildFlags(&bs)
	return bs
}

func (p *Package) finalizeSettings(bs *recipe.BuildSettings) {
	bs.ApplyExclusions()
	p.deriveTargetName(bs)
	p.compiler.ExtractBuildFlags(bs)
}

// deriveTargetName fills in a default target name from the qualified package
// name when the recipe did not set one.
func (p *Package) deriveTargetName(bs *recipe.BuildSettings) {
	if bs.TargetName == "" {
		bs.TargetName = strings.ReplaceAll(p.QualifiedName(), ":", "_")
	}
}

// GetSubConfiguration returns the configuration a named dependency should be
// built in when this package is built in configName. The configuration-level
// selection wins over the root-level one. The platform argument is accepted
// for interface stability but has no effect on the result.
func (p *Package) GetSubConfiguration(configName, dependency string, _ platform.Platform) string {
	if config, ok := p.recipe.Configuration(configName); ok {
		if sub, ok := config.Settings.SubConfigurations[dependency]; ok {
			return sub
		}
	}
	return p.recipe.BuildSettings.SubConfigurations[dependency]
}

// GetDependencies returns the dependencies visible in the given
// configuration. A per-configuration entry for a package overrides the
// root-level entry of the same name.
func (p *Package) GetDependencies(configName string) map[string]recipe.Dependency {
	deps := make(map[string]recipe.Dependency)
	for name, dep := range p.recipe.BuildSettings.Dependencies {
		deps[name] = dep
	}
	if config, ok := p.recipe.Configuration(configName); ok {
		for name, dep := range config.Settings.Dependencies {
			deps[name] = dep
		}
	}
	return deps
}

// GetAllDependencies returns the union of root-level and all
// per-configuration dependencies, used by exhaustive dependency-graph views.
func (p *Package) GetAllDependencies() map[string]recipe.Dependency {
	deps := make(map[string]recipe.Dependency)
	for name, dep := range p.recipe.BuildSettings.Dependencies {
		deps[name] = dep
	}
	for i := range p.recipe.Configurations {
		for name, dep := range p.recipe.Configurations[i].Settings.Dependencies {
			if _, exists := deps[name]; !exists {
				deps[name] = dep
			}
		}
	}
	return deps
}
