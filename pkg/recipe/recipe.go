// Package recipe provides the in-memory representation of a package recipe:
// identity and metadata, platform-conditioned build-settings templates, named
// configurations, build-type overlays and sub-package declarations. It is
// pure data plus accessors; resolution and synthesis live in the pack package.
package recipe

import (
	goversion "github.com/hashicorp/go-version"
)

// TargetType describes what kind of artifact a build produces.
type TargetType string

const (
	// TargetAutodetect leaves the decision to configuration synthesis.
	TargetAutodetect TargetType = "autodetect"
	// TargetNone produces no artifact at all.
	TargetNone TargetType = "none"
	// TargetExecutable produces an executable binary.
	TargetExecutable TargetType = "executable"
	// TargetLibrary produces a library of the toolchain's default flavor.
	TargetLibrary TargetType = "library"
	// TargetSourceLibrary is compiled into its dependees directly.
	TargetSourceLibrary TargetType = "sourceLibrary"
	// TargetStaticLibrary produces a static library archive.
	TargetStaticLibrary TargetType = "staticLibrary"
	// TargetDynamicLibrary produces a shared library.
	TargetDynamicLibrary TargetType = "dynamicLibrary"
	// TargetObject produces a bare object file.
	TargetObject TargetType = "object"
)

// IsSet reports whether the target type was explicitly chosen.
func (t TargetType) IsSet() bool {
	return t != "" && t != TargetAutodetect
}

// Dependency represents a dependency on another package, with an optional
// version constraint and an optional local path.
type Dependency struct {
	VersionConstraint string `json:"version,omitempty"`
	Path              string `json:"path,omitempty"`
	Optional          bool   `json:"optional,omitempty"`
	Default           bool   `json:"default,omitempty"`
}

// Matches checks whether a concrete version satisfies the dependency's
// constraint. Branch and sentinel versions only match an empty constraint.
func (d Dependency) Matches(v Version) bool {
	if d.VersionConstraint == "" {
		return true
	}
	if !v.IsSemVer() {
		return false
	}
	constraint, err := goversion.NewConstraint(d.VersionConstraint)
	if err != nil {
		return false
	}
	parsed, err := goversion.NewSemver(string(v))
	if err != nil {
		return false
	}
	return constraint.Check(parsed)
}

// Configuration is a named, platform-filterable overlay of build settings
// representing one buildable variant of a package.
type Configuration struct {
	Name     string                `json:"name"`
	Settings BuildSettingsTemplate `json:"settings"`
}

// SubPackage declares a package nested within another package. Exactly one of
// Path and Recipe is set: either the sub-package lives in its own directory,
// or its recipe is declared inline.
type SubPackage struct {
	Path   string  `json:"path,omitempty"`
	Recipe *Recipe `json:"recipe,omitempty"`
}

// Recipe is the declarative description of a package: metadata, the root
// build-settings template, named configurations, build-type overlays and
// sub-package declarations.
type Recipe struct {
	Name        string   `json:"name"`
	Version     Version  `json:"version,omitempty"`
	Description string   `json:"description,omitempty"`
	Homepage    string   `json:"homepage,omitempty"`
	Authors     []string `json:"authors,omitempty"`
	Copyright   string   `json:"copyright,omitempty"`
	License     string   `json:"license,omitempty"`

	BuildSettings  BuildSettingsTemplate            `json:"buildSettings"`
	Configurations []Configuration                  `json:"configurations,omitempty"`
	BuildTypes     map[string]BuildSettingsTemplate `json:"buildTypes,omitempty"`
	SubPackages    []SubPackage                     `json:"subPackages,omitempty"`
}

// Configuration returns the first declared configuration with the given name.
// Duplicate names are legal at the type level; later duplicates are
// unreachable through this accessor and surfaced as a lint warning instead.
func (r *Recipe) Configuration(name string) (*Configuration, bool) {
	for i := range r.Configurations {
		if r.Configurations[i].Name == name {
			return &r.Configurations[i], true
		}
	}
	return nil, false
}

// ConfigurationNames returns the declared configuration names in order.
func (r *Recipe) ConfigurationNames() []string {
	names := make([]string, len(r.Configurations))
	for i, c := range r.Configurations {
		names[i] = c.Name
	}
	return names
}

// Clone returns a deep copy of the recipe.
func (r Recipe) Clone() Recipe {
	out := r
	out.Authors = append([]string(nil), r.Authors...)
	out.BuildSettings = r.BuildSettings.Clone()

	if r.Configurations != nil {
		out.Configurations = make([]Configuration, len(r.Configurations))
		for i, c := range r.Configurations {
			out.Configurations[i] = Configuration{Name: c.Name, Settings: c.Settings.Clone()}
		}
	}
	if r.BuildTypes != nil {
		out.BuildTypes = make(map[string]BuildSettingsTemplate, len(r.BuildTypes))
		for name, t := range r.BuildTypes {
			out.BuildTypes[name] = t.Clone()
		}
	}
	if r.SubPackages != nil {
		out.SubPackages = make([]SubPackage, len(r.SubPackages))
		for i, sp := range r.SubPackages {
			out.SubPackages[i] = SubPackage{Path: sp.Path}
			if sp.Recipe != nil {
				cloned := sp.Recipe.Clone()
				out.SubPackages[i].Recipe = &cloned
			}
		}
	}
	return out
}
