package recipe

import (
	"sort"

	"github.com/glorpus-work/mason/pkg/platform"
)

// BuildSettingsTemplate is the platform-conditioned, not-yet-flattened form of
// a build declaration. List-valued fields are keyed by platform suffix; the
// empty key applies to all platforms. Flattening against a concrete platform
// yields a BuildSettings value.
type BuildSettingsTemplate struct {
	TargetType     TargetType `json:"targetType,omitempty"`
	TargetName     string     `json:"targetName,omitempty"`
	TargetPath     string     `json:"targetPath,omitempty"`
	MainSourceFile string     `json:"mainSourceFile,omitempty"`

	Dependencies      map[string]Dependency `json:"dependencies,omitempty"`
	SubConfigurations map[string]string     `json:"subConfigurations,omitempty"`

	SourcePaths         map[string][]string `json:"sourcePaths,omitempty"`
	ImportPaths         map[string][]string `json:"importPaths,omitempty"`
	StringImportPaths   map[string][]string `json:"stringImportPaths,omitempty"`
	SourceFiles         map[string][]string `json:"sourceFiles,omitempty"`
	ExcludedSourceFiles map[string][]string `json:"excludedSourceFiles,omitempty"`

	DFlags        map[string][]string `json:"dflags,omitempty"`
	LFlags        map[string][]string `json:"lflags,omitempty"`
	Libs          map[string][]string `json:"libs,omitempty"`
	Versions      map[string][]string `json:"versions,omitempty"`
	DebugVersions map[string][]string `json:"debugVersions,omitempty"`

	PreGenerateCommands  map[string][]string `json:"preGenerateCommands,omitempty"`
	PostGenerateCommands map[string][]string `json:"postGenerateCommands,omitempty"`
	PreBuildCommands     map[string][]string `json:"preBuildCommands,omitempty"`
	PostBuildCommands    map[string][]string `json:"postBuildCommands,omitempty"`

	BuildRequirements BuildRequirements `json:"buildRequirements,omitzero"`
	BuildOptions      BuildOptions      `json:"buildOptions,omitzero"`
}

// ApplyTo merges the template's platform-filtered entries into the given
// settings value. List-valued fields extend, scalar fields override when the
// template sets them, option and requirement sets union.
func (t *BuildSettingsTemplate) ApplyTo(bs *BuildSettings, p platform.Platform) {
	if t.TargetType != "" {
		bs.TargetType = t.TargetType
	}
	if t.TargetName != "" {
		bs.TargetName = t.TargetName
	}
	if t.TargetPath != "" {
		bs.TargetPath = t.TargetPath
	}
	if t.MainSourceFile != "" {
		bs.MainSourceFile = t.MainSourceFile
	}

	if len(t.Dependencies) > 0 && bs.Dependencies == nil {
		bs.Dependencies = make(map[string]Dependency, len(t.Dependencies))
	}
	for name, dep := range t.Dependencies {
		bs.Dependencies[name] = dep
	}
	if len(t.SubConfigurations) > 0 && bs.SubConfigurations == nil {
		bs.SubConfigurations = make(map[string]string, len(t.SubConfigurations))
	}
	for name, config := range t.SubConfigurations {
		bs.SubConfigurations[name] = config
	}

	bs.SourcePaths = extendFiltered(bs.SourcePaths, t.SourcePaths, p)
	bs.ImportPaths = extendFiltered(bs.ImportPaths, t.ImportPaths, p)
	bs.StringImportPaths = extendFiltered(bs.StringImportPaths, t.StringImportPaths, p)
	bs.SourceFiles = extendFiltered(bs.SourceFiles, t.SourceFiles, p)
	bs.ExcludedSourceFiles = extendFiltered(bs.ExcludedSourceFiles, t.ExcludedSourceFiles, p)

	bs.DFlags = extendFiltered(bs.DFlags, t.DFlags, p)
	bs.LFlags = extendFiltered(bs.LFlags, t.LFlags, p)
	bs.Libs = extendFiltered(bs.Libs, t.Libs, p)
	bs.Versions = extendFiltered(bs.Versions, t.Versions, p)
	bs.DebugVersions = extendFiltered(bs.DebugVersions, t.DebugVersions, p)

	bs.PreGenerateCommands = extendFiltered(bs.PreGenerateCommands, t.PreGenerateCommands, p)
	bs.PostGenerateCommands = extendFiltered(bs.PostGenerateCommands, t.PostGenerateCommands, p)
	bs.PreBuildCommands = extendFiltered(bs.PreBuildCommands, t.PreBuildCommands, p)
	bs.PostBuildCommands = extendFiltered(bs.PostBuildCommands, t.PostBuildCommands, p)

	bs.Requirements.Union(t.BuildRequirements)
	bs.Options.Union(t.BuildOptions)
}

// AddAll adds entries to the all-platforms key of a platform-keyed field.
func AddAll(field map[string][]string, entries ...string) map[string][]string {
	if field == nil {
		field = make(map[string][]string)
	}
	field[""] = appendUnique(field[""], entries...)
	return field
}

// HasAll reports whether the all-platforms key of a field has any entries.
func HasAll(field map[string][]string) bool {
	return len(field[""]) > 0
}

// extendFiltered appends the matching platform-keyed entries of src to dst.
// Keys are visited in sorted order so merges are reproducible.
func extendFiltered(dst []string, src map[string][]string, p platform.Platform) []string {
	if len(src) == 0 {
		return dst
	}
	specs := make([]string, 0, len(src))
	for spec := range src {
		specs = append(specs, spec)
	}
	sort.Strings(specs)
	for _, spec := range specs {
		if p.MatchesSpec(spec) {
			dst = appendUnique(dst, src[spec]...)
		}
	}
	return dst
}

func appendUnique(dst []string, entries ...string) []string {
	for _, entry := range entries {
		found := false
		for _, existing := range dst {
			if existing == entry {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, entry)
		}
	}
	return dst
}

// Clone returns a deep copy of the template.
func (t BuildSettingsTemplate) Clone() BuildSettingsTemplate {
	out := t
	if t.Dependencies != nil {
		out.Dependencies = make(map[string]Dependency, len(t.Dependencies))
		for k, v := range t.Dependencies {
			out.Dependencies[k] = v
		}
	}
	if t.SubConfigurations != nil {
		out.SubConfigurations = make(map[string]string, len(t.SubConfigurations))
		for k, v := range t.SubConfigurations {
			out.SubConfigurations[k] = v
		}
	}
	out.SourcePaths = cloneKeyed(t.SourcePaths)
	out.ImportPaths = cloneKeyed(t.ImportPaths)
	out.StringImportPaths = cloneKeyed(t.StringImportPaths)
	out.SourceFiles = cloneKeyed(t.SourceFiles)
	out.ExcludedSourceFiles = cloneKeyed(t.ExcludedSourceFiles)
	out.DFlags = cloneKeyed(t.DFlags)
	out.LFlags = cloneKeyed(t.LFlags)
	out.Libs = cloneKeyed(t.Libs)
	out.Versions = cloneKeyed(t.Versions)
	out.DebugVersions = cloneKeyed(t.DebugVersions)
	out.PreGenerateCommands = cloneKeyed(t.PreGenerateCommands)
	out.PostGenerateCommands = cloneKeyed(t.PostGenerateCommands)
	out.PreBuildCommands = cloneKeyed(t.PreBuildCommands)
	out.PostBuildCommands = cloneKeyed(t.PostBuildCommands)
	return out
}

func cloneKeyed(field map[string][]string) map[string][]string {
	if field == nil {
		return nil
	}
	out := make(map[string][]string, len(field))
	for k, v := range field {
		out[k] = append([]string(nil), v...)
	}
	return out
}
