package recipe

import "sort"

// BuildSettings is the flattened, platform-resolved counterpart of a
// BuildSettingsTemplate: one concrete value per field, ready for consumption
// by a compiler capability.
type BuildSettings struct {
	TargetType     TargetType `json:"targetType"`
	TargetName     string     `json:"targetName,omitempty"`
	TargetPath     string     `json:"targetPath,omitempty"`
	MainSourceFile string     `json:"mainSourceFile,omitempty"`

	Dependencies      map[string]Dependency `json:"dependencies,omitempty"`
	SubConfigurations map[string]string     `json:"subConfigurations,omitempty"`

	SourcePaths         []string `json:"sourcePaths,omitempty"`
	ImportPaths         []string `json:"importPaths,omitempty"`
	StringImportPaths   []string `json:"stringImportPaths,omitempty"`
	SourceFiles         []string `json:"sourceFiles,omitempty"`
	ExcludedSourceFiles []string `json:"excludedSourceFiles,omitempty"`

	DFlags        []string `json:"dflags,omitempty"`
	LFlags        []string `json:"lflags,omitempty"`
	Libs          []string `json:"libs,omitempty"`
	Versions      []string `json:"versions,omitempty"`
	DebugVersions []string `json:"debugVersions,omitempty"`

	PreGenerateCommands  []string `json:"preGenerateCommands,omitempty"`
	PostGenerateCommands []string `json:"postGenerateCommands,omitempty"`
	PreBuildCommands     []string `json:"preBuildCommands,omitempty"`
	PostBuildCommands    []string `json:"postBuildCommands,omitempty"`

	Requirements BuildRequirements `json:"buildRequirements,omitzero"`
	Options      BuildOptions      `json:"buildOptions,omitzero"`
}

// ApplyExclusions removes every excluded source file from the source-file
// list. Called once after all templates have been merged.
func (bs *BuildSettings) ApplyExclusions() {
	if len(bs.ExcludedSourceFiles) == 0 || len(bs.SourceFiles) == 0 {
		return
	}
	kept := bs.SourceFiles[:0]
	for _, file := range bs.SourceFiles {
		if !bs.IsExcluded(file) {
			kept = append(kept, file)
		}
	}
	bs.SourceFiles = kept
}

// IsExcluded reports whether a source file is matched by the exclusion list.
func (bs *BuildSettings) IsExcluded(file string) bool {
	for _, excluded := range bs.ExcludedSourceFiles {
		if excluded == file {
			return true
		}
	}
	return false
}

// AddDFlags appends raw compiler flags, skipping duplicates.
func (bs *BuildSettings) AddDFlags(flags ...string) {
	bs.DFlags = appendUnique(bs.DFlags, flags...)
}

// DependencyNames returns the names of all dependencies in the settings,
// sorted for reproducible output.
func (bs *BuildSettings) DependencyNames() []string {
	return sortedKeys(bs.Dependencies)
}

func sortedKeys(m map[string]Dependency) []string {
	if len(m) == 0 {
		return nil
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
