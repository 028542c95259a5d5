package recipe

import (
	"testing"

	"github.com/glorpus-work/mason/pkg/platform"
	"github.com/stretchr/testify/assert"
)

func linuxAMD64() platform.Platform {
	return platform.Platform{OS: platform.OSLinux, Arch: platform.ArchAMD64, Compiler: "dmd"}
}

func TestApplyTo_ScalarOverrideAndListExtend(t *testing.T) {
	bs := BuildSettings{TargetName: "original"}

	tmpl := BuildSettingsTemplate{
		TargetName:  "overridden",
		SourcePaths: map[string][]string{"": {"source"}},
		DFlags:      map[string][]string{"": {"-g"}},
	}
	tmpl.ApplyTo(&bs, linuxAMD64())

	assert.Equal(t, "overridden", bs.TargetName)
	assert.Equal(t, []string{"source"}, bs.SourcePaths)
	assert.Equal(t, []string{"-g"}, bs.DFlags)

	// A second template extends lists and keeps scalars it does not set.
	more := BuildSettingsTemplate{
		SourcePaths: map[string][]string{"": {"extra"}},
	}
	more.ApplyTo(&bs, linuxAMD64())
	assert.Equal(t, "overridden", bs.TargetName)
	assert.Equal(t, []string{"source", "extra"}, bs.SourcePaths)
}

func TestApplyTo_PlatformFiltering(t *testing.T) {
	tmpl := BuildSettingsTemplate{
		Libs: map[string][]string{
			"":        {"z"},
			"windows": {"ws2_32"},
			"posix":   {"pthread"},
		},
	}

	var onLinux BuildSettings
	tmpl.ApplyTo(&onLinux, linuxAMD64())
	assert.ElementsMatch(t, []string{"z", "pthread"}, onLinux.Libs)

	var onWindows BuildSettings
	tmpl.ApplyTo(&onWindows, platform.Platform{OS: platform.OSWindows, Arch: platform.ArchAMD64, Compiler: "dmd"})
	assert.ElementsMatch(t, []string{"z", "ws2_32"}, onWindows.Libs)

	// The wildcard platform selects the union of all entries.
	var combined BuildSettings
	tmpl.ApplyTo(&combined, platform.Any)
	assert.ElementsMatch(t, []string{"z", "ws2_32", "pthread"}, combined.Libs)
}

func TestApplyTo_DependencyOverride(t *testing.T) {
	bs := BuildSettings{}

	root := BuildSettingsTemplate{
		Dependencies: map[string]Dependency{"vibe-d": {VersionConstraint: ">= 0.9.0"}},
	}
	root.ApplyTo(&bs, linuxAMD64())

	config := BuildSettingsTemplate{
		Dependencies: map[string]Dependency{"vibe-d": {VersionConstraint: ">= 0.10.0"}},
	}
	config.ApplyTo(&bs, linuxAMD64())

	assert.Equal(t, ">= 0.10.0", bs.Dependencies["vibe-d"].VersionConstraint)
}

func TestApplyTo_OptionsUnion(t *testing.T) {
	bs := BuildSettings{}

	first := BuildSettingsTemplate{BuildOptions: NewBuildOptions(OptionDebugMode)}
	second := BuildSettingsTemplate{BuildOptions: NewBuildOptions(OptionDebugInfo)}
	first.ApplyTo(&bs, linuxAMD64())
	second.ApplyTo(&bs, linuxAMD64())

	assert.Equal(t, []string{"debugMode", "debugInfo"}, bs.Options.Names())
}

func TestApplyExclusions(t *testing.T) {
	bs := BuildSettings{
		SourceFiles:         []string{"source/lib.d", "source/app.d"},
		ExcludedSourceFiles: []string{"source/app.d"},
	}
	bs.ApplyExclusions()
	assert.Equal(t, []string{"source/lib.d"}, bs.SourceFiles)
}

func TestRecipeConfigurationFirstMatch(t *testing.T) {
	r := Recipe{
		Configurations: []Configuration{
			{Name: "default", Settings: BuildSettingsTemplate{TargetName: "first"}},
			{Name: "default", Settings: BuildSettingsTemplate{TargetName: "second"}},
		},
	}

	config, ok := r.Configuration("default")
	assert.True(t, ok)
	assert.Equal(t, "first", config.Settings.TargetName)

	_, ok = r.Configuration("missing")
	assert.False(t, ok)
}

func TestRecipeCloneIsDeep(t *testing.T) {
	original := Recipe{
		Name: "mypkg",
		BuildSettings: BuildSettingsTemplate{
			SourcePaths: map[string][]string{"": {"source"}},
		},
		Configurations: []Configuration{{Name: "library"}},
	}

	clone := original.Clone()
	clone.BuildSettings.SourcePaths[""][0] = "mutated"
	clone.Configurations[0].Name = "mutated"

	assert.Equal(t, "source", original.BuildSettings.SourcePaths[""][0])
	assert.Equal(t, "library", original.Configurations[0].Name)
}

func TestDependencyMatches(t *testing.T) {
	dep := Dependency{VersionConstraint: ">= 1.0.0, < 2.0.0"}
	assert.True(t, dep.Matches(Version("1.5.0")))
	assert.False(t, dep.Matches(Version("2.1.0")))
	assert.False(t, dep.Matches(VersionMasterBranch))

	unconstrained := Dependency{}
	assert.True(t, unconstrained.Matches(VersionMasterBranch))
}
