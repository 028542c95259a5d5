package pack

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/glorpus-work/mason/pkg/recipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates the given relative files (with dummy content) under dir.
func writeTree(t *testing.T, dir string, files ...string) {
	t.Helper()
	for _, file := range files {
		path := filepath.Join(dir, filepath.FromSlash(file))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("// test\n"), 0o644))
	}
}

func newTestPackage(t *testing.T, rcp recipe.Recipe, dir string) *Package {
	t.Helper()
	return New(context.Background(), rcp, Options{Dir: dir})
}

func TestSynthesize_ExecutableWithAppFile(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "source/app.d")

	rcp := recipe.Recipe{
		Name:          "mypkg",
		Version:       "1.0.0",
		BuildSettings: recipe.BuildSettingsTemplate{TargetType: recipe.TargetExecutable},
	}
	p := newTestPackage(t, rcp, dir)

	configs := p.Recipe().Configurations
	require.Len(t, configs, 1)
	assert.Equal(t, "application", configs[0].Name)
	assert.Equal(t, recipe.TargetExecutable, configs[0].Settings.TargetType)
	assert.Equal(t, "source/app.d", configs[0].Settings.MainSourceFile)

	// The source directory convention fills source and import paths.
	assert.Equal(t, []string{"source"}, p.Recipe().BuildSettings.SourcePaths[""])
	assert.Equal(t, []string{"source"}, p.Recipe().BuildSettings.ImportPaths[""])
}

func TestSynthesize_AutodetectWithLibraryAndApp(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "source/lib.d", "source/app.d")

	rcp := recipe.Recipe{Name: "mypkg", Version: "1.0.0"}
	p := newTestPackage(t, rcp, dir)

	configs := p.Recipe().Configurations
	require.Len(t, configs, 2)

	lib := configs[0]
	assert.Equal(t, "library", lib.Name)
	assert.Equal(t, recipe.TargetLibrary, lib.Settings.TargetType)
	assert.Equal(t, []string{"source/app.d"}, lib.Settings.ExcludedSourceFiles[""])

	app := configs[1]
	assert.Equal(t, "application", app.Name)
	assert.Equal(t, recipe.TargetExecutable, app.Settings.TargetType)
	assert.Equal(t, "source/app.d", app.Settings.MainSourceFile)
}

func TestSynthesize_AutodetectWithoutMainFile(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "source/lib.d")

	p := newTestPackage(t, recipe.Recipe{Name: "mypkg", Version: "1.0.0"}, dir)

	configs := p.Recipe().Configurations
	require.Len(t, configs, 1)
	assert.Equal(t, "library", configs[0].Name)
	assert.Equal(t, recipe.TargetLibrary, configs[0].Settings.TargetType)
}

func TestSynthesize_TargetNoneGetsNoConfigurations(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "source/lib.d")

	rcp := recipe.Recipe{
		Name:          "mypkg",
		Version:       "1.0.0",
		BuildSettings: recipe.BuildSettingsTemplate{TargetType: recipe.TargetNone},
	}
	p := newTestPackage(t, rcp, dir)
	assert.Empty(t, p.Recipe().Configurations)
}

func TestSynthesize_DeclaredConfigurationsSuppressDefaults(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "source/app.d")

	rcp := recipe.Recipe{
		Name:           "mypkg",
		Version:        "1.0.0",
		Configurations: []recipe.Configuration{{Name: "custom"}},
	}
	p := newTestPackage(t, rcp, dir)

	require.Len(t, p.Recipe().Configurations, 1)
	assert.Equal(t, "custom", p.Recipe().Configurations[0].Name)
}

func TestSynthesize_SourceDirPreferredOverSrc(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "source/lib.d", "src/other.d")

	p := newTestPackage(t, recipe.Recipe{Name: "mypkg", Version: "1.0.0"}, dir)
	assert.Equal(t, []string{"source"}, p.Recipe().BuildSettings.SourcePaths[""])
}

func TestSynthesize_SrcFallback(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "src/lib.d")

	p := newTestPackage(t, recipe.Recipe{Name: "mypkg", Version: "1.0.0"}, dir)
	assert.Equal(t, []string{"src"}, p.Recipe().BuildSettings.SourcePaths[""])
}

func TestSynthesize_ViewsDirAddsStringImportPath(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "source/lib.d", "views/template.html")

	p := newTestPackage(t, recipe.Recipe{Name: "mypkg", Version: "1.0.0"}, dir)
	assert.Equal(t, []string{"views"}, p.Recipe().BuildSettings.StringImportPaths[""])
}

func TestSynthesize_DeclaredPathsAreKept(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "source/lib.d", "custom/lib.d")

	rcp := recipe.Recipe{
		Name:    "mypkg",
		Version: "1.0.0",
		BuildSettings: recipe.BuildSettingsTemplate{
			SourcePaths: map[string][]string{"": {"custom"}},
		},
	}
	p := newTestPackage(t, rcp, dir)
	assert.Equal(t, []string{"custom"}, p.Recipe().BuildSettings.SourcePaths[""])
}

func TestSynthesize_RawRecipeStaysUntouched(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "source/app.d")

	p := newTestPackage(t, recipe.Recipe{Name: "mypkg", Version: "1.0.0"}, dir)

	assert.NotEmpty(t, p.Recipe().Configurations)
	assert.Empty(t, p.RawRecipe().Configurations)
	assert.Empty(t, p.RawRecipe().BuildSettings.SourcePaths)
}

func TestSynthesize_MainFileCandidateOrder(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "source/app.d", "source/main.d")

	rcp := recipe.Recipe{
		Name:          "mypkg",
		Version:       "1.0.0",
		BuildSettings: recipe.BuildSettingsTemplate{TargetType: recipe.TargetExecutable},
	}
	p := newTestPackage(t, rcp, dir)

	// app.d is probed before main.d.
	assert.Equal(t, "source/app.d", p.Recipe().Configurations[0].Settings.MainSourceFile)
}

func TestSynthesize_PackageNamedMainFile(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "source/mypkg/main.d")

	rcp := recipe.Recipe{
		Name:          "mypkg",
		Version:       "1.0.0",
		BuildSettings: recipe.BuildSettingsTemplate{TargetType: recipe.TargetExecutable},
	}
	p := newTestPackage(t, rcp, dir)
	assert.Equal(t, "source/mypkg/main.d", p.Recipe().Configurations[0].Settings.MainSourceFile)
}
