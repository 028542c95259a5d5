package pack

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/glorpus-work/mason/pkg/errors"
	"github.com/glorpus-work/mason/pkg/logger"
	"github.com/glorpus-work/mason/pkg/recipe"
	"github.com/glorpus-work/mason/pkg/vcs"
	"github.com/glorpus-work/mason/pkg/vcs/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNew_VersionOverrideWins(t *testing.T) {
	p := New(context.Background(), recipe.Recipe{Name: "mypkg", Version: "1.0.0"}, Options{
		Dir:             t.TempDir(),
		VersionOverride: "2.0.0",
	})
	assert.Equal(t, recipe.Version("2.0.0"), p.Version())
}

func TestNew_RecipeVersionIsKept(t *testing.T) {
	p := newTestPackage(t, recipe.Recipe{Name: "mypkg", Version: "1.2.3"}, t.TempDir())
	assert.Equal(t, recipe.Version("1.2.3"), p.Version())
}

func TestNew_NoVersionOutsideRepositoryAssumesMasterBranch(t *testing.T) {
	// The temp dir carries no source-control metadata, so resolution yields
	// nothing and the master-branch sentinel applies.
	p := newTestPackage(t, recipe.Recipe{Name: "mypkg"}, t.TempDir())
	assert.Equal(t, recipe.VersionMasterBranch, p.Version())
	assert.False(t, p.Version().IsEmpty())
}

func TestNew_VersionFromSourceControl(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	client.EXPECT().IsRepository(gomock.Any()).Return(true)
	client.EXPECT().Head(gomock.Any(), gomock.Any()).Return("abc123", nil)
	client.EXPECT().Describe(gomock.Any(), gomock.Any()).
		Return(vcs.Description{Tag: "v1.4.0", Distance: 0, CommitHash: "abcdef1"}, nil)

	p := New(context.Background(), recipe.Recipe{Name: "mypkg"}, Options{
		Dir:             t.TempDir(),
		VersionResolver: &vcs.Resolver{Client: client},
	})
	assert.Equal(t, recipe.Version("1.4.0"), p.Version())
}

func TestSubPackage_SharesBaseVersion(t *testing.T) {
	parent := newTestPackage(t, recipe.Recipe{Name: "mypkg", Version: "1.0.0"}, t.TempDir())
	sub := New(context.Background(), recipe.Recipe{Name: "runner", Version: "9.9.9"}, Options{Parent: parent})

	// Sub-packages never carry a version of their own.
	assert.Equal(t, recipe.Version("1.0.0"), sub.Version())
	assert.True(t, sub.IsSubPackage())

	require.NoError(t, parent.SetVersion("1.1.0"))
	assert.Equal(t, recipe.Version("1.1.0"), sub.Version())
}

func TestSubPackage_VersionOverrideIgnored(t *testing.T) {
	var buf bytes.Buffer
	logger.SetTestOutput(&buf)
	defer logger.UnsetTestOutput()
	logger.InitLogger("info", true)

	parent := newTestPackage(t, recipe.Recipe{Name: "mypkg", Version: "1.0.0"}, t.TempDir())
	sub := New(context.Background(), recipe.Recipe{Name: "runner"}, Options{
		Parent:          parent,
		VersionOverride: "9.9.9",
	})

	assert.Equal(t, recipe.Version("1.0.0"), sub.Version())
	assert.Contains(t, buf.String(), "version override ignored")
}

func TestSetVersion_RejectedOnSubPackage(t *testing.T) {
	parent := newTestPackage(t, recipe.Recipe{Name: "mypkg", Version: "1.0.0"}, t.TempDir())
	sub := New(context.Background(), recipe.Recipe{Name: "runner"}, Options{Parent: parent})

	err := sub.SetVersion("2.0.0")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNotRootPackage)
}

func TestQualifiedName(t *testing.T) {
	root := newTestPackage(t, recipe.Recipe{Name: "mypkg", Version: "1.0.0"}, t.TempDir())
	mid := New(context.Background(), recipe.Recipe{Name: "tools"}, Options{Parent: root})
	leaf := New(context.Background(), recipe.Recipe{Name: "gen"}, Options{Parent: mid})

	assert.Equal(t, "mypkg", root.QualifiedName())
	assert.Equal(t, "mypkg:tools", mid.QualifiedName())
	assert.Equal(t, "mypkg:tools:gen", leaf.QualifiedName())
	assert.Same(t, root, leaf.Basepackage())
}

func TestGetInternalSubPackage(t *testing.T) {
	inline := recipe.Recipe{Name: "runner"}
	rcp := recipe.Recipe{
		Name:    "mypkg",
		Version: "1.0.0",
		SubPackages: []recipe.SubPackage{
			{Recipe: &inline},
			{Path: "./tools/gen"},
		},
	}
	p := newTestPackage(t, rcp, t.TempDir())

	got, ok := p.GetInternalSubPackage("runner")
	require.True(t, ok)
	assert.Equal(t, "runner", got.Name)

	// Path-based sub-packages are the caller's responsibility to load.
	_, ok = p.GetInternalSubPackage("gen")
	assert.False(t, ok)

	_, ok = p.GetInternalSubPackage("missing")
	assert.False(t, ok)
}

func TestStoreInfo_RefusesUnknownVersion(t *testing.T) {
	dir := t.TempDir()
	p := New(context.Background(), recipe.Recipe{Name: "mypkg"}, Options{
		Dir:             dir,
		VersionOverride: recipe.VersionUnknown,
	})

	err := p.StoreInfo()
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnresolvedVersion)
	assert.NoFileExists(t, filepath.Join(dir, RecipeFileName))
}

func TestStoreInfo_RefusesNonLocalPackage(t *testing.T) {
	p := New(context.Background(), recipe.Recipe{Name: "mypkg", Version: "1.0.0"}, Options{})

	err := p.StoreInfo()
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrEmptyPackagePath)
	assert.NoFileExists(t, RecipeFileName)
}

func TestStoreInfo_WritesPrettyJSON(t *testing.T) {
	dir := t.TempDir()
	p := newTestPackage(t, recipe.Recipe{Name: "mypkg", Version: "1.0.0"}, dir)

	require.NoError(t, p.StoreInfo())

	data, err := os.ReadFile(filepath.Join(dir, RecipeFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\t") // pretty-printed

	var stored recipe.Recipe
	require.NoError(t, json.Unmarshal(data, &stored))
	assert.Equal(t, "mypkg", stored.Name)
	assert.Equal(t, recipe.Version("1.0.0"), stored.Version)
}

func TestLoadFromDirectory(t *testing.T) {
	dir := t.TempDir()
	rcp := recipe.Recipe{Name: "mypkg", Version: "1.0.0"}
	data, err := json.Marshal(rcp)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, RecipeFileName), data, 0o644))

	p, err := LoadFromDirectory(context.Background(), dir, Options{})
	require.NoError(t, err)
	assert.Equal(t, "mypkg", p.Name())
	assert.Equal(t, filepath.Join(dir, RecipeFileName), p.RecipeFile())
	assert.Equal(t, filepath.Clean(dir), p.Dir())
}

func TestLoadFromDirectory_NoRecipeFile(t *testing.T) {
	_, err := LoadFromDirectory(context.Background(), t.TempDir(), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNoRecipeFound)
}

func TestLoadFromDirectory_MalformedRecipe(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, RecipeFileName), []byte("not json"), 0o644))

	_, err := LoadFromDirectory(context.Background(), dir, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrRecipeParse)
}

func TestStoreInfo_RoundTripsThroughLoad(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "source/app.d")

	original := New(context.Background(), recipe.Recipe{
		Name:          "mypkg",
		Version:       "1.0.0",
		License:       "MIT",
		BuildSettings: recipe.BuildSettingsTemplate{TargetType: recipe.TargetExecutable},
	}, Options{Dir: dir})
	require.NoError(t, original.StoreInfo())

	loaded, err := LoadFromDirectory(context.Background(), dir, Options{})
	require.NoError(t, err)
	assert.Equal(t, original.Name(), loaded.Name())
	assert.Equal(t, original.Version(), loaded.Version())
	assert.Equal(t, "MIT", loaded.Recipe().License)
	require.Len(t, loaded.Recipe().Configurations, 1)
	assert.Equal(t, "application", loaded.Recipe().Configurations[0].Name)
}
