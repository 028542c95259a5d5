// Package pack implements the package entity of the build tool: it wraps a
// recipe with a filesystem location and an optional parent link, resolves the
// package version from source control when the recipe omits one, synthesizes
// default configurations from filesystem conventions and produces effective
// build settings and package descriptions on demand.
package pack

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/mason/pkg/compiler"
	"github.com/glorpus-work/mason/pkg/errors"
	"github.com/glorpus-work/mason/pkg/logger"
	"github.com/glorpus-work/mason/pkg/recipe"
	"github.com/glorpus-work/mason/pkg/vcs"
	"github.com/sirupsen/logrus"
)

// RecipeFileName is the canonical recipe file written by StoreInfo.
const RecipeFileName = "mason.json"

// recipeFileNames are the file names probed when loading from a directory.
var recipeFileNames = []string{RecipeFileName, "dub.json"}

// Options configures package construction. The zero value is valid for an
// in-memory root package.
type Options struct {
	// Dir is the package's filesystem location; empty for non-local packages.
	Dir string

	// RecipeFile is the path of the recipe file the recipe was read from.
	RecipeFile string

	// Parent links a sub-package entity to its surrounding package.
	Parent *Package

	// VersionOverride wins unconditionally over the recipe version when
	// non-empty. Sub-packages always track their base package's version, so
	// an override passed together with Parent is discarded with a warning.
	VersionOverride recipe.Version

	// VersionResolver derives a version from source-control state for root
	// packages without a declared version. Defaults to a git-backed resolver.
	VersionResolver *vcs.Resolver

	// Compiler is the capability used for flag extraction during settings
	// resolution. Defaults to the registry default.
	Compiler compiler.Compiler

	// EnvLookup supplies environment values to the build-type resolver (the
	// $DFLAGS pseudo build type). Defaults to os.LookupEnv.
	EnvLookup func(string) (string, bool)
}

// Package is the addressable unit of the build tool. It owns the effective
// recipe (post default synthesis) plus an untouched clone of the original,
// and is immutable in structure after construction.
type Package struct {
	recipe     recipe.Recipe
	rawRecipe  recipe.Recipe
	dir        string
	recipeFile string
	parent     *Package
	compiler   compiler.Compiler
	envLookup  func(string) (string, bool)
}

// New constructs a package entity from an in-memory recipe value.
func New(ctx context.Context, rcp recipe.Recipe, opts Options) *Package {
	p := &Package{
		rawRecipe:  rcp.Clone(),
		dir:        normalizeDir(opts.Dir, opts.RecipeFile),
		recipeFile: opts.RecipeFile,
		parent:     opts.Parent,
		compiler:   opts.Compiler,
		envLookup:  opts.EnvLookup,
	}
	if p.compiler == nil {
		p.compiler = compiler.Default()
	}
	if p.envLookup == nil {
		p.envLookup = os.LookupEnv
	}

	rcp = rcp.Clone()
	rcp.Version = p.resolveVersion(ctx, rcp.Version, opts)
	p.recipe = synthesizeDefaults(rcp, p.dir)

	p.lint()
	return p
}

// LoadFromDirectory reads the recipe file in dir and constructs the package.
// A directory without a recognizable recipe file is a fatal usage error.
func LoadFromDirectory(ctx context.Context, dir string, opts Options) (*Package, error) {
	if dir == "" {
		return nil, errors.ErrEmptyPackagePath
	}
	for _, name := range recipeFileNames {
		file := filepath.Join(dir, name)
		data, err := os.ReadFile(file)
		if err != nil {
			continue
		}
		var rcp recipe.Recipe
		if err := json.Unmarshal(data, &rcp); err != nil {
			return nil, errors.Wrapf(errors.ErrRecipeParse, "recipe file %q", file)
		}
		opts.Dir = dir
		opts.RecipeFile = file
		return New(ctx, rcp, opts), nil
	}
	return nil, errors.Wrapf(errors.ErrNoRecipeFound, "directory %q", dir)
}

// resolveVersion implements the construction-time version cascade: explicit
// override, recipe version, source-control state (root packages only),
// master-branch sentinel. Sub-packages never store a version of their own.
func (p *Package) resolveVersion(ctx context.Context, declared recipe.Version, opts Options) recipe.Version {
	if p.parent != nil {
		if !opts.VersionOverride.IsEmpty() {
			logger.Warn("version override ignored, sub-packages track their base package",
				logrus.Fields{"package": p.rawRecipe.Name, "override": opts.VersionOverride})
		}
		return ""
	}
	if !opts.VersionOverride.IsEmpty() {
		return opts.VersionOverride
	}
	if !declared.IsEmpty() {
		return declared
	}

	resolver := opts.VersionResolver
	if resolver == nil {
		resolver = vcs.NewResolver()
	}
	if resolved := resolver.Resolve(ctx, p.dir); resolved != "" {
		logger.Debug("version determined via source control",
			logrus.Fields{"package": p.rawRecipe.Name, "version": resolved})
		return recipe.Version(resolved)
	}
	logger.Debug("no version found, assuming default branch",
		logrus.Fields{"package": p.rawRecipe.Name})
	return recipe.VersionMasterBranch
}

// normalizeDir makes the stored location directory-shaped: a recipe file path
// is reduced to its directory and the result is cleaned.
func normalizeDir(dir, recipeFile string) string {
	if dir == "" && recipeFile != "" {
		dir = filepath.Dir(recipeFile)
	}
	if dir == "" {
		return ""
	}
	return filepath.Clean(dir)
}

// Name returns the package's own (unqualified) name.
func (p *Package) Name() string {
	return p.recipe.Name
}

// QualifiedName returns the name prefixed by all parent names, separated by
// colons. The walk is iterative so nesting depth is not a recursion risk.
func (p *Package) QualifiedName() string {
	var names []string
	for q := p; q != nil; q = q.parent {
		names = append([]string{q.recipe.Name}, names...)
	}
	return strings.Join(names, ":")
}

// Basepackage returns the root of the parent chain.
func (p *Package) Basepackage() *Package {
	q := p
	for q.parent != nil {
		q = q.parent
	}
	return q
}

// IsSubPackage reports whether this entity represents a sub-package.
func (p *Package) IsSubPackage() bool {
	return p.parent != nil
}

// Version returns the package version. Sub-packages share the version of
// their base package.
func (p *Package) Version() recipe.Version {
	return p.Basepackage().recipe.Version
}

// SetVersion overrides the version of a root package. Calling it on a
// sub-package is an error; sub-packages always track their base package.
func (p *Package) SetVersion(v recipe.Version) error {
	if p.parent != nil {
		return errors.Wrapf(errors.ErrNotRootPackage, "set version on %q", p.QualifiedName())
	}
	p.recipe.Version = v
	return nil
}

// Dir returns the package's filesystem location, empty for non-local packages.
func (p *Package) Dir() string {
	return p.dir
}

// RecipeFile returns the path of the recipe file actually read, if any.
func (p *Package) RecipeFile() string {
	return p.recipeFile
}

// Recipe returns the effective recipe, including synthesized defaults.
func (p *Package) Recipe() *recipe.Recipe {
	return &p.recipe
}

// RawRecipe returns the untouched recipe as originally supplied; used for
// round-trip serialization and diffing against the effective recipe.
func (p *Package) RawRecipe() *recipe.Recipe {
	return &p.rawRecipe
}

// GetInternalSubPackage returns the inline recipe of a path-less sub-package
// declaration with the given name. Path-based sub-packages are loaded by the
// surrounding package manager, not by this accessor.
func (p *Package) GetInternalSubPackage(name string) (*recipe.Recipe, bool) {
	for i := range p.recipe.SubPackages {
		sp := &p.recipe.SubPackages[i]
		if sp.Path == "" && sp.Recipe != nil && sp.Recipe.Name == name {
			return sp.Recipe, true
		}
	}
	return nil, false
}

// StoreInfo persists the effective recipe as pretty-printed JSON under the
// package location. Packages with an unresolved version or without a
// filesystem location are refused.
func (p *Package) StoreInfo() (err error) {
	if p.dir == "" {
		return errors.Wrapf(errors.ErrEmptyPackagePath, "cannot store package %q", p.Name())
	}
	version := p.Version()
	if version.IsEmpty() || version.IsUnknown() {
		return errors.Wrapf(errors.ErrUnresolvedVersion, "cannot store package %q", p.Name())
	}

	out := p.recipe.Clone()
	out.Version = version

	file := filepath.Join(p.dir, RecipeFileName)
	f, err := os.Create(file)
	if err != nil {
		return errors.Wrapf(err, "failed to create recipe file %q", file)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "\t")
	if err = enc.Encode(out); err != nil {
		return errors.Wrapf(err, "failed to encode recipe file %q", file)
	}
	return err
}
