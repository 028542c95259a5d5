package pack

import (
	"path/filepath"
	"sort"

	"github.com/glorpus-work/mason/pkg/fsutil"
	"github.com/glorpus-work/mason/pkg/recipe"
)

// synthesizeDefaults is a pure function from (raw recipe, filesystem
// snapshot) to the effective recipe: it injects conventional default paths
// and, for recipes without any declared configuration, synthesizes the
// "application"/"library" defaults. The input recipe is not mutated.
func synthesizeDefaults(rcp recipe.Recipe, dir string) recipe.Recipe {
	rcp = rcp.Clone()
	bs := &rcp.BuildSettings

	// Conventional string-import path.
	if !recipe.HasAll(bs.StringImportPaths) && fsutil.DirExists(filepath.Join(dir, "views")) {
		bs.StringImportPaths = recipe.AddAll(bs.StringImportPaths, "views")
	}

	// Conventional source/import path; "source" is preferred over "src" and
	// only the first existing one is taken.
	if !recipe.HasAll(bs.SourcePaths) && !recipe.HasAll(bs.ImportPaths) {
		for _, candidate := range []string{"source", "src"} {
			if fsutil.DirExists(filepath.Join(dir, candidate)) {
				bs.SourcePaths = recipe.AddAll(bs.SourcePaths, candidate)
				bs.ImportPaths = recipe.AddAll(bs.ImportPaths, candidate)
				break
			}
		}
	}

	mainFile := bs.MainSourceFile
	if mainFile == "" {
		mainFile = detectMainFile(rcp.Name, bs, dir)
	}

	if len(rcp.Configurations) == 0 {
		rcp.Configurations = defaultConfigurations(bs, mainFile)
	}
	return rcp
}

// detectMainFile probes every declared source path for a canonical
// entry-point file name. The first match wins; traversal order across paths
// is not part of the contract.
func detectMainFile(pkgName string, bs *recipe.BuildSettingsTemplate, dir string) string {
	candidates := []string{"app.d", "main.d"}
	if pkgName != "" {
		candidates = append(candidates, filepath.Join(pkgName, "main.d"), filepath.Join(pkgName, "app.d"))
	}

	specs := make([]string, 0, len(bs.SourcePaths))
	for spec := range bs.SourcePaths {
		specs = append(specs, spec)
	}
	sort.Strings(specs)

	for _, spec := range specs {
		for _, sourcePath := range bs.SourcePaths[spec] {
			for _, candidate := range candidates {
				rel := filepath.Join(sourcePath, candidate)
				if fsutil.FileExists(filepath.Join(dir, rel)) {
					return filepath.ToSlash(rel)
				}
			}
		}
	}
	return ""
}

// defaultConfigurations synthesizes configurations for a recipe that declares
// none. Executables get a single "application" configuration; everything else
// except "none" gets a "library" configuration, and an unresolved target type
// with a detected entry point additionally gets an "application" sibling with
// the entry point excluded from the library's sources.
func defaultConfigurations(bs *recipe.BuildSettingsTemplate, mainFile string) []recipe.Configuration {
	switch {
	case bs.TargetType == recipe.TargetExecutable:
		app := recipe.Configuration{
			Name:     "application",
			Settings: recipe.BuildSettingsTemplate{TargetType: recipe.TargetExecutable},
		}
		if bs.MainSourceFile == "" && mainFile != "" {
			app.Settings.MainSourceFile = mainFile
		}
		return []recipe.Configuration{app}

	case bs.TargetType == recipe.TargetNone:
		return nil

	case bs.TargetType.IsSet():
		return []recipe.Configuration{{
			Name:     "library",
			Settings: recipe.BuildSettingsTemplate{TargetType: bs.TargetType},
		}}

	default:
		// Autodetect: a concrete library configuration, plus an application
		// configuration when an entry point was found.
		lib := recipe.Configuration{
			Name:     "library",
			Settings: recipe.BuildSettingsTemplate{TargetType: recipe.TargetLibrary},
		}
		if mainFile == "" {
			return []recipe.Configuration{lib}
		}
		lib.Settings.ExcludedSourceFiles = recipe.AddAll(lib.Settings.ExcludedSourceFiles, mainFile)
		app := recipe.Configuration{
			Name: "application",
			Settings: recipe.BuildSettingsTemplate{
				TargetType:     recipe.TargetExecutable,
				MainSourceFile: mainFile,
			},
		}
		return []recipe.Configuration{lib, app}
	}
}
