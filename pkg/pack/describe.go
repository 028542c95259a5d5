package pack

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/glorpus-work/mason/pkg/compiler"
	"github.com/glorpus-work/mason/pkg/platform"
	"github.com/glorpus-work/mason/pkg/recipe"
)

// FileRole classifies a file within a package description. Files that appear
// only in the combined view but not in the specifically resolved settings
// carry the unused variant of their role.
type FileRole string

const (
	RoleSource             FileRole = "source"
	RoleImport             FileRole = "import"
	RoleStringImport       FileRole = "stringImport"
	RoleUnusedSource       FileRole = "unusedSource"
	RoleUnusedImport       FileRole = "unusedImport"
	RoleUnusedStringImport FileRole = "unusedStringImport"
)

func (r FileRole) unused() FileRole {
	switch r {
	case RoleSource:
		return RoleUnusedSource
	case RoleImport:
		return RoleUnusedImport
	case RoleStringImport:
		return RoleUnusedStringImport
	default:
		return r
	}
}

// DescribedFile is one classified file of a package description.
type DescribedFile struct {
	Path string   `json:"path"`
	Role FileRole `json:"role"`
}

// Description is the flat, serializable projection of a package and its
// resolved build settings, consumed by IDEs and dependency tooling.
type Description struct {
	Path          string   `json:"path,omitempty"`
	Name          string   `json:"name"`
	Version       string   `json:"version"`
	Description   string   `json:"description,omitempty"`
	Homepage      string   `json:"homepage,omitempty"`
	Authors       []string `json:"authors,omitempty"`
	Copyright     string   `json:"copyright,omitempty"`
	License       string   `json:"license,omitempty"`
	Configuration string   `json:"configuration,omitempty"`

	Dependencies []string `json:"dependencies,omitempty"`

	TargetType     recipe.TargetType `json:"targetType"`
	TargetName     string            `json:"targetName,omitempty"`
	TargetPath     string            `json:"targetPath,omitempty"`
	TargetFileName string            `json:"targetFileName,omitempty"`
	MainSourceFile string            `json:"mainSourceFile,omitempty"`

	SourcePaths       []string `json:"sourcePaths,omitempty"`
	ImportPaths       []string `json:"importPaths,omitempty"`
	StringImportPaths []string `json:"stringImportPaths,omitempty"`

	DFlags        []string `json:"dflags,omitempty"`
	LFlags        []string `json:"lflags,omitempty"`
	Libs          []string `json:"libs,omitempty"`
	Versions      []string `json:"versions,omitempty"`
	DebugVersions []string `json:"debugVersions,omitempty"`

	PreGenerateCommands  []string `json:"preGenerateCommands,omitempty"`
	PostGenerateCommands []string `json:"postGenerateCommands,omitempty"`
	PreBuildCommands     []string `json:"preBuildCommands,omitempty"`
	PostBuildCommands    []string `json:"postBuildCommands,omitempty"`

	BuildRequirements []string `json:"buildRequirements"`
	Options           []string `json:"options"`

	Files []DescribedFile `json:"files"`
}

// Describe projects the package into a flat description for the given
// platform, compiler capability and configuration. Every file reachable
// through any configuration is classified by role; files outside the
// specifically resolved settings get an unused role. The file list is sorted
// by path so output is reproducible.
func (p *Package) Describe(pl platform.Platform, comp compiler.Compiler, configName string) (Description, error) {
	bs, err := p.GetBuildSettings(pl, configName)
	if err != nil {
		return Description{}, err
	}
	allbs := p.GetCombinedBuildSettings()

	roles := make(map[string]FileRole)
	for path, role := range p.collectFiles(&allbs, false) {
		roles[path] = role.unused()
	}
	// Concrete roles always win over an unused classification.
	for path, role := range p.collectFiles(&bs, true) {
		roles[path] = role
	}

	files := make([]DescribedFile, 0, len(roles))
	for path, role := range roles {
		files = append(files, DescribedFile{Path: path, Role: role})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	desc := Description{
		Path:          p.dir,
		Name:          p.QualifiedName(),
		Version:       p.Version().String(),
		Description:   p.recipe.Description,
		Homepage:      p.recipe.Homepage,
		Authors:       append([]string(nil), p.recipe.Authors...),
		Copyright:     p.recipe.Copyright,
		License:       p.recipe.License,
		Configuration: configName,

		Dependencies: bs.DependencyNames(),

		TargetType:     bs.TargetType,
		TargetName:     bs.TargetName,
		TargetPath:     bs.TargetPath,
		MainSourceFile: bs.MainSourceFile,

		SourcePaths:       bs.SourcePaths,
		ImportPaths:       bs.ImportPaths,
		StringImportPaths: bs.StringImportPaths,

		DFlags:        bs.DFlags,
		LFlags:        bs.LFlags,
		Libs:          bs.Libs,
		Versions:      bs.Versions,
		DebugVersions: bs.DebugVersions,

		PreGenerateCommands:  bs.PreGenerateCommands,
		PostGenerateCommands: bs.PostGenerateCommands,
		PreBuildCommands:     bs.PreBuildCommands,
		PostBuildCommands:    bs.PostBuildCommands,

		BuildRequirements: bs.Requirements.Names(),
		Options:           bs.Options.Names(),

		Files: files,
	}

	if bs.TargetType.IsSet() && bs.TargetType != recipe.TargetNone && comp != nil {
		desc.TargetFileName = comp.TargetFileName(bs, pl)
	}
	return desc, nil
}

// collectFiles gathers every file reachable through the settings, keyed by
// slash-separated path relative to the package directory. String imports are
// assigned first, then imports, then sources, so a file reachable several
// ways ends up with its strongest role. Exclusions are honored only when
// applyExclusions is set; the combined view must keep excluded files so they
// can surface with an unused role.
func (p *Package) collectFiles(bs *recipe.BuildSettings, applyExclusions bool) map[string]FileRole {
	files := make(map[string]FileRole)

	for _, dir := range bs.StringImportPaths {
		p.walkFiles(dir, nil, func(path string) {
			files[path] = RoleStringImport
		})
	}
	// Only interface files count as imports; regular modules under an import
	// path are either sources or unused sources.
	for _, dir := range bs.ImportPaths {
		p.walkFiles(dir, []string{".di"}, func(path string) {
			files[path] = RoleImport
		})
	}
	for _, dir := range bs.SourcePaths {
		p.walkFiles(dir, []string{".d"}, func(path string) {
			if applyExclusions && bs.IsExcluded(path) {
				return
			}
			files[path] = RoleSource
		})
	}
	for _, file := range bs.SourceFiles {
		files[filepath.ToSlash(file)] = RoleSource
	}
	if bs.MainSourceFile != "" {
		files[filepath.ToSlash(bs.MainSourceFile)] = RoleSource
	}
	return files
}

// walkFiles visits every regular file under the package-relative directory,
// optionally filtered by extension. Traversal failures degrade to "no files".
func (p *Package) walkFiles(rel string, exts []string, visit func(relPath string)) {
	if p.dir == "" {
		return
	}
	root := filepath.Join(p.dir, rel)
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			// Missing or unreadable directories simply yield no files.
			return nil
		}
		if len(exts) > 0 {
			ext := strings.ToLower(filepath.Ext(path))
			ok := false
			for _, e := range exts {
				if ext == e {
					ok = true
					break
				}
			}
			if !ok {
				return nil
			}
		}
		if relPath, relErr := filepath.Rel(p.dir, path); relErr == nil {
			visit(filepath.ToSlash(relPath))
		}
		return nil
	})
}
