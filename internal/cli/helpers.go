package cli

import (
	"context"
	"path/filepath"

	"github.com/glorpus-work/mason/pkg/compiler"
	"github.com/glorpus-work/mason/pkg/config"
	"github.com/glorpus-work/mason/pkg/errors"
	"github.com/glorpus-work/mason/pkg/logger"
	"github.com/glorpus-work/mason/pkg/pack"
	"github.com/glorpus-work/mason/pkg/platform"
	"github.com/glorpus-work/mason/pkg/vcs"
)

// These variables will be set by the main package
var (
	ConfigPath *string
	Verbose    *bool
	NoColor    *bool
)

// loadConfig loads the tool configuration, applies the global CLI flags on
// top and initializes the logger accordingly.
func loadConfig() (*config.Config, error) {
	configPath := ""
	if ConfigPath != nil {
		configPath = *ConfigPath
	}
	if configPath == "" {
		defaultPath, err := config.DefaultConfigPath()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get default config path")
		}
		configPath = defaultPath
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}

	if NoColor != nil && *NoColor {
		cfg.Settings.NoColor = true
	}
	if Verbose != nil && *Verbose {
		cfg.Settings.LogLevel = "debug"
	}

	logger.InitLogger(cfg.Settings.LogLevel, cfg.Settings.NoColor)
	return cfg, nil
}

// loadPackage loads the package rooted at path with a version resolver and
// the compiler selected by flag or configuration.
func loadPackage(ctx context.Context, path string, cfg *config.Config, compilerName string) (*pack.Package, compiler.Compiler, error) {
	if compilerName == "" {
		compilerName = cfg.Settings.DefaultCompiler
	}
	comp, ok := compiler.Get(compilerName)
	if !ok {
		return nil, nil, errors.Wrapf(errors.ErrConfigValidation, "unknown compiler %q", compilerName)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to resolve package path %q", path)
	}

	resolver := vcs.NewResolver()
	resolver.CacheFile = cfg.VersionCacheFile(filepath.Base(absPath))

	pkg, err := pack.LoadFromDirectory(ctx, absPath, pack.Options{
		VersionResolver: resolver,
		Compiler:        comp,
	})
	if err != nil {
		return nil, nil, err
	}
	return pkg, comp, nil
}

// targetPlatform builds the platform selector from the os/arch flags,
// defaulting unset fields to the running host.
func targetPlatform(osFlag, archFlag, compilerName string) platform.Platform {
	pl := platform.Current(compilerName)
	if osFlag != "" {
		pl.OS = platform.NormalizeOS(osFlag)
	}
	if archFlag != "" {
		pl.Arch = platform.NormalizeArch(archFlag)
	}
	return pl
}
