package compiler

import (
	"testing"

	"github.com/glorpus-work/mason/pkg/platform"
	"github.com/glorpus-work/mason/pkg/recipe"
	"github.com/stretchr/testify/assert"
)

func TestExtractBuildFlags(t *testing.T) {
	bs := recipe.BuildSettings{
		DFlags: []string{"-g", "-release", "-I/opt/include", "-O"},
	}

	NewDMD().ExtractBuildFlags(&bs)

	assert.Equal(t, []string{"-I/opt/include"}, bs.DFlags)
	assert.True(t, bs.Options.Has(recipe.OptionDebugInfo))
	assert.True(t, bs.Options.Has(recipe.OptionReleaseMode))
	assert.True(t, bs.Options.Has(recipe.OptionOptimize))
}

func TestExtractBuildFlagsIsIdempotent(t *testing.T) {
	bs := recipe.BuildSettings{DFlags: []string{"-g", "-unittest", "-version=Custom"}}

	c := NewDMD()
	c.ExtractBuildFlags(&bs)
	once := bs
	onceOptions := bs.Options.Names()

	c.ExtractBuildFlags(&bs)
	assert.Equal(t, once.DFlags, bs.DFlags)
	assert.Equal(t, onceOptions, bs.Options.Names())
}

func TestTargetFileName(t *testing.T) {
	linux := platform.Platform{OS: platform.OSLinux, Arch: platform.ArchAMD64, Compiler: "dmd"}
	windows := platform.Platform{OS: platform.OSWindows, Arch: platform.ArchAMD64, Compiler: "dmd"}
	darwin := platform.Platform{OS: platform.OSDarwin, Arch: platform.ArchARM64, Compiler: "ldc"}

	c := NewDMD()

	exe := recipe.BuildSettings{TargetType: recipe.TargetExecutable, TargetName: "myapp"}
	assert.Equal(t, "myapp", c.TargetFileName(exe, linux))
	assert.Equal(t, "myapp.exe", c.TargetFileName(exe, windows))

	lib := recipe.BuildSettings{TargetType: recipe.TargetStaticLibrary, TargetName: "mylib"}
	assert.Equal(t, "libmylib.a", c.TargetFileName(lib, linux))
	assert.Equal(t, "mylib.lib", c.TargetFileName(lib, windows))

	dyn := recipe.BuildSettings{TargetType: recipe.TargetDynamicLibrary, TargetName: "mylib"}
	assert.Equal(t, "libmylib.so", c.TargetFileName(dyn, linux))
	assert.Equal(t, "libmylib.dylib", c.TargetFileName(dyn, darwin))
	assert.Equal(t, "mylib.dll", c.TargetFileName(dyn, windows))

	none := recipe.BuildSettings{TargetType: recipe.TargetNone, TargetName: "x"}
	assert.Equal(t, "", c.TargetFileName(none, linux))
}

func TestRegistry(t *testing.T) {
	c, ok := Get("dmd")
	assert.True(t, ok)
	assert.Equal(t, "dmd", c.Name())

	ldc, ok := Get("ldc")
	assert.True(t, ok)
	assert.Equal(t, "ldc", ldc.Name())

	_, ok = Get("tcc")
	assert.False(t, ok)

	assert.Equal(t, DefaultName, Default().Name())
}
