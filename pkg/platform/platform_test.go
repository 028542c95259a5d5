package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesSpec_EmptyMatchesEverything(t *testing.T) {
	p := Platform{OS: OSLinux, Arch: ArchAMD64, Compiler: "dmd"}
	assert.True(t, p.MatchesSpec(""))
}

func TestMatchesSpec_SingleTokens(t *testing.T) {
	p := Platform{OS: OSLinux, Arch: ArchAMD64, Compiler: "dmd"}

	assert.True(t, p.MatchesSpec("linux"))
	assert.True(t, p.MatchesSpec("posix"))
	assert.True(t, p.MatchesSpec("amd64"))
	assert.True(t, p.MatchesSpec("x86_64"))
	assert.True(t, p.MatchesSpec("dmd"))

	assert.False(t, p.MatchesSpec("windows"))
	assert.False(t, p.MatchesSpec("arm64"))
	assert.False(t, p.MatchesSpec("ldc"))
}

func TestMatchesSpec_CombinedTokens(t *testing.T) {
	p := Platform{OS: OSWindows, Arch: Arch386, Compiler: "ldc"}

	assert.True(t, p.MatchesSpec("windows-386"))
	assert.True(t, p.MatchesSpec("windows-386-ldc"))
	assert.False(t, p.MatchesSpec("windows-amd64"))
	assert.False(t, p.MatchesSpec("posix-386"))
}

func TestMatchesSpec_AnyPlatformSelectsUnion(t *testing.T) {
	assert.True(t, Any.MatchesSpec("windows"))
	assert.True(t, Any.MatchesSpec("linux-arm64-gdc"))
	assert.True(t, Any.MatchesSpec("posix"))
}

func TestMatchesSpec_OSXAliases(t *testing.T) {
	p := Platform{OS: OSDarwin, Arch: ArchARM64, Compiler: "ldc"}
	assert.True(t, p.MatchesSpec("osx"))
	assert.True(t, p.MatchesSpec("darwin"))
	assert.True(t, p.MatchesSpec("posix"))
}

func TestNormalizeArch(t *testing.T) {
	assert.Equal(t, ArchAMD64, NormalizeArch("x86_64"))
	assert.Equal(t, Arch386, NormalizeArch("i686"))
	assert.Equal(t, ArchARM64, NormalizeArch("aarch64"))
	assert.Equal(t, "riscv64", NormalizeArch("riscv64"))
}

func TestCurrent(t *testing.T) {
	p := Current("dmd")
	assert.NotEmpty(t, p.OS)
	assert.NotEmpty(t, p.Arch)
	assert.Equal(t, "dmd", p.Compiler)
	assert.False(t, p.IsAny())
}
