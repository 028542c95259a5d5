package platform

import (
	"fmt"
	"runtime"
	"strings"
)

// Platform identifies a build target: operating system, architecture and the
// compiler that will be used. Any field may be "any" to act as a wildcard;
// the fully wildcarded platform selects the union of all platform-conditioned
// settings (used for combined/IDE views, never for actual builds).
type Platform struct {
	OS       string `yaml:"os" json:"os"`
	Arch     string `yaml:"arch" json:"arch"`
	Compiler string `yaml:"compiler" json:"compiler"`
}

// Any matches every platform-conditioned entry.
var Any = Platform{OS: AnyOS, Arch: AnyArch, Compiler: AnyCompiler}

// Current returns the platform of the running host, with the given compiler
// identity filled in.
func Current(compiler string) Platform {
	goos := runtime.GOOS
	if goos == "" {
		goos = "unknown"
	}

	goarch := runtime.GOARCH
	if goarch == "" {
		goarch = "unknown"
	}

	return Platform{
		OS:       NormalizeOS(goos),
		Arch:     NormalizeArch(goarch),
		Compiler: compiler,
	}
}

// IsAny reports whether the platform is the full wildcard.
func (p Platform) IsAny() bool {
	return p.OS == AnyOS && p.Arch == AnyArch && p.Compiler == AnyCompiler
}

// String returns a string representation of the platform.
func (p Platform) String() string {
	return fmt.Sprintf("%s/%s/%s", p.OS, p.Arch, p.Compiler)
}

// MatchesSpec checks the platform against a platform-suffix specification as
// used in build-settings templates. The empty spec matches everything. A
// non-empty spec is a dash-joined list of tokens ("windows", "linux-amd64",
// "posix-ldc"); each token must match the OS, an OS family, the architecture
// or the compiler. A wildcard field matches any token of its kind, so the Any
// platform selects every entry.
func (p Platform) MatchesSpec(spec string) bool {
	if spec == "" {
		return true
	}
	for _, token := range strings.Split(spec, "-") {
		if token == "" {
			continue
		}
		if !p.matchesToken(strings.ToLower(token)) {
			return false
		}
	}
	return true
}

func (p Platform) matchesToken(token string) bool {
	if p.IsAny() {
		return true
	}
	switch {
	case isOSToken(token):
		return p.OS == AnyOS || NormalizeOS(token) == p.OS || osFamilyMatches(token, p.OS)
	case isArchToken(token):
		return p.Arch == AnyArch || NormalizeArch(token) == p.Arch
	default:
		// Anything else is treated as a compiler identity.
		return p.Compiler == AnyCompiler || token == p.Compiler
	}
}

func isOSToken(token string) bool {
	switch token {
	case OSWindows, OSLinux, OSDarwin, "macos", "osx", OSFreeBSD, OSOpenBSD, OSNetBSD, FamilyPosix:
		return true
	}
	return false
}

func isArchToken(token string) bool {
	switch NormalizeArch(token) {
	case ArchAMD64, Arch386, ArchARM64, ArchARM:
		return true
	}
	return false
}

// osFamilyMatches resolves family tokens such as "posix" against a concrete OS.
func osFamilyMatches(token, os string) bool {
	switch token {
	case FamilyPosix:
		switch os {
		case OSLinux, OSDarwin, OSFreeBSD, OSOpenBSD, OSNetBSD:
			return true
		}
	case "osx", "macos":
		return os == OSDarwin
	}
	return false
}

// NormalizeOS normalizes OS names to a common format.
func NormalizeOS(os string) string {
	os = strings.ToLower(os)
	switch os {
	case "macos", "osx", "darwin":
		return OSDarwin
	case "win", "windows":
		return OSWindows
	default:
		return os
	}
}

// NormalizeArch normalizes architecture names to a common format.
func NormalizeArch(arch string) string {
	arch = strings.ToLower(arch)
	switch arch {
	case "x86_64", "x64", "amd64":
		return ArchAMD64
	case "x86", "i386", "i686", "386":
		return Arch386
	case "aarch64", "arm64":
		return ArchARM64
	case "arm":
		return ArchARM
	default:
		return arch
	}
}
