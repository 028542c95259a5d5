package platform

// Package platform provides constants and utilities for handling platform-specific
// information such as operating systems, architectures and compiler identities.

const (
	// OSWindows represents the Windows operating system.
	OSWindows = "windows"
	// OSLinux represents the Linux operating system.
	OSLinux = "linux"
	// OSDarwin represents the macOS operating system.
	OSDarwin = "darwin"
	// OSFreeBSD represents the FreeBSD operating system.
	OSFreeBSD = "freebsd"
	// OSOpenBSD represents the OpenBSD operating system.
	OSOpenBSD = "openbsd"
	// OSNetBSD represents the NetBSD operating system.
	OSNetBSD = "netbsd"
	// AnyOS represents any possible OS.
	AnyOS = "any"

	// FamilyPosix matches every POSIX-like OS in a platform suffix.
	FamilyPosix = "posix"

	// ArchAMD64 represents the AMD64 (x86_64) architecture.
	ArchAMD64 = "amd64"
	// Arch386 represents the 32-bit x86 architecture.
	Arch386 = "386"
	// ArchARM64 represents the 64-bit ARM architecture.
	ArchARM64 = "arm64"
	// ArchARM represents the 32-bit ARM architecture.
	ArchARM = "arm"
	// AnyArch represents any possible architecture.
	AnyArch = "any"

	// AnyCompiler represents any compiler identity.
	AnyCompiler = "any"
)
