package recipe

import (
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// Version is a semantic-version-like string with two special markers: the
// unknown sentinel (no version determinable) and the master-branch sentinel
// ("track the default development line"). Branch versions are prefixed with
// a tilde.
type Version string

const (
	// VersionUnknown marks a package whose version could not be determined.
	VersionUnknown Version = "unknown"
	// VersionMasterBranch tracks the default branch of the package.
	VersionMasterBranch Version = "~master"
)

// IsEmpty reports whether no version is set at all.
func (v Version) IsEmpty() bool {
	return v == ""
}

// IsUnknown reports whether the version is the unknown sentinel.
func (v Version) IsUnknown() bool {
	return v == VersionUnknown
}

// IsBranch reports whether the version tracks a branch rather than a release.
func (v Version) IsBranch() bool {
	return strings.HasPrefix(string(v), "~")
}

// IsMaster reports whether the version is the master-branch sentinel.
func (v Version) IsMaster() bool {
	return v == VersionMasterBranch
}

// IsSemVer reports whether the version parses as a semantic version.
func (v Version) IsSemVer() bool {
	if v.IsEmpty() || v.IsUnknown() || v.IsBranch() {
		return false
	}
	_, err := goversion.NewSemver(string(v))
	return err == nil
}

// Compare orders two versions. Branch versions sort below release versions,
// the unknown sentinel below everything. Returns -1, 0 or 1.
func (v Version) Compare(other Version) int {
	switch {
	case v == other:
		return 0
	case v.IsUnknown():
		return -1
	case other.IsUnknown():
		return 1
	case v.IsBranch() && other.IsBranch():
		return strings.Compare(string(v), string(other))
	case v.IsBranch():
		return -1
	case other.IsBranch():
		return 1
	}

	a, errA := goversion.NewSemver(string(v))
	b, errB := goversion.NewSemver(string(other))
	if errA != nil || errB != nil {
		return strings.Compare(string(v), string(other))
	}
	return a.Compare(b)
}

func (v Version) String() string {
	return string(v)
}
