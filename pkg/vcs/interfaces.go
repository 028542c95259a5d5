//go:generate mockgen -destination=./mocks/client.go -package=mocks . Client
package vcs

import "context"

// Description is the result of a source-control "describe" query: the nearest
// tag, the number of commits since that tag and the current commit hash.
type Description struct {
	Tag        string
	Distance   int
	CommitHash string
}

// Client abstracts the source-control tool so that version resolution can be
// tested with deterministic fakes instead of spawning real processes.
type Client interface {
	// IsRepository reports whether dir carries recognizable source-control
	// metadata.
	IsRepository(dir string) bool

	// Describe returns the nearest tag, the commit distance to it and the
	// current commit hash.
	Describe(ctx context.Context, dir string) (Description, error)

	// CurrentBranch returns the name of the checked-out branch, or the
	// detached-head marker "HEAD" when no branch is checked out.
	CurrentBranch(ctx context.Context, dir string) (string, error)

	// Head returns the identifier of the current head commit.
	Head(ctx context.Context, dir string) (string, error)
}
