// Package vcs derives package version strings from source-control state. A
// package without an explicit version in its recipe gets its version from the
// nearest release tag, falling back to the checked-out branch. All process
// and filesystem failures degrade to "no data"; they are never hard errors.
package vcs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/glorpus-work/mason/pkg/logger"
	goversion "github.com/hashicorp/go-version"
	"github.com/sirupsen/logrus"
)

// cacheRecord maps the head commit a version was computed for to the
// resulting version string.
type cacheRecord struct {
	Commit  string `json:"commit"`
	Version string `json:"version"`
}

// Resolver computes a version string from the source-control state of a
// package directory.
type Resolver struct {
	Client Client

	// CacheFile optionally persists the last computed version keyed by head
	// commit, avoiding a describe process on every invocation. Absent,
	// malformed or stale cache files are tolerated.
	CacheFile string
}

// NewResolver creates a resolver backed by the git binary, without caching.
func NewResolver() *Resolver {
	return &Resolver{Client: NewGitClient()}
}

// Resolve produces a version string for the package at dir, or the empty
// string when no version can be determined. The cascade is: release tag
// (exact or with commit suffix), then current branch, then nothing.
func (r *Resolver) Resolve(ctx context.Context, dir string) string {
	if r.Client == nil || !r.Client.IsRepository(dir) {
		return ""
	}

	head, headErr := r.Client.Head(ctx, dir)
	if headErr == nil {
		if cached, ok := r.cachedVersion(head); ok {
			return cached
		}
	}

	version := r.compute(ctx, dir)
	if version != "" && headErr == nil {
		r.storeCache(head, version)
	}
	return version
}

func (r *Resolver) compute(ctx context.Context, dir string) string {
	if version := r.versionFromTag(ctx, dir); version != "" {
		return version
	}
	return r.versionFromBranch(ctx, dir)
}

// versionFromTag derives a version from the nearest release tag. Tags must
// look like v<semver>; anything else falls through to the branch check.
func (r *Resolver) versionFromTag(ctx context.Context, dir string) string {
	desc, err := r.Client.Describe(ctx, dir)
	if err != nil {
		logger.Debug("source-control describe failed", logrus.Fields{"dir": dir, "error": err.Error()})
		return ""
	}

	if !strings.HasPrefix(desc.Tag, "v") {
		return ""
	}
	base := desc.Tag[1:]
	if _, err := goversion.NewSemver(base); err != nil {
		logger.Debug("nearest tag is not a release tag", logrus.Fields{"tag": desc.Tag})
		return ""
	}

	if desc.Distance == 0 {
		return base
	}
	if strings.Contains(base, "+") {
		return fmt.Sprintf("%s.commit.%d.%s", base, desc.Distance, desc.CommitHash)
	}
	return fmt.Sprintf("%s+commit.%d.%s", base, desc.Distance, desc.CommitHash)
}

func (r *Resolver) versionFromBranch(ctx context.Context, dir string) string {
	branch, err := r.Client.CurrentBranch(ctx, dir)
	if err != nil {
		logger.Debug("source-control branch query failed", logrus.Fields{"dir": dir, "error": err.Error()})
		return ""
	}
	if branch == "" || branch == "HEAD" {
		// Detached head; no usable branch name.
		return ""
	}
	return "~" + branch
}

// cachedVersion returns the cached version if the cache exists and was
// computed for the given head commit.
func (r *Resolver) cachedVersion(head string) (string, bool) {
	if r.CacheFile == "" {
		return "", false
	}
	data, err := os.ReadFile(r.CacheFile)
	if err != nil {
		return "", false
	}
	var record cacheRecord
	if err := json.Unmarshal(data, &record); err != nil {
		logger.Debug("ignoring malformed version cache", logrus.Fields{"file": r.CacheFile})
		return "", false
	}
	if record.Commit != head || record.Version == "" {
		return "", false
	}
	return record.Version, true
}

func (r *Resolver) storeCache(head, version string) {
	if r.CacheFile == "" {
		return
	}
	data, err := json.Marshal(cacheRecord{Commit: head, Version: version})
	if err != nil {
		return
	}
	if err := os.WriteFile(r.CacheFile, data, 0o644); err != nil {
		logger.Debug("failed to write version cache", logrus.Fields{"file": r.CacheFile, "error": err.Error()})
	}
}
