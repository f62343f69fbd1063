// Package sampler bounds the set of snapshot files the engine examines.
package sampler

import (
	"path"
	"strings"

	"github.com/repotriage/repotriage/internal/domain"
)

// sourceExtensions is the set of file types worth scanning.
var sourceExtensions = map[string]bool{
	".py":    true,
	".pyx":   true,
	".js":    true,
	".jsx":   true,
	".ts":    true,
	".tsx":   true,
	".java":  true,
	".cpp":   true,
	".cc":    true,
	".c":     true,
	".h":     true,
	".hpp":   true,
	".cs":    true,
	".go":    true,
	".rs":    true,
	".php":   true,
	".rb":    true,
	".kt":    true,
	".swift": true,
	".sh":    true,
}

// skipDirs are path segments that never contain first-party source.
var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"bin":          true,
	"build":        true,
}

// Sample selects the subset of snapshot files to analyze: recognized source
// extensions only, no oversized files, capped at maxFiles. The snapshot's
// original ordering is preserved, so repeated runs over an unchanged
// snapshot yield identical samples.
func Sample(snap *domain.Snapshot, maxFiles int, maxFileBytes int64) []domain.FileEntry {
	if snap == nil {
		return nil
	}
	if maxFiles <= 0 {
		maxFiles = domain.DefaultMaxFiles
	}
	if maxFileBytes <= 0 {
		maxFileBytes = domain.DefaultMaxFileBytes
	}

	out := make([]domain.FileEntry, 0, maxFiles)
	for _, f := range snap.Files {
		if len(out) == maxFiles {
			break
		}
		if !Eligible(f.Path) {
			continue
		}
		if f.Size > maxFileBytes || int64(len(f.Content)) > maxFileBytes {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Eligible reports whether a path points at scannable source text.
func Eligible(p string) bool {
	for _, seg := range strings.Split(path.Dir(p), "/") {
		if skipDirs[seg] {
			return false
		}
	}
	return sourceExtensions[strings.ToLower(path.Ext(p))]
}
