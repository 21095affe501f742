package mounter

import (
	"path"
	"strings"
)

// NormalizeExportPath reduces a server-side path to the form used for
// export matching: absolute, with redundant separators, dot segments and
// trailing separators removed.
//
// Export lists in the wild are inconsistent about trailing slashes, so
// every path is normalized before any comparison and matching is plain
// string equality afterwards. Remote NFS paths always use forward
// slashes regardless of the local platform.
func NormalizeExportPath(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// MatchExport finds the longest export that covers dir on a path
// component boundary and returns it together with the remainder of dir
// below it. The remainder is empty when dir is exported exactly.
//
// Covering is boundary-aligned: "/export" covers "/export" itself and
// "/export/data/sub", but never "/exportxyz". An exact match always wins
// because it is the longest possible candidate.
func MatchExport(exports []string, dir string) (export string, remainder string, found bool) {
	target := NormalizeExportPath(dir)

	best := ""
	for _, candidate := range exports {
		normalized := NormalizeExportPath(candidate)
		if !coversPath(normalized, target) {
			continue
		}
		if !found || len(normalized) > len(best) {
			best = normalized
			found = true
		}
	}

	if !found {
		return "", "", false
	}

	remainder = strings.TrimPrefix(target, best)
	remainder = strings.TrimPrefix(remainder, "/")

	return best, remainder, true
}

// coversPath reports whether prefix covers target on a path component
// boundary. Both arguments must already be normalized.
func coversPath(prefix, target string) bool {
	if prefix == target {
		return true
	}
	if prefix == "/" {
		return true
	}
	return strings.HasPrefix(target, prefix+"/")
}
