package parser

import (
	"path"
	"strings"
)

// poolEntry is one candidate image collected from a LaTeX archive, in
// archive listing order.
type poolEntry struct {
	path string // full archive path, e.g. "figs/diagram.png"
	data []byte
}

// poolImageExts are the archive member extensions collected into the image
// pool, and the retry order for extensionless references.
var poolImageExts = []string{".png", ".jpg", ".jpeg", ".gif"}

func isPoolImage(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range poolImageExts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// resolveImageRef maps a raw include-graphics reference to a pool entry.
//
// Resolution is by base filename, case-insensitive, so directory structure
// on either side is collapsed: first an exact match of the pool member's
// base name against the reference's base name, then a retry appending each
// known image extension in fixed order. LaTeX references typically omit the
// extension, which is what the retry covers. Returns the pool index of the
// first match.
func resolveImageRef(ref string, pool []poolEntry) (int, bool) {
	refBase := strings.ToLower(path.Base(strings.TrimSpace(ref)))
	if refBase == "" || refBase == "." {
		return 0, false
	}

	for i, e := range pool {
		if strings.ToLower(path.Base(e.path)) == refBase {
			return i, true
		}
	}
	for _, ext := range poolImageExts {
		want := refBase + ext
		for i, e := range pool {
			if strings.ToLower(path.Base(e.path)) == want {
				return i, true
			}
		}
	}
	return 0, false
}
