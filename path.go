package bundle

import (
	"io/fs"
	"strings"
)

// Path is a normalized, slash-separated path relative to the module root
// (e.g., "res/raw/data.bin"). Paths compare and order as strings.
type Path string

// NormalizePath converts a user-provided path to fs.ValidPath format.
//
// It performs the following transformations:
//   - Strips leading slashes: "/res/raw" → "res/raw"
//   - Strips trailing slashes: "res/raw/" → "res/raw"
//   - Collapses consecutive slashes: "res//raw" → "res/raw"
//   - Converts empty string to root: "" → "."
//
// Paths containing "." or ".." elements are preserved; NewPath rejects them.
func NormalizePath(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return "."
	}

	parts := strings.Split(p, "/")
	result := parts[:0] // reuse backing array
	for _, part := range parts {
		if part != "" {
			result = append(result, part)
		}
	}
	if len(result) == 0 {
		return "."
	}
	return strings.Join(result, "/")
}

// NewPath normalizes p and validates that it names a file inside the module.
// The module root itself and paths with "." or ".." elements are rejected.
func NewPath(p string) (Path, error) {
	n := NormalizePath(p)
	if n == "." {
		return "", &PathError{Path: p, Reason: "empty path"}
	}
	if !fs.ValidPath(n) {
		return "", &PathError{Path: p, Reason: "contains . or .. elements"}
	}
	return Path(n), nil
}

// MustPath is like NewPath but panics on invalid input.
// It is intended for literals.
func MustPath(p string) Path {
	path, err := NewPath(p)
	if err != nil {
		panic(err)
	}
	return path
}

func (p Path) String() string {
	return string(p)
}

// Compare returns -1, 0, or +1 depending on whether p sorts before, equal
// to, or after other.
func (p Path) Compare(other Path) int {
	return strings.Compare(string(p), string(other))
}

// Base returns the last element of the path.
func (p Path) Base() string {
	if i := strings.LastIndexByte(string(p), '/'); i >= 0 {
		return string(p[i+1:])
	}
	return string(p)
}

// Dir returns all but the last element of the path, or "." for top-level
// entries.
func (p Path) Dir() string {
	if i := strings.LastIndexByte(string(p), '/'); i >= 0 {
		return string(p[:i])
	}
	return "."
}

// HasPrefix reports whether p lies under the directory dir.
// A dir of "." matches every path.
func (p Path) HasPrefix(dir string) bool {
	dir = NormalizePath(dir)
	if dir == "." {
		return true
	}
	return strings.HasPrefix(string(p), dir+"/")
}
