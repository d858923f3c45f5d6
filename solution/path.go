package solution

import (
	"path/filepath"
	"strings"
)

// Declared paths stay byte-for-byte as written in the model so writing a
// descriptor back reproduces the original separators. Normalization is
// something a consumer asks for, never applied in place.

// NormalizePath converts Windows-style paths to forward slash format,
// collapsing duplicate slashes while preserving a UNC prefix.
func NormalizePath(path string) string {
	if path == "" {
		return ""
	}

	isUNC := strings.HasPrefix(path, "\\\\") || strings.HasPrefix(path, "//")
	normalized := strings.ReplaceAll(path, "\\", "/")

	if isUNC {
		normalized = "//" + strings.TrimLeft(normalized, "/")
		prefix, remainder := normalized[:2], normalized[2:]
		for strings.Contains(remainder, "//") {
			remainder = strings.ReplaceAll(remainder, "//", "/")
		}
		return prefix + remainder
	}

	for strings.Contains(normalized, "//") {
		normalized = strings.ReplaceAll(normalized, "//", "/")
	}
	return normalized
}

// ConvertToSystemPath converts a declared path to the host's preferred
// separator, for consumers hosted on a non-native-separator platform.
func ConvertToSystemPath(path string) string {
	return filepath.FromSlash(NormalizePath(path))
}

// ResolveProjectPath resolves a declared project path against the
// solution directory, normalized for the host.
func ResolveProjectPath(solutionDir, projectPath string) string {
	if projectPath == "" {
		return ""
	}
	normalized := NormalizePath(projectPath)
	if filepath.IsAbs(normalized) {
		return filepath.Clean(normalized)
	}
	return filepath.Clean(filepath.Join(solutionDir, normalized))
}

// PathResolver resolves declared entry paths against one solution
// directory.
type PathResolver struct {
	// SolutionDir is the directory containing the solution descriptor
	SolutionDir string
}

// NewPathResolver creates a resolver anchored at solutionDir.
func NewPathResolver(solutionDir string) *PathResolver {
	return &PathResolver{SolutionDir: solutionDir}
}

// Resolve resolves a declared path relative to the solution directory.
func (r *PathResolver) Resolve(projectPath string) string {
	return ResolveProjectPath(r.SolutionDir, projectPath)
}
