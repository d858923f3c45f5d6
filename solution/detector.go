package solution

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Detector finds solution descriptors under a directory.
type Detector struct {
	// SearchDir is the directory to search
	SearchDir string
}

// NewDetector creates a detector for searchDir, defaulting to ".".
func NewDetector(searchDir string) *Detector {
	if searchDir == "" {
		searchDir = "."
	}
	return &Detector{SearchDir: searchDir}
}

// IsSolutionFile checks if a path has a solution descriptor extension.
func IsSolutionFile(path string) bool {
	return Format(path) != ""
}

// DetectionResult contains the result of descriptor detection.
type DetectionResult struct {
	// Found indicates if any descriptor was found
	Found bool

	// Ambiguous indicates if multiple descriptors were found
	Ambiguous bool

	// SolutionPath is the path to the found descriptor
	SolutionPath string

	// FoundFiles lists all descriptors found
	FoundFiles []string

	// Format is the detected descriptor format
	Format string
}

// Detect searches the configured directory for solution descriptors,
// skipping hidden and build-output directories.
func (d *Detector) Detect() (*DetectionResult, error) {
	result := &DetectionResult{FoundFiles: []string{}}

	err := filepath.Walk(d.SearchDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsPermission(err) {
				return nil
			}
			return err
		}

		if info.IsDir() {
			name := info.Name()
			if strings.HasPrefix(name, ".") && name != "." || name == "bin" || name == "obj" || name == "node_modules" {
				return filepath.SkipDir
			}
			return nil
		}

		if IsSolutionFile(path) {
			absPath, err := filepath.Abs(path)
			if err != nil {
				absPath = path
			}
			result.FoundFiles = append(result.FoundFiles, absPath)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error searching for solution descriptors: %w", err)
	}

	switch len(result.FoundFiles) {
	case 0:
	case 1:
		result.Found = true
		result.SolutionPath = result.FoundFiles[0]
		result.Format = Format(result.SolutionPath)
	default:
		result.Found = true
		result.Ambiguous = true
	}
	return result, nil
}

// ValidateSolutionFile checks that a descriptor exists and is readable.
func ValidateSolutionFile(path string) error {
	if !IsSolutionFile(path) {
		return fmt.Errorf("%w: %s (must have .sln or .slnx extension)", ErrUnsupportedFormat, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("solution descriptor not found: %s", path)
		}
		return fmt.Errorf("cannot access solution descriptor: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a solution descriptor: %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot read solution descriptor: %w", err)
	}
	_ = file.Close()
	return nil
}
