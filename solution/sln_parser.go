package solution

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/willibrandon/gosln/version"
)

// SlnParser parses the legacy line-oriented .sln descriptor grammar.
type SlnParser struct {
	opts ParserOptions
}

// NewSlnParser creates a parser with the standard grammar settings.
func NewSlnParser() *SlnParser {
	return &SlnParser{opts: DefaultParserOptions()}
}

// NewSlnParserWithOptions creates a parser honoring caller-substituted
// quote, comment, and separator characters.
func NewSlnParserWithOptions(opts ParserOptions) *SlnParser {
	return &SlnParser{opts: opts.withDefaults()}
}

// CanParse checks if this parser supports the given file
func (p *SlnParser) CanParse(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".sln"
}

// Parse reads and parses a .sln file
func (p *SlnParser) Parse(path string) (*SolutionModel, error) {
	if !p.CanParse(path) {
		return nil, &ParseError{FilePath: path, Message: "not a .sln file"}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open solution file: %w", err)
	}
	return p.ParseBytes(data, path)
}

// ParseBytes parses descriptor text already in memory. path is used for
// diagnostics and to anchor relative project paths.
func (p *SlnParser) ParseBytes(data []byte, path string) (*SolutionModel, error) {
	lines, err := scanLines(bytes.NewReader(data), p.opts)
	if err != nil {
		return nil, fmt.Errorf("cannot read solution file: %w", err)
	}

	doc, err := parseBlocks(lines, path, p.opts)
	if err != nil {
		return nil, err
	}

	model, err := buildModel(doc, path, p.opts)
	if err != nil {
		return nil, err
	}

	if model.FormatVersion != "" {
		if err := version.CheckFormat(model.FormatVersion); err != nil {
			return nil, &ParseError{
				FilePath: path,
				Token:    model.FormatVersion,
				Message:  err.Error(),
			}
		}
	}

	p.opts.Logger.Debug("Parsed solution {Path} with {Count} entries",
		model.FilePath, len(model.Projects))
	return model, nil
}
