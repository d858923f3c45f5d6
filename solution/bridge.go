package solution

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel/codes"

	"github.com/willibrandon/gosln/observability"
)

// Parser defines the interface for producing a model from a descriptor
// file. The legacy pipeline and the structured serializer both implement
// it; a model loaded from either format exposes identical entry data for
// semantically identical input.
type Parser interface {
	// Parse reads and parses a solution descriptor
	Parse(path string) (*SolutionModel, error)

	// CanParse checks if this parser supports the given file
	CanParse(path string) bool
}

// Writer persists a model to a descriptor file.
type Writer interface {
	// Save writes the model to path
	Save(path string, model *SolutionModel) error
}

// FormatSln and FormatSlnx name the two descriptor formats.
const (
	FormatSln  = "sln"
	FormatSlnx = "slnx"
)

// Format returns the descriptor format for a path, or "" when the
// extension is not a known format.
func Format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sln":
		return FormatSln
	case ".slnx":
		return FormatSlnx
	default:
		return ""
	}
}

// GetParser returns the appropriate parser for a descriptor file.
func GetParser(path string) (Parser, error) {
	return GetParserWithOptions(path, DefaultParserOptions())
}

// GetParserWithOptions returns the appropriate parser, applying opts to
// the legacy pipeline. The structured serializer has no grammar knobs.
func GetParserWithOptions(path string, opts ParserOptions) (Parser, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}
	switch Format(path) {
	case FormatSln:
		return NewSlnParserWithOptions(opts), nil
	case FormatSlnx:
		return NewSlnxParser(), nil
	default:
		return nil, fmt.Errorf("%w: %s (supported: .sln, .slnx)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// GetWriter returns the appropriate writer for a descriptor file.
func GetWriter(path string) (Writer, error) {
	switch Format(path) {
	case FormatSln:
		return NewSlnWriter(), nil
	case FormatSlnx:
		return NewSlnxWriter(), nil
	default:
		return nil, fmt.Errorf("%w: %s (supported: .sln, .slnx)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load parses a descriptor in whichever format the path names. Each call
// is independent and produces its own model; concurrent loads do not
// interfere. The context is honored at the operation boundary; the legacy
// pipeline itself runs to completion once started.
func Load(ctx context.Context, path string) (*SolutionModel, error) {
	return LoadWithOptions(ctx, path, DefaultParserOptions())
}

// LoadWithOptions is Load with caller-substituted grammar settings.
func LoadWithOptions(ctx context.Context, path string, opts ParserOptions) (*SolutionModel, error) {
	format := Format(path)
	ctx, span := observability.StartLoadSpan(ctx, path, format)
	defer span.End()

	if err := ctx.Err(); err != nil {
		observability.RecordSpanError(span, err)
		return nil, err
	}

	parser, err := GetParserWithOptions(path, opts)
	if err != nil {
		observability.RecordSpanError(span, err)
		return nil, err
	}

	start := time.Now()
	model, err := parser.Parse(path)
	observability.ParseDuration.WithLabelValues(format).Observe(time.Since(start).Seconds())
	if err != nil {
		observability.ParsesTotal.WithLabelValues(format, "failure").Inc()
		observability.RecordSpanError(span, err)
		return nil, err
	}

	observability.ParsesTotal.WithLabelValues(format, "success").Inc()
	observability.ProjectEntries.WithLabelValues(format).Set(float64(len(model.Projects)))
	if n := len(model.Warnings); n > 0 {
		observability.ParseWarningsTotal.Add(float64(n))
		span.SetAttributes(observability.AttrWarningCount.Int(n))
	}
	span.SetAttributes(observability.AttrProjectCount.Int(len(model.Projects)))
	span.SetStatus(codes.Ok, "")
	return model, nil
}

// Save persists a model to path in whichever format the path names.
func Save(path string, model *SolutionModel) error {
	writer, err := GetWriter(path)
	if err != nil {
		return err
	}
	return writer.Save(path, model)
}

// Convert loads a descriptor in whichever format it is in and persists it
// in the other, returning the path of the new file. The converted model
// exposes identical project entry data; that equivalence is the bridge's
// core contract.
func Convert(ctx context.Context, path string) (string, error) {
	var newPath, direction string
	switch Format(path) {
	case FormatSln:
		newPath = strings.TrimSuffix(path, filepath.Ext(path)) + ".slnx"
		direction = "sln_to_slnx"
	case FormatSlnx:
		newPath = strings.TrimSuffix(path, filepath.Ext(path)) + ".sln"
		direction = "slnx_to_sln"
	default:
		return "", fmt.Errorf("%w: %s (supported: .sln, .slnx)", ErrUnsupportedFormat, filepath.Ext(path))
	}

	ctx, span := observability.StartConvertSpan(ctx, path, direction)
	defer span.End()

	model, err := Load(ctx, path)
	if err != nil {
		observability.ConversionsTotal.WithLabelValues(direction, "failure").Inc()
		observability.RecordSpanError(span, err)
		return "", err
	}
	if err := Save(newPath, model); err != nil {
		observability.ConversionsTotal.WithLabelValues(direction, "failure").Inc()
		observability.RecordSpanError(span, err)
		return "", err
	}

	observability.ConversionsTotal.WithLabelValues(direction, "success").Inc()
	span.SetStatus(codes.Ok, "")
	return newPath, nil
}
