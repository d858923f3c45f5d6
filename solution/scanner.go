package solution

import (
	"bufio"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/willibrandon/gosln/observability"
)

// ParserOptions configures the legacy-grammar pipeline. The quote and
// comment characters are grammar configuration choices, not fixed
// literals; callers may substitute their own before parsing.
type ParserOptions struct {
	// Quote is the delimiter for quoted values. Defaults to '"'.
	Quote byte

	// Comment marks a full-line comment. Defaults to '#'.
	Comment byte

	// ListSeparator splits reference lists. Defaults to ';'.
	ListSeparator byte

	// Logger receives recovered decode warnings. Defaults to a null
	// logger.
	Logger observability.Logger
}

// DefaultParserOptions returns the standard descriptor grammar settings.
func DefaultParserOptions() ParserOptions {
	return ParserOptions{
		Quote:         '"',
		Comment:       '#',
		ListSeparator: ';',
		Logger:        observability.NewNullLogger(),
	}
}

func (o ParserOptions) withDefaults() ParserOptions {
	d := DefaultParserOptions()
	if o.Quote == 0 {
		o.Quote = d.Quote
	}
	if o.Comment == 0 {
		o.Comment = d.Comment
	}
	if o.ListSeparator == 0 {
		o.ListSeparator = d.ListSeparator
	}
	if o.Logger == nil {
		o.Logger = d.Logger
	}
	return o
}

// logicalLine is one trimmed, comment-stripped line with its 1-based
// position in the source.
type logicalLine struct {
	text   string
	number int
}

// decodeReader wraps r so that UTF-16 (either endianness) and BOM-prefixed
// UTF-8 descriptors decode to plain UTF-8. Descriptors written by old IDEs
// are frequently UTF-16 or carry a byte-order mark.
func decodeReader(r io.Reader) io.Reader {
	enc := unicode.UTF8.NewDecoder()
	return transform.NewReader(r, unicode.BOMOverride(enc))
}

// scanLines splits descriptor text into logical lines: decoded, trimmed,
// blank and comment lines discarded, positions preserved for diagnostics.
func scanLines(r io.Reader, opts ParserOptions) ([]logicalLine, error) {
	scanner := bufio.NewScanner(decodeReader(r))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []logicalLine
	num := 0
	for scanner.Scan() {
		num++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || text[0] == opts.Comment {
			continue
		}
		lines = append(lines, logicalLine{text: text, number: num})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
