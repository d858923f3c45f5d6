package solution

import (
	"strings"
)

// rawProject is a scanned project block before model assembly.
type rawProject struct {
	typeGUID string
	name     string
	path     string
	guid     string
	line     int
	sections []RawSection
}

// rawDocument is the block-parser output for one descriptor.
type rawDocument struct {
	formatVersion  string
	headerValues   []KeyValue
	projects       []rawProject
	globalSections []RawSection
}

// Block parser states. Only project blocks and one global region are valid
// at the top level; section kinds are only valid inside their block.
type blockState int

const (
	stateTop blockState = iota
	stateProject
	stateProjectSection
	stateGlobal
	stateGlobalSection
)

const (
	formatHeaderPrefix = "Microsoft Visual Studio Solution File, Format Version "

	projectMarker           = "Project("
	endProjectMarker        = "EndProject"
	projectSectionMarker    = "ProjectSection("
	endProjectSectionMarker = "EndProjectSection"
	globalMarker            = "Global"
	endGlobalMarker         = "EndGlobal"
	globalSectionMarker     = "GlobalSection("
	endGlobalSectionMarker  = "EndGlobalSection"
)

// parseBlocks runs the block-level state machine over logical lines.
func parseBlocks(lines []logicalLine, path string, opts ParserOptions) (*rawDocument, error) {
	doc := &rawDocument{}
	state := stateTop

	var (
		current     rawProject
		section     RawSection
		sawGlobal   bool
		globalLine  int
		sectionOpen int
	)

	fail := func(line int, token, msg string) error {
		return &ParseError{FilePath: path, Line: line, Token: token, Message: msg}
	}

	for _, ln := range lines {
		text := ln.text
		switch state {
		case stateTop:
			switch {
			case strings.HasPrefix(text, formatHeaderPrefix):
				doc.formatVersion = strings.TrimSpace(text[len(formatHeaderPrefix):])
			case strings.HasPrefix(text, projectMarker):
				p, err := parseProjectHeader(text, ln.number, path, opts)
				if err != nil {
					return nil, err
				}
				current = p
				state = stateProject
			case text == globalMarker:
				if sawGlobal {
					return nil, fail(ln.number, text, "duplicate Global region")
				}
				sawGlobal = true
				globalLine = ln.number
				state = stateGlobal
			case strings.HasPrefix(text, globalSectionMarker):
				return nil, fail(ln.number, text, "global section outside Global region")
			case strings.HasPrefix(text, projectSectionMarker):
				return nil, fail(ln.number, text, "project section outside project block")
			case text == endProjectMarker || text == endGlobalMarker ||
				text == endProjectSectionMarker || text == endGlobalSectionMarker:
				return nil, fail(ln.number, text, "closing marker with no open block")
			default:
				if k, v, ok := splitKeyValue(text); ok {
					doc.headerValues = append(doc.headerValues, KeyValue{Key: k, Value: v, Line: ln.number})
				}
				// Anything else at the top level is tolerated for forward
				// compatibility.
			}

		case stateProject:
			switch {
			case text == endProjectMarker:
				doc.projects = append(doc.projects, current)
				state = stateTop
			case strings.HasPrefix(text, projectSectionMarker):
				name, order, err := parseSectionHeader(text, projectSectionMarker, ln.number, path)
				if err != nil {
					return nil, err
				}
				section = RawSection{Name: name, Order: order, Line: ln.number}
				sectionOpen = ln.number
				state = stateProjectSection
			case strings.HasPrefix(text, projectMarker):
				return nil, fail(ln.number, text, "project block opened inside project block")
			case text == globalMarker || strings.HasPrefix(text, globalSectionMarker):
				return nil, fail(ln.number, text, "global block inside project block")
			}

		case stateProjectSection:
			switch {
			case text == endProjectSectionMarker:
				current.sections = append(current.sections, section)
				state = stateProject
			case text == endProjectMarker:
				return nil, fail(sectionOpen, section.Name, "unterminated project section")
			default:
				section.Pairs = append(section.Pairs, keyValueLine(text, ln.number))
			}

		case stateGlobal:
			switch {
			case text == endGlobalMarker:
				state = stateTop
			case strings.HasPrefix(text, globalSectionMarker):
				name, order, err := parseSectionHeader(text, globalSectionMarker, ln.number, path)
				if err != nil {
					return nil, err
				}
				section = RawSection{Name: name, Order: order, Line: ln.number}
				sectionOpen = ln.number
				state = stateGlobalSection
			case strings.HasPrefix(text, projectMarker), strings.HasPrefix(text, projectSectionMarker):
				return nil, fail(ln.number, text, "project block inside Global region")
			}

		case stateGlobalSection:
			switch {
			case text == endGlobalSectionMarker:
				doc.globalSections = append(doc.globalSections, section)
				state = stateGlobal
			case text == endGlobalMarker:
				return nil, fail(sectionOpen, section.Name, "unterminated global section")
			default:
				section.Pairs = append(section.Pairs, keyValueLine(text, ln.number))
			}
		}
	}

	switch state {
	case stateProject:
		return nil, fail(current.line, current.name, "unterminated project block")
	case stateProjectSection, stateGlobalSection:
		return nil, fail(sectionOpen, section.Name, "unterminated section block")
	case stateGlobal:
		return nil, fail(globalLine, globalMarker, "unterminated Global region")
	}

	return doc, nil
}

// parseProjectHeader decodes a project block header:
//
//	Project("{TYPE-GUID}") = "Name", "Path", "{GUID}"
//
// honoring the configured quote character and doubled-quote escapes.
func parseProjectHeader(text string, line int, path string, opts ParserOptions) (rawProject, error) {
	c := &cursor{s: text, file: path, line: line}

	if !c.literal(projectMarker) {
		return rawProject{}, c.fail("malformed project header")
	}
	typeGUID, err := c.quoted(opts.Quote)
	if err != nil {
		return rawProject{}, err
	}
	if !c.literal(")") || !c.literal("=") {
		return rawProject{}, c.fail("malformed project header")
	}
	name, err := c.quoted(opts.Quote)
	if err != nil {
		return rawProject{}, err
	}
	if !c.literal(",") {
		return rawProject{}, c.fail("missing path field in project header")
	}
	relPath, err := c.quoted(opts.Quote)
	if err != nil {
		return rawProject{}, err
	}
	if !c.literal(",") {
		return rawProject{}, c.fail("missing identifier field in project header")
	}
	guid, err := c.quoted(opts.Quote)
	if err != nil {
		return rawProject{}, err
	}

	return rawProject{
		typeGUID: typeGUID,
		name:     name,
		path:     relPath,
		guid:     guid,
		line:     line,
	}, nil
}

// parseSectionHeader decodes "<Marker>Name) = qualifier" for both section
// kinds. Unknown qualifiers are fatal; unknown section names are not.
func parseSectionHeader(text, marker string, line int, path string) (string, SectionOrder, error) {
	rest := text[len(marker):]
	close := strings.IndexByte(rest, ')')
	if close < 0 {
		return "", 0, &ParseError{FilePath: path, Line: line, Token: text, Message: "missing ')' in section header"}
	}
	name := strings.TrimSpace(rest[:close])
	if name == "" {
		return "", 0, &ParseError{FilePath: path, Line: line, Token: text, Message: "empty section name"}
	}

	rest = strings.TrimSpace(rest[close+1:])
	rest = strings.TrimPrefix(rest, "=")
	qualifier := strings.TrimSpace(rest)
	switch qualifier {
	case "preProject":
		return name, PreProject, nil
	case "postProject":
		return name, PostProject, nil
	case "preSolution":
		return name, PreSolution, nil
	case "postSolution":
		return name, PostSolution, nil
	default:
		return "", 0, &ParseError{FilePath: path, Line: line, Token: qualifier, Message: "unknown section qualifier"}
	}
}

// keyValueLine splits a section body line at the first '='. Lines without
// one are preserved with an empty value.
func keyValueLine(text string, line int) KeyValue {
	if k, v, ok := splitKeyValue(text); ok {
		return KeyValue{Key: k, Value: v, Line: line}
	}
	return KeyValue{Key: text, Line: line}
}

func splitKeyValue(text string) (string, string, bool) {
	eq := strings.IndexByte(text, '=')
	if eq < 0 {
		return "", "", false
	}
	return strings.TrimSpace(text[:eq]), strings.TrimSpace(text[eq+1:]), true
}

// cursor is a small scanner over one header line.
type cursor struct {
	s    string
	i    int
	file string
	line int
}

func (c *cursor) fail(msg string) error {
	return &ParseError{FilePath: c.file, Line: c.line, Token: c.s, Message: msg}
}

func (c *cursor) skipSpace() {
	for c.i < len(c.s) && (c.s[c.i] == ' ' || c.s[c.i] == '\t') {
		c.i++
	}
}

// literal consumes the expected token, skipping leading whitespace.
func (c *cursor) literal(tok string) bool {
	c.skipSpace()
	if strings.HasPrefix(c.s[c.i:], tok) {
		c.i += len(tok)
		return true
	}
	return false
}

// quoted consumes a value delimited by the quote character. A doubled
// quote character is the escape for a literal one; unescaping happens
// here. Backslashes are ordinary bytes so declared Windows paths survive
// untouched.
func (c *cursor) quoted(quote byte) (string, error) {
	c.skipSpace()
	if c.i >= len(c.s) || c.s[c.i] != quote {
		return "", c.fail("expected quoted value")
	}
	c.i++
	var b strings.Builder
	for c.i < len(c.s) {
		ch := c.s[c.i]
		if ch == quote {
			if c.i+1 < len(c.s) && c.s[c.i+1] == quote {
				b.WriteByte(quote)
				c.i += 2
				continue
			}
			c.i++
			return b.String(), nil
		}
		b.WriteByte(ch)
		c.i++
	}
	return "", c.fail("unterminated quoted value")
}
