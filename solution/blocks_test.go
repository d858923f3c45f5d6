package solution

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProjectHeader_DoubledQuoteEscape(t *testing.T) {
	line := `Project("{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}") = "My ""Quoted"" App", "App\App.csproj", "{22222222-2222-2222-2222-222222222222}"`

	p, err := parseProjectHeader(line, 7, "test.sln", DefaultParserOptions())
	require.NoError(t, err)
	assert.Equal(t, `My "Quoted" App`, p.name)
	assert.Equal(t, `App\App.csproj`, p.path)
	assert.Equal(t, 7, p.line)
}

func TestParseProjectHeader_TrailingBackslashBeforeQuote(t *testing.T) {
	// Website paths end in a backslash immediately before the closing
	// quote. That backslash is an ordinary byte, not an escape.
	line := `Project("{E24C65DC-7377-472B-9ABA-BC803B73C61A}") = "WebSite1", "..\WebSite1\", "{44444444-4444-4444-4444-444444444444}"`

	p, err := parseProjectHeader(line, 1, "test.sln", DefaultParserOptions())
	require.NoError(t, err)
	assert.Equal(t, `..\WebSite1\`, p.path)
}

func TestParseProjectHeader_CustomQuoteCharacter(t *testing.T) {
	opts := ParserOptions{Quote: '\''}.withDefaults()
	line := `Project('{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}') = 'Core', 'src\Core.csproj', '{11111111-1111-1111-1111-111111111111}'`

	p, err := parseProjectHeader(line, 1, "test.sln", opts)
	require.NoError(t, err)
	assert.Equal(t, "Core", p.name)
	assert.Equal(t, `src\Core.csproj`, p.path)
}

func TestParseProjectHeader_Malformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"missing path field", `Project("{GUID}") = "Name"`},
		{"unterminated quote", `Project("{GUID}") = "Name", "path.csproj`},
		{"no assignment", `Project("{GUID}")`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseProjectHeader(tt.line, 3, "test.sln", DefaultParserOptions())
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, 3, perr.Line)
			assert.Equal(t, "test.sln", perr.FilePath)
		})
	}
}

func TestParseSectionHeader_Qualifiers(t *testing.T) {
	tests := []struct {
		line  string
		name  string
		order SectionOrder
	}{
		{"ProjectSection(ProjectDependencies) = postProject", "ProjectDependencies", PostProject},
		{"ProjectSection(WebsiteProperties) = preProject", "WebsiteProperties", PreProject},
	}
	for _, tt := range tests {
		name, order, err := parseSectionHeader(tt.line, projectSectionMarker, 1, "test.sln")
		require.NoError(t, err)
		assert.Equal(t, tt.name, name)
		assert.Equal(t, tt.order, order)
	}
}

func TestParseSectionHeader_UnknownQualifierFatal(t *testing.T) {
	_, _, err := parseSectionHeader("GlobalSection(Foo) = sideways", globalSectionMarker, 9, "test.sln")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "sideways", perr.Token)
}

func scanAndParse(t *testing.T, text string) (*rawDocument, error) {
	t.Helper()
	lines, err := scanLines(strings.NewReader(text), DefaultParserOptions())
	require.NoError(t, err)
	return parseBlocks(lines, "test.sln", DefaultParserOptions())
}

func TestParseBlocks_SectionOutsideBlockFatal(t *testing.T) {
	_, err := scanAndParse(t, `
ProjectSection(ProjectDependencies) = postProject
EndProjectSection
`)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Message, "outside project block")
}

func TestParseBlocks_DuplicateGlobalFatal(t *testing.T) {
	_, err := scanAndParse(t, `
Global
EndGlobal
Global
EndGlobal
`)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Message, "duplicate Global")
}

func TestParseBlocks_UnterminatedProjectReportsOpeningLine(t *testing.T) {
	text := "\nMicrosoft Visual Studio Solution File, Format Version 12.00\n" +
		`Project("{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}") = "Core", "Core.csproj", "{11111111-1111-1111-1111-111111111111}"` + "\n"

	_, err := scanAndParse(t, text)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 3, perr.Line)
	assert.Contains(t, perr.Message, "unterminated project block")
}

func TestParseBlocks_StrayClosingMarkerFatal(t *testing.T) {
	_, err := scanAndParse(t, "EndProject\n")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Message, "no open block")
}

func TestParseBlocks_UnknownTopLevelLinesTolerated(t *testing.T) {
	doc, err := scanAndParse(t, `
Microsoft Visual Studio Solution File, Format Version 12.00
SomeFutureDirective without assignment
VisualStudioVersion = 17.0.31903.59
`)
	require.NoError(t, err)
	assert.Equal(t, "12.00", doc.formatVersion)
	require.Len(t, doc.headerValues, 1)
	assert.Equal(t, "VisualStudioVersion", doc.headerValues[0].Key)
}

func TestKeyValueLine_NoEquals(t *testing.T) {
	kv := keyValueLine("BareToken", 12)
	assert.Equal(t, "BareToken", kv.Key)
	assert.Equal(t, "", kv.Value)
	assert.Equal(t, 12, kv.Line)
}
