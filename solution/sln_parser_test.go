package solution

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	guidCore    = "{11111111-1111-1111-1111-111111111111}"
	guidApp     = "{22222222-2222-2222-2222-222222222222}"
	guidFolder  = "{33333333-3333-3333-3333-333333333333}"
	guidWeb     = "{44444444-4444-4444-4444-444444444444}"
	guidMystery = "{55555555-5555-5555-5555-555555555555}"
)

const sampleSln = `
Microsoft Visual Studio Solution File, Format Version 12.00
# Visual Studio Version 17
VisualStudioVersion = 17.0.31903.59
MinimumVisualStudioVersion = 10.0.40219.1
Project("{9A19103F-16F7-4668-BE54-9A1E7A4F7556}") = "Core", "src\Core\Core.csproj", "{11111111-1111-1111-1111-111111111111}"
EndProject
Project("{9A19103F-16F7-4668-BE54-9A1E7A4F7556}") = "App", "src\App\App.csproj", "{22222222-2222-2222-2222-222222222222}"
	ProjectSection(ProjectDependencies) = postProject
		{11111111-1111-1111-1111-111111111111} = {11111111-1111-1111-1111-111111111111}
		{44444444-4444-4444-4444-444444444444} = {44444444-4444-4444-4444-444444444444}
		{11111111-1111-1111-1111-111111111111} = {11111111-1111-1111-1111-111111111111}
	EndProjectSection
EndProject
Project("{2150E333-8FDC-42A3-9474-1A3956D46DE8}") = "Libraries", "Libraries", "{33333333-3333-3333-3333-333333333333}"
	ProjectSection(SolutionItems) = preProject
		README.md = README.md
	EndProjectSection
EndProject
Project("{E24C65DC-7377-472B-9ABA-BC803B73C61A}") = "WebSite1", "..\WebSite1\", "{44444444-4444-4444-4444-444444444444}"
	ProjectSection(WebsiteProperties) = preProject
		Debug.AspNetCompiler.VirtualPath = "/WebSite1"
		Debug.AspNetCompiler.PhysicalPath = "..\WebSite1\"
		Debug.AspNetCompiler.Updateable = "true"
		Debug.AspNetCompiler.Obscure = "ignored"
		Release.AspNetCompiler.VirtualPath = "/WebSite1"
		ProjectReferences = "{11111111-1111-1111-1111-111111111111}|Core.dll;{22222222-2222-2222-2222-222222222222}|App.dll;"
	EndProjectSection
EndProject
Project("{DEADBEEF-0000-4000-8000-000000000000}") = "Mystery", "tools\Mystery.xproj", "{55555555-5555-5555-5555-555555555555}"
EndProject
Global
	GlobalSection(SolutionConfigurationPlatforms) = preSolution
		Debug|Any CPU = Debug|Any CPU
		Release|Any CPU = Release|Any CPU
	EndGlobalSection
	GlobalSection(ProjectConfigurationPlatforms) = postSolution
		{11111111-1111-1111-1111-111111111111}.Debug|Any CPU.ActiveCfg = Debug|Any CPU
		{11111111-1111-1111-1111-111111111111}.Debug|Any CPU.Build.0 = Debug|Any CPU
		{11111111-1111-1111-1111-111111111111}.Release|Any CPU.ActiveCfg = Release|Any CPU
		{22222222-2222-2222-2222-222222222222}.Debug|Any CPU.ActiveCfg = Debug|Any CPU
		{22222222-2222-2222-2222-222222222222}.Debug|Any CPU.Build.0 = Debug|Any CPU
	EndGlobalSection
	GlobalSection(NestedProjects) = preSolution
		{11111111-1111-1111-1111-111111111111} = {33333333-3333-3333-3333-333333333333}
	EndGlobalSection
	GlobalSection(SolutionProperties) = preSolution
		HideSolutionNode = FALSE
	EndGlobalSection
	GlobalSection(TeamFoundationVersionControl) = preSolution
		SccNumberOfProjects = 2
	EndGlobalSection
EndGlobal
`

func parseSample(t *testing.T) *SolutionModel {
	t.Helper()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "Sample.sln")
	require.NoError(t, os.WriteFile(path, []byte(sampleSln), 0644))

	model, err := NewSlnParser().Parse(path)
	require.NoError(t, err)
	return model
}

func TestSlnParser_DeclarationOrder(t *testing.T) {
	model := parseSample(t)

	require.Len(t, model.Projects, 5)
	names := make([]string, len(model.Projects))
	for i := range model.Projects {
		names[i] = model.Projects[i].Name
	}
	assert.Equal(t, []string{"Core", "App", "Libraries", "WebSite1", "Mystery"}, names)
}

func TestSlnParser_HeaderMetadata(t *testing.T) {
	model := parseSample(t)

	assert.Equal(t, "12.00", model.FormatVersion)
	assert.Equal(t, "17.0.31903.59", model.VisualStudioVersion)
	assert.Equal(t, "10.0.40219.1", model.MinimumVisualStudioVersion)
}

func TestSlnParser_ProjectTypes(t *testing.T) {
	model := parseSample(t)

	core, ok := model.EntryByGUID(guidCore)
	require.True(t, ok)
	assert.Equal(t, TypeProject, core.Type)

	folder, ok := model.EntryByGUID(guidFolder)
	require.True(t, ok)
	assert.Equal(t, TypeSolutionFolder, folder.Type)
	assert.Equal(t, []string{"README.md"}, folder.Items)

	web, ok := model.EntryByGUID(guidWeb)
	require.True(t, ok)
	assert.Equal(t, TypeWebProject, web.Type)

	// An unknown type token classifies as unrecognized, never a failure.
	mystery, ok := model.EntryByGUID(guidMystery)
	require.True(t, ok)
	assert.Equal(t, TypeUnrecognized, mystery.Type)
	assert.Equal(t, "{DEADBEEF-0000-4000-8000-000000000000}", mystery.TypeGUID)
}

func TestSlnParser_DependenciesPreserveOrderAndDuplicates(t *testing.T) {
	model := parseSample(t)

	app, ok := model.EntryByGUID(guidApp)
	require.True(t, ok)
	assert.Equal(t, []string{guidCore, guidWeb, guidCore}, app.Dependencies)
}

func TestSlnParser_WebsiteReferences(t *testing.T) {
	model := parseSample(t)

	web, ok := model.EntryByGUID(guidWeb)
	require.True(t, ok)
	require.Len(t, web.ProjectReferences, 2)
	assert.Equal(t, guidCore, web.ProjectReferences[0].GUID)
	assert.Equal(t, "Core.dll", web.ProjectReferences[0].Name)
	assert.Equal(t, guidApp, web.ProjectReferences[1].GUID)

	// Website references stay distinct from build dependencies.
	assert.Empty(t, web.Dependencies)
}

func TestSlnParser_WebProperties(t *testing.T) {
	model := parseSample(t)

	web, ok := model.EntryByGUID(guidWeb)
	require.True(t, ok)
	require.Contains(t, web.WebProperties, "Debug")
	require.Contains(t, web.WebProperties, "Release")

	debug := web.WebProperties["Debug"]
	assert.Equal(t, "/WebSite1", debug.VirtualPath)
	assert.Equal(t, `..\WebSite1\`, debug.PhysicalPath)
	assert.Equal(t, "true", debug.Updateable)
	// Unassigned fields decode to empty string, never absent.
	assert.Equal(t, "", debug.TargetPath)
	assert.Equal(t, "", debug.KeyFile)

	release := web.WebProperties["Release"]
	assert.Equal(t, "/WebSite1", release.VirtualPath)
	assert.Equal(t, "", release.Updateable)
}

func TestSlnParser_Nesting(t *testing.T) {
	model := parseSample(t)

	core, ok := model.EntryByGUID(guidCore)
	require.True(t, ok)
	assert.Equal(t, guidFolder, core.ParentGUID)

	app, ok := model.EntryByGUID(guidApp)
	require.True(t, ok)
	assert.Empty(t, app.ParentGUID)
}

func TestSlnParser_ConfigurationMapping(t *testing.T) {
	model := parseSample(t)

	require.Len(t, model.Configurations, 2)
	assert.Equal(t, "Debug|Any CPU", model.Configurations[0].FullName)
	assert.Equal(t, "Debug", model.Configurations[0].Configuration)
	assert.Equal(t, "Any CPU", model.Configurations[0].Platform)

	pc, ok := model.ConfigurationFor(guidCore, "Debug|Any CPU")
	require.True(t, ok)
	assert.Equal(t, "Debug", pc.Configuration)
	assert.True(t, pc.Build)

	// ActiveCfg with no Build.0 maps the project but not buildable.
	pc, ok = model.ConfigurationFor(guidCore, "Release|Any CPU")
	require.True(t, ok)
	assert.Equal(t, "Release", pc.Configuration)
	assert.False(t, pc.Build)

	// Neither entry declared: absent from the build set, not an error.
	_, ok = model.ConfigurationFor(guidApp, "Release|Any CPU")
	assert.False(t, ok)

	_, ok = model.ConfigurationFor(guidMystery, "Debug|Any CPU")
	assert.False(t, ok)
}

func TestSlnParser_PropertiesAndUnknownSections(t *testing.T) {
	model := parseSample(t)

	assert.Equal(t, "FALSE", model.Properties["HideSolutionNode"])

	// Unknown global sections are preserved verbatim, never fatal.
	require.Len(t, model.GlobalSections, 1)
	sec := model.GlobalSections[0]
	assert.Equal(t, "TeamFoundationVersionControl", sec.Name)
	assert.Equal(t, "2", sec.Get("SccNumberOfProjects"))
}

func TestSlnParser_DeclaredPathBytesPreserved(t *testing.T) {
	model := parseSample(t)

	core, ok := model.EntryByGUID(guidCore)
	require.True(t, ok)
	assert.Equal(t, `src\Core\Core.csproj`, core.Path)

	abs := core.AbsolutePath(model.SolutionDir)
	assert.True(t, filepath.IsAbs(abs))
	assert.True(t, strings.HasSuffix(filepath.ToSlash(abs), "src/Core/Core.csproj"))
}

func TestSlnParser_RejectsWrongExtension(t *testing.T) {
	_, err := NewSlnParser().Parse("project.csproj")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestSlnParser_FormatVersionTooOld(t *testing.T) {
	text := strings.Replace(sampleSln, "Format Version 12.00", "Format Version 6.00", 1)
	_, err := NewSlnParser().ParseBytes([]byte(text), "old.sln")

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Message, "minimum supported")
}

func TestSlnParser_CustomQuoteEndToEnd(t *testing.T) {
	text := `
Microsoft Visual Studio Solution File, Format Version 12.00
Project('{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}') = 'Core', 'src\Core\Core.csproj', '{11111111-1111-1111-1111-111111111111}'
EndProject
`
	parser := NewSlnParserWithOptions(ParserOptions{Quote: '\''})
	model, err := parser.ParseBytes([]byte(text), "custom.sln")
	require.NoError(t, err)
	require.Len(t, model.Projects, 1)
	assert.Equal(t, "Core", model.Projects[0].Name)
	assert.Equal(t, `src\Core\Core.csproj`, model.Projects[0].Path)
}

func TestSlnParser_EntryCountMatchesDeclarations(t *testing.T) {
	// One entry per declared project block, folders included.
	model := parseSample(t)
	assert.Equal(t, strings.Count(sampleSln, "\nProject("), len(model.Projects))
}
