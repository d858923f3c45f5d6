package solution

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSlnx = `<?xml version="1.0" encoding="utf-8"?>
<Solution>
  <Properties>
    <Property Name="VisualStudioVersion" Value="17.0.31903.59" />
    <Property Name="HideSolutionNode" Value="FALSE" />
  </Properties>
  <Configurations>
    <BuildType Name="Debug|Any CPU" />
    <BuildType Name="Release|Any CPU" />
  </Configurations>
  <Folder Name="Libraries">
    <File Path="README.md" />
    <Project Path="src/Core/Core.csproj" Id="{11111111-1111-1111-1111-111111111111}">
      <Configuration Solution="Debug|Any CPU" Project="Debug|Any CPU" Build="true" />
      <Configuration Solution="Release|Any CPU" Project="Release|Any CPU" Build="false" />
    </Project>
    <Folder Name="Nested">
      <Project Path="src/Util/Util.vbproj" />
    </Folder>
  </Folder>
  <Project Path="src/App/App.csproj" Id="{22222222-2222-2222-2222-222222222222}">
    <BuildDependency Project="{11111111-1111-1111-1111-111111111111}" />
  </Project>
  <Project Path="../WebSite1/" Id="{44444444-4444-4444-4444-444444444444}">
    <ProjectReference Project="{11111111-1111-1111-1111-111111111111}" Name="Core.dll" />
    <WebProperties Configuration="Debug" VirtualPath="/WebSite1" PhysicalPath="..\WebSite1\" Updateable="true" />
  </Project>
</Solution>
`

func parseSampleSlnx(t *testing.T) *SolutionModel {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Sample.slnx")
	require.NoError(t, os.WriteFile(path, []byte(sampleSlnx), 0644))

	model, err := NewSlnxParser().Parse(path)
	require.NoError(t, err)
	return model
}

func TestSlnxParser_ModelShape(t *testing.T) {
	model := parseSampleSlnx(t)

	// Two folders, two nested projects, two top-level projects.
	require.Len(t, model.Projects, 6)
	assert.Equal(t, "17.0.31903.59", model.VisualStudioVersion)
	assert.Equal(t, "FALSE", model.Properties["HideSolutionNode"])
	require.Len(t, model.Configurations, 2)
	assert.Equal(t, "Debug|Any CPU", model.Configurations[0].FullName)
}

func TestSlnxParser_FolderNesting(t *testing.T) {
	model := parseSampleSlnx(t)

	libs, ok := model.EntryByName("Libraries")
	require.True(t, ok)
	assert.Equal(t, TypeSolutionFolder, libs.Type)
	assert.Equal(t, []string{"README.md"}, libs.Items)
	assert.Empty(t, libs.ParentGUID)

	nested, ok := model.EntryByName("Nested")
	require.True(t, ok)
	assert.Equal(t, libs.GUID, nested.ParentGUID)

	core, ok := model.EntryByGUID("{11111111-1111-1111-1111-111111111111}")
	require.True(t, ok)
	assert.Equal(t, libs.GUID, core.ParentGUID)

	util, ok := model.EntryByName("Util")
	require.True(t, ok)
	assert.Equal(t, nested.GUID, util.ParentGUID)
}

func TestSlnxParser_GeneratedIdentifiersStable(t *testing.T) {
	a := parseSampleSlnx(t)
	b := parseSampleSlnx(t)

	for _, name := range []string{"Libraries", "Nested", "Util"} {
		ea, ok := a.EntryByName(name)
		require.True(t, ok)
		eb, ok := b.EntryByName(name)
		require.True(t, ok)
		assert.Equal(t, ea.GUID, eb.GUID, name)
		_, valid := canonicalGUID(ea.GUID)
		assert.True(t, valid)
	}
}

func TestSlnxParser_TypeInference(t *testing.T) {
	model := parseSampleSlnx(t)

	util, ok := model.EntryByName("Util")
	require.True(t, ok)
	assert.Equal(t, ProjectTypeVBProject, util.TypeGUID)
	assert.Equal(t, TypeProject, util.Type)

	// Bare directory path means a website project.
	web, ok := model.EntryByGUID("{44444444-4444-4444-4444-444444444444}")
	require.True(t, ok)
	assert.Equal(t, TypeWebProject, web.Type)
	assert.Equal(t, "true", web.WebProperties["Debug"].Updateable)
	require.Len(t, web.ProjectReferences, 1)
	assert.Equal(t, "Core.dll", web.ProjectReferences[0].Name)
}

func TestSlnxParser_Configurations(t *testing.T) {
	model := parseSampleSlnx(t)

	pc, ok := model.ConfigurationFor("{11111111-1111-1111-1111-111111111111}", "Debug|Any CPU")
	require.True(t, ok)
	assert.True(t, pc.Build)

	pc, ok = model.ConfigurationFor("{11111111-1111-1111-1111-111111111111}", "Release|Any CPU")
	require.True(t, ok)
	assert.False(t, pc.Build)
}

func TestSlnxParser_Dependencies(t *testing.T) {
	model := parseSampleSlnx(t)

	app, ok := model.EntryByGUID("{22222222-2222-2222-2222-222222222222}")
	require.True(t, ok)
	assert.Equal(t, []string{"{11111111-1111-1111-1111-111111111111}"}, app.Dependencies)
}

func TestSlnxParser_SyntaxErrorCarriesLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.slnx")
	require.NoError(t, os.WriteFile(path, []byte("<Solution>\n  <Project\n</Solution>\n"), 0644))

	_, err := NewSlnxParser().Parse(path)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Greater(t, perr.Line, 0)
}

func TestSlnxParser_DuplicateIdentifierFatal(t *testing.T) {
	text := `<Solution>
  <Project Path="a/A.csproj" Id="{11111111-1111-1111-1111-111111111111}" />
  <Project Path="b/B.csproj" Id="{11111111-1111-1111-1111-111111111111}" />
</Solution>`
	path := filepath.Join(t.TempDir(), "dup.slnx")
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))

	_, err := NewSlnxParser().Parse(path)
	require.ErrorIs(t, err, ErrDuplicateProject)
}

func TestProjectTypeFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"src/Core/Core.csproj", ProjectTypeCSProjectSDK},
		{"src/Util/Util.vbproj", ProjectTypeVBProject},
		{"src/Fs/Fs.fsproj", ProjectTypeFSProject},
		{"native/native.vcxproj", ProjectTypeVCProject},
		{`..\WebSite1\`, ProjectTypeWebSite},
		{"tools/odd.xproj", ProjectTypeCSProjectSDK},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, projectTypeFromPath(tt.path), tt.path)
	}
}
