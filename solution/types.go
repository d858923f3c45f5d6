// Package solution parses build solution descriptors (.sln and .slnx) into
// a queryable project model for build orchestration.
package solution

import (
	"path/filepath"
	"strings"
)

// ProjectType classifies a project entry by its declared type token.
type ProjectType int

const (
	// TypeUnrecognized is any type token outside the known set.
	TypeUnrecognized ProjectType = iota

	// TypeProject is an ordinary buildable code project.
	TypeProject

	// TypeSolutionFolder is a virtual grouping folder with no project file.
	TypeSolutionFolder

	// TypeWebProject is a legacy website project carrying per-configuration
	// compiler parameters.
	TypeWebProject
)

// String returns a human-readable name for the project type.
func (t ProjectType) String() string {
	switch t {
	case TypeProject:
		return "project"
	case TypeSolutionFolder:
		return "folder"
	case TypeWebProject:
		return "web"
	default:
		return "unrecognized"
	}
}

// ProjectType GUIDs for known project types
const (
	// ProjectTypeCSProject identifies a C# project (classic)
	ProjectTypeCSProject = "{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}"

	// ProjectTypeCSProjectSDK identifies a SDK-style C# project (.NET Core/.NET 5+)
	ProjectTypeCSProjectSDK = "{9A19103F-16F7-4668-BE54-9A1E7A4F7556}"

	// ProjectTypeVBProject identifies a VB.NET project
	ProjectTypeVBProject = "{F184B08F-C81C-45F6-A57F-5ABD9991F28F}"

	// ProjectTypeFSProject identifies an F# project
	ProjectTypeFSProject = "{F2A71F9B-5D33-465A-A702-920D77279786}"

	// ProjectTypeVCProject identifies a Visual C++ project
	ProjectTypeVCProject = "{8BC9CEB8-8B4A-11D0-8D11-00A0C91BC942}"

	// ProjectTypeSharedProject identifies a shared project
	ProjectTypeSharedProject = "{D954291E-2A0B-460D-934E-DC6B0785DB48}"

	// ProjectTypeWebApplication identifies a web application project
	ProjectTypeWebApplication = "{349C5851-65DF-11DA-9384-00065B846F21}"

	// ProjectTypeSolutionFolder identifies a solution folder
	ProjectTypeSolutionFolder = "{2150E333-8FDC-42A3-9474-1A3956D46DE8}"

	// ProjectTypeWebSite identifies a legacy website project
	ProjectTypeWebSite = "{E24C65DC-7377-472B-9ABA-BC803B73C61A}"
)

// ClassifyProjectType maps a type GUID to its ProjectType. Unknown GUIDs
// classify as TypeUnrecognized, never as an error.
func ClassifyProjectType(typeGUID string) ProjectType {
	switch strings.ToUpper(typeGUID) {
	case ProjectTypeSolutionFolder:
		return TypeSolutionFolder
	case ProjectTypeWebSite:
		return TypeWebProject
	case ProjectTypeCSProject, ProjectTypeCSProjectSDK, ProjectTypeVBProject,
		ProjectTypeFSProject, ProjectTypeVCProject, ProjectTypeSharedProject,
		ProjectTypeWebApplication:
		return TypeProject
	default:
		return TypeUnrecognized
	}
}

// WebCompilerParameters holds the per-configuration compiler invocation
// settings of a website project. Fields absent from the source are empty
// strings, never missing, so consumers only need emptiness checks.
type WebCompilerParameters struct {
	VirtualPath    string
	PhysicalPath   string
	TargetPath     string
	ForceOverwrite string
	Updateable     string
	Debug          string
	KeyFile        string
	KeyContainer   string
	DelaySign      string
	APTCA          string
	FixedNames     string
}

// ProjectReference is one identifier|display-name pair from a website
// reference list. The display name is retained for auditing.
type ProjectReference struct {
	GUID string
	Name string
}

// KeyValue is a single key/value pair inside a section, with the source
// line it came from.
type KeyValue struct {
	Key   string
	Value string
	Line  int
}

// SectionOrder is the pre/post qualifier on a section block.
type SectionOrder int

const (
	// PreProject sections apply before the project is loaded.
	PreProject SectionOrder = iota
	// PostProject sections apply after the project is loaded.
	PostProject
	// PreSolution sections apply before solution load.
	PreSolution
	// PostSolution sections apply after solution load.
	PostSolution
)

// String returns the qualifier as written in the descriptor.
func (o SectionOrder) String() string {
	switch o {
	case PreProject:
		return "preProject"
	case PostProject:
		return "postProject"
	case PreSolution:
		return "preSolution"
	default:
		return "postSolution"
	}
}

// RawSection is an opaque section block. Sections the parser does not
// understand are preserved here verbatim for forward compatibility.
type RawSection struct {
	// Name is the section identifier (e.g. "WebsiteProperties").
	Name string

	// Order is the pre/post qualifier from the section header.
	Order SectionOrder

	// Pairs holds the key/value lines in declaration order.
	Pairs []KeyValue

	// Line is the line the section header appeared on.
	Line int
}

// Get returns the first value for key, or "" when absent.
func (s *RawSection) Get(key string) string {
	for _, kv := range s.Pairs {
		if kv.Key == key {
			return kv.Value
		}
	}
	return ""
}

// ProjectEntry is one project or solution folder in the model.
type ProjectEntry struct {
	// GUID is the unique identifier, canonical uppercase "{...}" form.
	GUID string

	// Name is the display name from the project header.
	Name string

	// Path is the declared relative path, byte-for-byte as written.
	// Folders carry their virtual name here instead of a file path.
	Path string

	// TypeGUID is the declared type token, canonical uppercase form.
	TypeGUID string

	// Type is the classification of TypeGUID.
	Type ProjectType

	// ParentGUID is the containing solution folder, "" for top-level
	// entries.
	ParentGUID string

	// Dependencies lists GUIDs of projects that must build first, in
	// declaration order, duplicates preserved. No transitive closure.
	Dependencies []string

	// ProjectReferences is the website-style reference list, kept
	// distinct from Dependencies.
	ProjectReferences []ProjectReference

	// WebProperties maps a build configuration name ("Debug", "Release")
	// to its compiler parameter record. Populated for web projects only.
	WebProperties map[string]WebCompilerParameters

	// Items lists solution item files for folder entries.
	Items []string

	// Sections preserves project sections the parser does not recognize.
	Sections []RawSection

	// Line is the line the project header appeared on.
	Line int
}

// IsBuildable reports whether the entry represents a buildable project
// rather than a folder.
func (p *ProjectEntry) IsBuildable() bool {
	return p.Type != TypeSolutionFolder
}

// AbsolutePath resolves the entry path against the solution directory.
// Folder entries have no file-system correspondent and return "".
func (p *ProjectEntry) AbsolutePath(solutionDir string) string {
	if p.Type == TypeSolutionFolder {
		return ""
	}
	norm := NormalizePath(p.Path)
	if filepath.IsAbs(norm) {
		return filepath.Clean(norm)
	}
	return filepath.Clean(filepath.Join(solutionDir, norm))
}

// SolutionConfiguration is one solution-level configuration|platform pair.
type SolutionConfiguration struct {
	// FullName is the pair as written, e.g. "Debug|Any CPU".
	FullName string

	// Configuration is the part before the separator.
	Configuration string

	// Platform is the part after the separator.
	Platform string
}

// ProjectConfiguration maps one solution configuration to a project's own
// configuration and platform.
type ProjectConfiguration struct {
	// Configuration is the project-local configuration name.
	Configuration string

	// Platform is the project-local platform name.
	Platform string

	// Build reports whether the project builds under this solution
	// configuration (a Build.0 entry was declared alongside ActiveCfg).
	Build bool
}

// Warning is a recovered decode issue that did not abort the parse.
type Warning struct {
	// Line is the source line of the offending entry, 0 when unknown.
	Line int

	// Message describes what was skipped and why.
	Message string
}

// SolutionModel is the parse result: the ordered project list plus
// solution-level configuration and property data. It is read-only once
// built; each Load produces an independent model.
type SolutionModel struct {
	// FilePath is the absolute path the model was loaded from.
	FilePath string

	// SolutionDir is the directory containing the descriptor.
	SolutionDir string

	// FormatVersion is the descriptor format version (e.g. "12.00").
	FormatVersion string

	// VisualStudioVersion is the tool version that wrote the descriptor.
	VisualStudioVersion string

	// MinimumVisualStudioVersion is the minimum tool version required.
	MinimumVisualStudioVersion string

	// Projects holds every entry, folders included, in declaration order.
	// Nesting is a parent-pointer relation and never reorders this list.
	Projects []ProjectEntry

	// Configurations is the solution-level configuration|platform list.
	Configurations []SolutionConfiguration

	// ProjectConfigurations maps project GUID -> solution configuration
	// full name -> project-local mapping. A missing inner entry means the
	// project is not built for that configuration.
	ProjectConfigurations map[string]map[string]ProjectConfiguration

	// Properties holds solution-level key/value data from the
	// SolutionProperties and ExtensibilityGlobals sections.
	Properties map[string]string

	// GlobalSections preserves global sections the parser does not
	// recognize.
	GlobalSections []RawSection

	// Warnings collects recovered decode issues.
	Warnings []Warning
}

// EntryByGUID finds an entry by identifier, case-insensitively.
func (m *SolutionModel) EntryByGUID(guid string) (*ProjectEntry, bool) {
	want := strings.ToUpper(guid)
	for i := range m.Projects {
		if m.Projects[i].GUID == want {
			return &m.Projects[i], true
		}
	}
	return nil, false
}

// EntryByName finds an entry by display name, case-insensitively.
func (m *SolutionModel) EntryByName(name string) (*ProjectEntry, bool) {
	for i := range m.Projects {
		if strings.EqualFold(m.Projects[i].Name, name) {
			return &m.Projects[i], true
		}
	}
	return nil, false
}

// BuildableProjects returns the absolute paths of all buildable entries.
func (m *SolutionModel) BuildableProjects() []string {
	paths := make([]string, 0, len(m.Projects))
	for i := range m.Projects {
		if m.Projects[i].IsBuildable() {
			paths = append(paths, m.Projects[i].AbsolutePath(m.SolutionDir))
		}
	}
	return paths
}

// ConfigurationFor returns the project-local mapping for a project GUID
// and a solution configuration full name. ok is false when the project is
// absent from that configuration's build set, which is normal.
func (m *SolutionModel) ConfigurationFor(guid, solutionConfig string) (ProjectConfiguration, bool) {
	byConfig, ok := m.ProjectConfigurations[strings.ToUpper(guid)]
	if !ok {
		return ProjectConfiguration{}, false
	}
	pc, ok := byConfig[solutionConfig]
	return pc, ok
}
