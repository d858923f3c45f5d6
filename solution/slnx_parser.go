package solution

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// SlnxParser opens the structured XML descriptor format and produces the
// same logical model as the legacy pipeline.
type SlnxParser struct{}

// NewSlnxParser creates a new structured-format parser.
func NewSlnxParser() *SlnxParser {
	return &SlnxParser{}
}

// CanParse checks if this parser supports the given file
func (p *SlnxParser) CanParse(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".slnx"
}

// slnxDocument is the root element of the structured format.
type slnxDocument struct {
	XMLName    xml.Name        `xml:"Solution"`
	Properties []slnxProperty  `xml:"Properties>Property"`
	BuildTypes []slnxBuildType `xml:"Configurations>BuildType"`
	Folders    []slnxFolder    `xml:"Folder"`
	Projects   []slnxProject   `xml:"Project"`
}

type slnxProperty struct {
	Name  string `xml:"Name,attr"`
	Value string `xml:"Value,attr"`
}

type slnxBuildType struct {
	Name string `xml:"Name,attr"`
}

type slnxFolder struct {
	Name     string        `xml:"Name,attr"`
	ID       string        `xml:"Id,attr,omitempty"`
	Files    []slnxFile    `xml:"File"`
	Folders  []slnxFolder  `xml:"Folder"`
	Projects []slnxProject `xml:"Project"`
}

type slnxFile struct {
	Path string `xml:"Path,attr"`
}

type slnxProject struct {
	Path           string                 `xml:"Path,attr"`
	Name           string                 `xml:"Name,attr,omitempty"`
	ID             string                 `xml:"Id,attr,omitempty"`
	Type           string                 `xml:"Type,attr,omitempty"`
	Dependencies   []slnxBuildDependency  `xml:"BuildDependency"`
	References     []slnxProjectReference `xml:"ProjectReference"`
	Configurations []slnxConfiguration    `xml:"Configuration"`
	Web            []slnxWebProperties    `xml:"WebProperties"`
}

type slnxBuildDependency struct {
	Project string `xml:"Project,attr"`
}

type slnxProjectReference struct {
	Project string `xml:"Project,attr"`
	Name    string `xml:"Name,attr,omitempty"`
}

type slnxConfiguration struct {
	Solution string `xml:"Solution,attr"`
	Project  string `xml:"Project,attr"`
	Build    bool   `xml:"Build,attr"`
}

type slnxWebProperties struct {
	Configuration  string `xml:"Configuration,attr"`
	VirtualPath    string `xml:"VirtualPath,attr,omitempty"`
	PhysicalPath   string `xml:"PhysicalPath,attr,omitempty"`
	TargetPath     string `xml:"TargetPath,attr,omitempty"`
	ForceOverwrite string `xml:"ForceOverwrite,attr,omitempty"`
	Updateable     string `xml:"Updateable,attr,omitempty"`
	Debug          string `xml:"Debug,attr,omitempty"`
	KeyFile        string `xml:"KeyFile,attr,omitempty"`
	KeyContainer   string `xml:"KeyContainer,attr,omitempty"`
	DelaySign      string `xml:"DelaySign,attr,omitempty"`
	APTCA          string `xml:"APTCA,attr,omitempty"`
	FixedNames     string `xml:"FixedNames,attr,omitempty"`
}

// slnxIDNamespace seeds the stable identifiers generated for entries that
// declare none. Repeated loads of the same file agree.
var slnxIDNamespace = uuid.MustParse("8f2b6f04-2a67-4e35-9d23-1c6a9f5d1e77")

// Parse reads and parses a structured descriptor file.
func (p *SlnxParser) Parse(path string) (*SolutionModel, error) {
	if !p.CanParse(path) {
		return nil, &ParseError{FilePath: path, Message: "not a .slnx file"}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open solution file: %w", err)
	}
	defer func() { _ = file.Close() }()

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	decoder := xml.NewDecoder(decodeReader(file))
	var doc slnxDocument
	if err := decoder.Decode(&doc); err != nil {
		if syntaxErr, ok := err.(*xml.SyntaxError); ok {
			return nil, &ParseError{
				FilePath: absPath,
				Line:     syntaxErr.Line,
				Message:  "XML syntax error: " + syntaxErr.Msg,
			}
		}
		return nil, fmt.Errorf("cannot decode structured solution: %w", err)
	}

	model := &SolutionModel{
		FilePath:              absPath,
		SolutionDir:           filepath.Dir(absPath),
		FormatVersion:         "12.00",
		ProjectConfigurations: make(map[string]map[string]ProjectConfiguration),
		Properties:            make(map[string]string),
	}

	for _, prop := range doc.Properties {
		switch prop.Name {
		case "VisualStudioVersion":
			model.VisualStudioVersion = prop.Value
		case "MinimumVisualStudioVersion":
			model.MinimumVisualStudioVersion = prop.Value
		case "FormatVersion":
			model.FormatVersion = prop.Value
		default:
			model.Properties[prop.Name] = prop.Value
		}
	}

	for _, bt := range doc.BuildTypes {
		cfg, plat := splitConfigPlatform(bt.Name)
		model.Configurations = append(model.Configurations, SolutionConfiguration{
			FullName:      bt.Name,
			Configuration: cfg,
			Platform:      plat,
		})
	}

	for i := range doc.Folders {
		if err := p.addFolder(&doc.Folders[i], model, "", ""); err != nil {
			return nil, err
		}
	}
	for i := range doc.Projects {
		if err := p.addProject(&doc.Projects[i], model, ""); err != nil {
			return nil, err
		}
	}

	if err := checkNestingAcyclic(model); err != nil {
		return nil, err
	}
	return model, nil
}

// addFolder appends a folder entry and recurses into its children.
// namePath tracks the virtual folder path for identifier generation.
func (p *SlnxParser) addFolder(folder *slnxFolder, model *SolutionModel, parentGUID, namePath string) error {
	fullName := namePath + "/" + folder.Name

	guid, err := p.entryID(folder.ID, "folder:"+fullName, model)
	if err != nil {
		return err
	}

	entry := ProjectEntry{
		GUID:       guid,
		Name:       folder.Name,
		Path:       folder.Name,
		TypeGUID:   ProjectTypeSolutionFolder,
		Type:       TypeSolutionFolder,
		ParentGUID: parentGUID,
	}
	for _, f := range folder.Files {
		entry.Items = append(entry.Items, f.Path)
	}
	model.Projects = append(model.Projects, entry)

	for i := range folder.Projects {
		if err := p.addProject(&folder.Projects[i], model, guid); err != nil {
			return err
		}
	}
	for i := range folder.Folders {
		if err := p.addFolder(&folder.Folders[i], model, guid, fullName); err != nil {
			return err
		}
	}
	return nil
}

// addProject converts one structured project element into a model entry.
func (p *SlnxParser) addProject(proj *slnxProject, model *SolutionModel, parentGUID string) error {
	guid, err := p.entryID(proj.ID, "project:"+proj.Path, model)
	if err != nil {
		return err
	}

	name := proj.Name
	if name == "" {
		base := filepath.Base(NormalizePath(proj.Path))
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	typeGUID := proj.Type
	if typeGUID == "" {
		typeGUID = projectTypeFromPath(proj.Path)
	} else if canon, ok := canonicalGUID(typeGUID); ok {
		typeGUID = canon
	}

	entry := ProjectEntry{
		GUID:       guid,
		Name:       name,
		Path:       proj.Path,
		TypeGUID:   typeGUID,
		Type:       ClassifyProjectType(typeGUID),
		ParentGUID: parentGUID,
	}

	for _, dep := range proj.Dependencies {
		canon, ok := canonicalGUID(dep.Project)
		if !ok {
			model.Warnings = append(model.Warnings, Warning{
				Message: fmt.Sprintf("skipping malformed build dependency %q", dep.Project),
			})
			continue
		}
		entry.Dependencies = append(entry.Dependencies, canon)
	}
	for _, ref := range proj.References {
		canon, ok := canonicalGUID(ref.Project)
		if !ok {
			model.Warnings = append(model.Warnings, Warning{
				Message: fmt.Sprintf("skipping malformed project reference %q", ref.Project),
			})
			continue
		}
		entry.ProjectReferences = append(entry.ProjectReferences, ProjectReference{GUID: canon, Name: ref.Name})
	}

	for _, web := range proj.Web {
		if entry.WebProperties == nil {
			entry.WebProperties = make(map[string]WebCompilerParameters)
		}
		entry.WebProperties[web.Configuration] = WebCompilerParameters{
			VirtualPath:    web.VirtualPath,
			PhysicalPath:   web.PhysicalPath,
			TargetPath:     web.TargetPath,
			ForceOverwrite: web.ForceOverwrite,
			Updateable:     web.Updateable,
			Debug:          web.Debug,
			KeyFile:        web.KeyFile,
			KeyContainer:   web.KeyContainer,
			DelaySign:      web.DelaySign,
			APTCA:          web.APTCA,
			FixedNames:     web.FixedNames,
		}
	}

	if len(proj.Configurations) > 0 {
		byConfig := make(map[string]ProjectConfiguration, len(proj.Configurations))
		for _, cfg := range proj.Configurations {
			pcfg, pplat := splitConfigPlatform(cfg.Project)
			byConfig[cfg.Solution] = ProjectConfiguration{
				Configuration: pcfg,
				Platform:      pplat,
				Build:         cfg.Build,
			}
		}
		model.ProjectConfigurations[guid] = byConfig
	}

	model.Projects = append(model.Projects, entry)
	return nil
}

// entryID canonicalizes a declared identifier or derives a stable one from
// the entry's path when none was declared.
func (p *SlnxParser) entryID(declared, seed string, model *SolutionModel) (string, error) {
	var guid string
	if declared != "" {
		canon, ok := canonicalGUID(declared)
		if !ok {
			return "", fmt.Errorf("invalid entry identifier %q in structured solution", declared)
		}
		guid = canon
	} else {
		id := uuid.NewSHA1(slnxIDNamespace, []byte(seed))
		guid = "{" + strings.ToUpper(id.String()) + "}"
	}
	if _, dup := model.EntryByGUID(guid); dup {
		return "", modelError(ErrDuplicateProject, guid)
	}
	return guid, nil
}

// projectTypeFromPath infers a type token from the project file extension
// when the structured form declares none.
func projectTypeFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(NormalizePath(path))) {
	case ".csproj":
		return ProjectTypeCSProjectSDK
	case ".vbproj":
		return ProjectTypeVBProject
	case ".fsproj":
		return ProjectTypeFSProject
	case ".vcxproj":
		return ProjectTypeVCProject
	case "":
		// Website projects are referenced by bare directory path.
		return ProjectTypeWebSite
	default:
		return ProjectTypeCSProjectSDK
	}
}
