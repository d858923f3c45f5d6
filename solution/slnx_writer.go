package solution

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// SlnxWriter persists a model to the structured XML descriptor format.
type SlnxWriter struct{}

// NewSlnxWriter creates a new structured-format writer.
func NewSlnxWriter() *SlnxWriter {
	return &SlnxWriter{}
}

// Save writes the model to path as a structured descriptor.
func (w *SlnxWriter) Save(path string, model *SolutionModel) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create solution file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := w.Write(f, model); err != nil {
		return err
	}
	return f.Close()
}

// Write emits the structured XML form of the model.
func (w *SlnxWriter) Write(out io.Writer, model *SolutionModel) error {
	doc := w.buildDocument(model)

	if _, err := io.WriteString(out, xml.Header); err != nil {
		return fmt.Errorf("cannot write structured solution: %w", err)
	}
	enc := xml.NewEncoder(out)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("cannot encode structured solution: %w", err)
	}
	return enc.Close()
}

// buildDocument nests the flat entry list back into folder containers.
// Parent pointers are resolved ahead of assembly, so each entry lands
// inside its folder element; declaration order is kept within each
// container.
func (w *SlnxWriter) buildDocument(model *SolutionModel) *slnxDocument {
	doc := &slnxDocument{}

	if model.VisualStudioVersion != "" {
		doc.Properties = append(doc.Properties, slnxProperty{Name: "VisualStudioVersion", Value: model.VisualStudioVersion})
	}
	if model.MinimumVisualStudioVersion != "" {
		doc.Properties = append(doc.Properties, slnxProperty{Name: "MinimumVisualStudioVersion", Value: model.MinimumVisualStudioVersion})
	}
	for _, key := range sortedKeys(model.Properties) {
		doc.Properties = append(doc.Properties, slnxProperty{Name: key, Value: model.Properties[key]})
	}

	for _, cfg := range model.Configurations {
		doc.BuildTypes = append(doc.BuildTypes, slnxBuildType{Name: cfg.FullName})
	}

	// Assemble the folder tree with pointers first; slnxFolder values are
	// materialized only once the tree is complete.
	nodes := make(map[string]*folderNode, len(model.Projects))
	for i := range model.Projects {
		entry := &model.Projects[i]
		if entry.Type != TypeSolutionFolder {
			continue
		}
		node := &folderNode{name: entry.Name, id: entry.GUID}
		for _, item := range entry.Items {
			node.files = append(node.files, slnxFile{Path: item})
		}
		nodes[entry.GUID] = node
	}

	var topFolders []*folderNode
	for i := range model.Projects {
		entry := &model.Projects[i]
		if entry.Type == TypeSolutionFolder {
			node := nodes[entry.GUID]
			if parent, ok := nodes[entry.ParentGUID]; ok {
				parent.folders = append(parent.folders, node)
			} else {
				topFolders = append(topFolders, node)
			}
			continue
		}
		proj := w.buildProject(entry, model)
		if parent, ok := nodes[entry.ParentGUID]; ok {
			parent.projects = append(parent.projects, proj)
		} else {
			doc.Projects = append(doc.Projects, proj)
		}
	}

	for _, node := range topFolders {
		doc.Folders = append(doc.Folders, node.materialize())
	}

	return doc
}

// folderNode is the mutable form of a folder element during assembly.
type folderNode struct {
	name     string
	id       string
	files    []slnxFile
	folders  []*folderNode
	projects []slnxProject
}

func (n *folderNode) materialize() slnxFolder {
	folder := slnxFolder{
		Name:     n.name,
		ID:       n.id,
		Files:    n.files,
		Projects: n.projects,
	}
	for _, child := range n.folders {
		folder.Folders = append(folder.Folders, child.materialize())
	}
	return folder
}

func (w *SlnxWriter) buildProject(entry *ProjectEntry, model *SolutionModel) slnxProject {
	proj := slnxProject{
		Path: entry.Path,
		Name: entry.Name,
		ID:   entry.GUID,
		Type: entry.TypeGUID,
	}

	for _, dep := range entry.Dependencies {
		proj.Dependencies = append(proj.Dependencies, slnxBuildDependency{Project: dep})
	}
	for _, ref := range entry.ProjectReferences {
		proj.References = append(proj.References, slnxProjectReference{Project: ref.GUID, Name: ref.Name})
	}

	if byConfig, ok := model.ProjectConfigurations[entry.GUID]; ok {
		for _, solutionCfg := range sortedKeys(byConfig) {
			pc := byConfig[solutionCfg]
			target := pc.Configuration
			if pc.Platform != "" {
				target += "|" + pc.Platform
			}
			proj.Configurations = append(proj.Configurations, slnxConfiguration{
				Solution: solutionCfg,
				Project:  target,
				Build:    pc.Build,
			})
		}
	}

	for _, cfg := range sortedKeys(entry.WebProperties) {
		rec := entry.WebProperties[cfg]
		proj.Web = append(proj.Web, slnxWebProperties{
			Configuration:  cfg,
			VirtualPath:    rec.VirtualPath,
			PhysicalPath:   rec.PhysicalPath,
			TargetPath:     rec.TargetPath,
			ForceOverwrite: rec.ForceOverwrite,
			Updateable:     rec.Updateable,
			Debug:          rec.Debug,
			KeyFile:        rec.KeyFile,
			KeyContainer:   rec.KeyContainer,
			DelaySign:      rec.DelaySign,
			APTCA:          rec.APTCA,
			FixedNames:     rec.FixedNames,
		})
	}

	return proj
}
