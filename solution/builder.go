package solution

import (
	"fmt"
	"path/filepath"
)

// Well-known section names. Anything else is preserved opaquely.
const (
	sectionProjectDependencies = "ProjectDependencies"
	sectionWebsiteProperties   = "WebsiteProperties"
	sectionSolutionItems       = "SolutionItems"

	sectionSolutionConfigurations = "SolutionConfigurationPlatforms"
	sectionProjectConfigurations  = "ProjectConfigurationPlatforms"
	sectionNestedProjects         = "NestedProjects"
	sectionSolutionProperties     = "SolutionProperties"
	sectionExtensibilityGlobals   = "ExtensibilityGlobals"

	// keyProjectReferences carries the website reference list inside a
	// WebsiteProperties section.
	keyProjectReferences = "ProjectReferences"
)

// buildModel assembles scanned blocks into the finished model: entries in
// declaration order, nesting resolved to parent pointers, configuration
// table built, unknown data preserved.
func buildModel(doc *rawDocument, path string, opts ParserOptions) (*SolutionModel, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	model := &SolutionModel{
		FilePath:              absPath,
		SolutionDir:           filepath.Dir(absPath),
		FormatVersion:         doc.formatVersion,
		Projects:              make([]ProjectEntry, 0, len(doc.projects)),
		ProjectConfigurations: make(map[string]map[string]ProjectConfiguration),
		Properties:            make(map[string]string),
	}

	for _, kv := range doc.headerValues {
		switch kv.Key {
		case "VisualStudioVersion":
			model.VisualStudioVersion = kv.Value
		case "MinimumVisualStudioVersion":
			model.MinimumVisualStudioVersion = kv.Value
		}
	}

	seen := make(map[string]int, len(doc.projects))
	for _, raw := range doc.projects {
		entry, err := buildEntry(raw, absPath, opts, &model.Warnings)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[entry.GUID]; dup {
			return nil, fmt.Errorf("%w: %s declared at lines %d and %d",
				ErrDuplicateProject, entry.GUID, prev, raw.line)
		}
		seen[entry.GUID] = raw.line
		model.Projects = append(model.Projects, entry)
	}

	for _, sec := range doc.globalSections {
		switch sec.Name {
		case sectionSolutionConfigurations:
			model.Configurations = parseSolutionConfigurations(sec)
		case sectionProjectConfigurations:
			model.ProjectConfigurations = parseProjectConfigurations(sec, opts, &model.Warnings)
		case sectionNestedProjects:
			if err := resolveNesting(sec, model, opts); err != nil {
				return nil, err
			}
		case sectionSolutionProperties, sectionExtensibilityGlobals:
			for _, kv := range sec.Pairs {
				model.Properties[kv.Key] = kv.Value
			}
		default:
			model.GlobalSections = append(model.GlobalSections, sec)
		}
	}

	if err := checkNestingAcyclic(model); err != nil {
		return nil, err
	}

	return model, nil
}

// buildEntry converts one raw project block into a ProjectEntry.
func buildEntry(raw rawProject, path string, opts ParserOptions, warns *[]Warning) (ProjectEntry, error) {
	typeGUID, ok := canonicalGUID(raw.typeGUID)
	if !ok {
		// An unparseable type token is still classified, not rejected.
		typeGUID = raw.typeGUID
	}
	guid, ok := canonicalGUID(raw.guid)
	if !ok {
		return ProjectEntry{}, &ParseError{
			FilePath: path,
			Line:     raw.line,
			Token:    raw.guid,
			Message:  "project header identifier is not a GUID",
		}
	}

	entry := ProjectEntry{
		GUID:     guid,
		Name:     raw.name,
		Path:     raw.path,
		TypeGUID: typeGUID,
		Type:     ClassifyProjectType(typeGUID),
		Line:     raw.line,
	}

	for _, sec := range raw.sections {
		switch sec.Name {
		case sectionProjectDependencies:
			entry.Dependencies = append(entry.Dependencies,
				parseDependencySection(sec, opts, warns)...)
		case sectionWebsiteProperties:
			entry.WebProperties = parseWebProperties(sec, opts)
			if refs := sec.Get(keyProjectReferences); refs != "" {
				entry.ProjectReferences = append(entry.ProjectReferences,
					parseReferenceList(unquoteValue(refs, opts.Quote), sec.Line, opts, warns)...)
			}
		case sectionSolutionItems:
			for _, kv := range sec.Pairs {
				if kv.Key != "" {
					entry.Items = append(entry.Items, kv.Key)
				}
			}
		default:
			entry.Sections = append(entry.Sections, sec)
		}
	}
	return entry, nil
}

// resolveNesting applies a NestedProjects section, mapping child
// identifiers to parent folders. An unresolved or non-folder parent is a
// model-construction error, not silently dropped.
func resolveNesting(sec RawSection, model *SolutionModel, opts ParserOptions) error {
	for _, kv := range sec.Pairs {
		child, ok := canonicalGUID(kv.Key)
		if !ok {
			return modelError(ErrUnresolvedParent, fmt.Sprintf("malformed child identifier %q", kv.Key))
		}
		parent, ok := canonicalGUID(kv.Value)
		if !ok {
			return modelError(ErrUnresolvedParent, fmt.Sprintf("malformed parent identifier %q", kv.Value))
		}

		parentEntry, found := model.EntryByGUID(parent)
		if !found || parentEntry.Type != TypeSolutionFolder {
			return modelError(ErrUnresolvedParent, parent)
		}
		childEntry, found := model.EntryByGUID(child)
		if !found {
			return modelError(ErrUnresolvedParent, fmt.Sprintf("nested child %s not declared", child))
		}
		childEntry.ParentGUID = parent
	}
	return nil
}

// checkNestingAcyclic walks every parent chain. Chains are identifier
// references into the flat entry list, so a cycle is a data error to catch
// here, not a runtime hazard later.
func checkNestingAcyclic(model *SolutionModel) error {
	index := make(map[string]int, len(model.Projects))
	for i := range model.Projects {
		index[model.Projects[i].GUID] = i
	}

	for i := range model.Projects {
		seen := map[string]bool{}
		cur := model.Projects[i].GUID
		for cur != "" {
			if seen[cur] {
				return modelError(ErrCyclicNesting, cur)
			}
			seen[cur] = true
			j, ok := index[cur]
			if !ok {
				return modelError(ErrUnresolvedParent, cur)
			}
			cur = model.Projects[j].ParentGUID
		}
	}
	return nil
}
