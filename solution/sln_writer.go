package solution

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Legacy descriptors are CRLF-terminated; the scanner accepts either.
const slnNewline = "\r\n"

// SlnWriter persists a model back to the legacy text grammar, preserving
// declaration order and declared path bytes.
type SlnWriter struct {
	opts ParserOptions
}

// NewSlnWriter creates a writer with the standard grammar settings.
func NewSlnWriter() *SlnWriter {
	return &SlnWriter{opts: DefaultParserOptions()}
}

// Save writes the model to path as legacy descriptor text.
func (w *SlnWriter) Save(path string, model *SolutionModel) error {
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

// Write emits the legacy text form of the model.
func (w *SlnWriter) Write(out io.Writer, model *SolutionModel) error {
	ew := &errWriter{w: out}

	formatVersion := model.FormatVersion
	if formatVersion == "" {
		formatVersion = "12.00"
	}
	ew.linef("")
	ew.linef("%s%s", formatHeaderPrefix, formatVersion)
	if model.VisualStudioVersion != "" {
		ew.linef("VisualStudioVersion = %s", model.VisualStudioVersion)
	}
	if model.MinimumVisualStudioVersion != "" {
		ew.linef("MinimumVisualStudioVersion = %s", model.MinimumVisualStudioVersion)
	}

	for i := range model.Projects {
		w.writeProject(ew, &model.Projects[i])
	}

	ew.linef("Global")
	w.writeSolutionConfigurations(ew, model)
	w.writeProjectConfigurations(ew, model)
	w.writeProperties(ew, model)
	w.writeNestedProjects(ew, model)
	for _, sec := range model.GlobalSections {
		w.writeGlobalSection(ew, sec)
	}
	ew.linef("EndGlobal")

	return ew.err
}

func (w *SlnWriter) writeProject(ew *errWriter, p *ProjectEntry) {
	q := func(s string) string { return w.quote(s) }
	ew.linef("Project(%s) = %s, %s, %s", q(p.TypeGUID), q(p.Name), q(p.Path), q(p.GUID))

	if len(p.WebProperties) > 0 || len(p.ProjectReferences) > 0 {
		ew.linef("\tProjectSection(%s) = preProject", sectionWebsiteProperties)
		if len(p.ProjectReferences) > 0 {
			var b strings.Builder
			for _, ref := range p.ProjectReferences {
				b.WriteString(ref.GUID)
				b.WriteByte('|')
				b.WriteString(ref.Name)
				b.WriteByte(w.opts.ListSeparator)
			}
			ew.linef("\t\t%s = %s", keyProjectReferences, q(b.String()))
		}
		for _, cfg := range sortedKeys(p.WebProperties) {
			w.writeWebParameters(ew, cfg, p.WebProperties[cfg])
		}
		ew.linef("\tEndProjectSection")
	}

	if len(p.Dependencies) > 0 {
		ew.linef("\tProjectSection(%s) = postProject", sectionProjectDependencies)
		for _, dep := range p.Dependencies {
			ew.linef("\t\t%s = %s", dep, dep)
		}
		ew.linef("\tEndProjectSection")
	}

	if len(p.Items) > 0 {
		ew.linef("\tProjectSection(%s) = preProject", sectionSolutionItems)
		for _, item := range p.Items {
			ew.linef("\t\t%s = %s", item, item)
		}
		ew.linef("\tEndProjectSection")
	}

	for _, sec := range p.Sections {
		ew.linef("\tProjectSection(%s) = %s", sec.Name, sec.Order)
		for _, kv := range sec.Pairs {
			ew.linef("\t\t%s = %s", kv.Key, kv.Value)
		}
		ew.linef("\tEndProjectSection")
	}

	ew.linef("EndProject")
}

// writeWebParameters emits the assigned fields of one configuration's
// parameter record in a fixed field order.
func (w *SlnWriter) writeWebParameters(ew *errWriter, cfg string, rec WebCompilerParameters) {
	fields := []struct {
		name  string
		value string
	}{
		{"VirtualPath", rec.VirtualPath},
		{"PhysicalPath", rec.PhysicalPath},
		{"TargetPath", rec.TargetPath},
		{"ForceOverwrite", rec.ForceOverwrite},
		{"Updateable", rec.Updateable},
		{"Debug", rec.Debug},
		{"KeyFile", rec.KeyFile},
		{"KeyContainer", rec.KeyContainer},
		{"DelaySign", rec.DelaySign},
		{"APTCA", rec.APTCA},
		{"FixedNames", rec.FixedNames},
	}
	for _, f := range fields {
		if f.value != "" {
			ew.linef("\t\t%s.%s.%s = %s", cfg, aspNetCompilerNamespace, f.name, w.quote(f.value))
		}
	}
}

func (w *SlnWriter) writeSolutionConfigurations(ew *errWriter, model *SolutionModel) {
	if len(model.Configurations) == 0 {
		return
	}
	ew.linef("\tGlobalSection(%s) = preSolution", sectionSolutionConfigurations)
	for _, cfg := range model.Configurations {
		ew.linef("\t\t%s = %s", cfg.FullName, cfg.FullName)
	}
	ew.linef("\tEndGlobalSection")
}

func (w *SlnWriter) writeProjectConfigurations(ew *errWriter, model *SolutionModel) {
	if len(model.ProjectConfigurations) == 0 {
		return
	}
	ew.linef("\tGlobalSection(%s) = postSolution", sectionProjectConfigurations)
	for _, guid := range sortedKeys(model.ProjectConfigurations) {
		byConfig := model.ProjectConfigurations[guid]
		for _, solutionCfg := range sortedKeys(byConfig) {
			pc := byConfig[solutionCfg]
			target := pc.Configuration
			if pc.Platform != "" {
				target += "|" + pc.Platform
			}
			ew.linef("\t\t%s.%s%s = %s", guid, solutionCfg, activeCfgSuffix, target)
			if pc.Build {
				ew.linef("\t\t%s.%s%s = %s", guid, solutionCfg, buildZeroSuffix, target)
			}
		}
	}
	ew.linef("\tEndGlobalSection")
}

func (w *SlnWriter) writeProperties(ew *errWriter, model *SolutionModel) {
	if len(model.Properties) == 0 {
		return
	}
	ew.linef("\tGlobalSection(%s) = preSolution", sectionSolutionProperties)
	for _, key := range sortedKeys(model.Properties) {
		ew.linef("\t\t%s = %s", key, model.Properties[key])
	}
	ew.linef("\tEndGlobalSection")
}

func (w *SlnWriter) writeNestedProjects(ew *errWriter, model *SolutionModel) {
	var nested []*ProjectEntry
	for i := range model.Projects {
		if model.Projects[i].ParentGUID != "" {
			nested = append(nested, &model.Projects[i])
		}
	}
	if len(nested) == 0 {
		return
	}
	ew.linef("\tGlobalSection(%s) = preSolution", sectionNestedProjects)
	for _, p := range nested {
		ew.linef("\t\t%s = %s", p.GUID, p.ParentGUID)
	}
	ew.linef("\tEndGlobalSection")
}

func (w *SlnWriter) writeGlobalSection(ew *errWriter, sec RawSection) {
	ew.linef("\tGlobalSection(%s) = %s", sec.Name, sec.Order)
	for _, kv := range sec.Pairs {
		if kv.Value == "" && !strings.Contains(kv.Key, "=") {
			ew.linef("\t\t%s", kv.Key)
		} else {
			ew.linef("\t\t%s = %s", kv.Key, kv.Value)
		}
	}
	ew.linef("\tEndGlobalSection")
}

// quote wraps a field in the active quote character, doubling any
// embedded quote. Backslashes pass through untouched so declared path
// bytes survive a round trip.
func (w *SlnWriter) quote(s string) string {
	q := string(w.opts.Quote)
	if strings.Contains(s, q) {
		s = strings.ReplaceAll(s, q, q+q)
	}
	return q + s + q
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// errWriter sticks on the first write error.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) linef(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format+slnNewline, args...)
}
