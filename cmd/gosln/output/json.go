package output

import (
	"encoding/json"
	"io"
)

// CurrentSchemaVersion is the schema version for all JSON outputs
const CurrentSchemaVersion = "1.0.0"

// SolutionOutput is the JSON form of an inspected solution
type SolutionOutput struct {
	SchemaVersion  string          `json:"schemaVersion"`
	Path           string          `json:"path"`
	FormatVersion  string          `json:"formatVersion"`
	Configurations []string        `json:"configurations"`
	Projects       []ProjectOutput `json:"projects"`
	Warnings       []string        `json:"warnings"`
}

// ProjectOutput is the JSON form of one project entry
type ProjectOutput struct {
	GUID         string            `json:"guid"`
	Name         string            `json:"name"`
	Path         string            `json:"path,omitempty"`
	Type         string            `json:"type"`
	Parent       string            `json:"parent,omitempty"`
	Dependencies []string          `json:"dependencies,omitempty"`
	References   []string          `json:"references,omitempty"`
	WebConfigs   map[string]string `json:"webConfigurations,omitempty"`
}

// WriteJSON writes an indented JSON object to w
func WriteJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
