package solution

import "strings"

// aspNetCompilerNamespace is the tool namespace carrying website compiler
// parameters inside a WebsiteProperties section.
const aspNetCompilerNamespace = "AspNetCompiler"

// parseWebProperties decodes configuration-scoped nested keys of the form
//
//	Debug.AspNetCompiler.VirtualPath = "/WebSite1"
//
// into one WebCompilerParameters record per build configuration name.
// Field names match case-sensitively against the eleven recognized names;
// unrecognized fields and tool namespaces are ignored. Unassigned fields
// stay empty strings.
func parseWebProperties(sec RawSection, opts ParserOptions) map[string]WebCompilerParameters {
	records := make(map[string]WebCompilerParameters)

	for _, kv := range sec.Pairs {
		parts := strings.SplitN(kv.Key, ".", 3)
		if len(parts) != 3 || parts[1] != aspNetCompilerNamespace {
			continue
		}
		configName := parts[0]
		field := parts[2]
		value := unquoteValue(kv.Value, opts.Quote)

		rec := records[configName]
		switch field {
		case "VirtualPath":
			rec.VirtualPath = value
		case "PhysicalPath":
			rec.PhysicalPath = value
		case "TargetPath":
			rec.TargetPath = value
		case "ForceOverwrite":
			rec.ForceOverwrite = value
		case "Updateable":
			rec.Updateable = value
		case "Debug":
			rec.Debug = value
		case "KeyFile":
			rec.KeyFile = value
		case "KeyContainer":
			rec.KeyContainer = value
		case "DelaySign":
			rec.DelaySign = value
		case "APTCA":
			rec.APTCA = value
		case "FixedNames":
			rec.FixedNames = value
		default:
			continue
		}
		records[configName] = rec
	}
	return records
}

// unquoteValue strips the surrounding quote characters from a section
// value and collapses doubled quotes. Unquoted values pass through
// unchanged.
func unquoteValue(s string, quote byte) string {
	if len(s) < 2 || s[0] != quote || s[len(s)-1] != quote {
		return s
	}
	body := s[1 : len(s)-1]
	qq := string([]byte{quote, quote})
	return strings.ReplaceAll(body, qq, string(quote))
}
