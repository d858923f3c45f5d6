package solution

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// canonicalGUID validates a "{...}" identifier token and returns its
// canonical uppercase form. ok is false for anything that does not contain
// a valid GUID.
func canonicalGUID(token string) (string, bool) {
	s := strings.TrimSpace(token)
	if len(s) < 2 || s[0] != '{' || s[len(s)-1] != '}' {
		return "", false
	}
	id, err := uuid.Parse(s[1 : len(s)-1])
	if err != nil {
		return "", false
	}
	return "{" + strings.ToUpper(id.String()) + "}", true
}

// parseReferenceList decodes a delimited website reference list such as
//
//	{GUID}|Lib1.dll;{GUID}|Lib2.dll;
//
// into ordered identifier+name pairs. Malformed entries are skipped with a
// recorded warning; one bad reference must not invalidate the solution.
func parseReferenceList(value string, line int, opts ParserOptions, warns *[]Warning) []ProjectReference {
	var refs []ProjectReference
	for _, entry := range strings.Split(value, string(opts.ListSeparator)) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		guidPart := entry
		namePart := ""
		if bar := strings.IndexByte(entry, '|'); bar >= 0 {
			guidPart = entry[:bar]
			namePart = strings.TrimSpace(entry[bar+1:])
		}
		guid, ok := canonicalGUID(guidPart)
		if !ok {
			warn(warns, opts, line, fmt.Sprintf("skipping malformed project reference %q", entry))
			continue
		}
		refs = append(refs, ProjectReference{GUID: guid, Name: namePart})
	}
	return refs
}

// parseDependencySection decodes a ProjectDependencies section into an
// ordered identifier list. Duplicates are preserved; the value side of
// each pair is redundant and discarded.
func parseDependencySection(sec RawSection, opts ParserOptions, warns *[]Warning) []string {
	var deps []string
	for _, kv := range sec.Pairs {
		guid, ok := canonicalGUID(kv.Key)
		if !ok {
			warn(warns, opts, kv.Line, fmt.Sprintf("skipping malformed dependency entry %q", kv.Key))
			continue
		}
		deps = append(deps, guid)
	}
	return deps
}

func warn(warns *[]Warning, opts ParserOptions, line int, msg string) {
	*warns = append(*warns, Warning{Line: line, Message: msg})
	opts.Logger.Warn("Recovered descriptor issue at line {Line}: {Issue}", line, msg)
}
