package solution

import (
	"fmt"
	"strings"
)

const (
	activeCfgSuffix = ".ActiveCfg"
	buildZeroSuffix = ".Build.0"
)

// splitConfigPlatform splits "Debug|Any CPU" into its configuration and
// platform halves. A missing separator leaves the platform empty.
func splitConfigPlatform(full string) (string, string) {
	if bar := strings.IndexByte(full, '|'); bar >= 0 {
		return full[:bar], full[bar+1:]
	}
	return full, ""
}

// parseSolutionConfigurations decodes the SolutionConfigurationPlatforms
// section. Keys and values are the same pair; DESCRIPTION entries are
// editor metadata and skipped.
func parseSolutionConfigurations(sec RawSection) []SolutionConfiguration {
	var configs []SolutionConfiguration
	for _, kv := range sec.Pairs {
		if strings.Contains(kv.Key, "DESCRIPTION") {
			continue
		}
		full := strings.TrimSpace(kv.Key)
		if full == "" {
			continue
		}
		cfg, plat := splitConfigPlatform(full)
		configs = append(configs, SolutionConfiguration{
			FullName:      full,
			Configuration: cfg,
			Platform:      plat,
		})
	}
	return configs
}

// parseProjectConfigurations decodes the ProjectConfigurationPlatforms
// section into the per-project mapping table. Keys look like
//
//	{GUID}.Debug|Any CPU.ActiveCfg = Debug|Any CPU
//	{GUID}.Debug|Any CPU.Build.0   = Debug|Any CPU
//
// An ActiveCfg entry with no matching Build.0 maps the project but marks
// it not buildable for that configuration. A project with neither entry is
// silently absent from that configuration's build set.
func parseProjectConfigurations(sec RawSection, opts ParserOptions, warns *[]Warning) map[string]map[string]ProjectConfiguration {
	table := make(map[string]map[string]ProjectConfiguration)

	set := func(guid, solutionCfg string, update func(*ProjectConfiguration)) {
		byConfig, ok := table[guid]
		if !ok {
			byConfig = make(map[string]ProjectConfiguration)
			table[guid] = byConfig
		}
		pc := byConfig[solutionCfg]
		update(&pc)
		byConfig[solutionCfg] = pc
	}

	for _, kv := range sec.Pairs {
		key := strings.TrimSpace(kv.Key)

		var suffix string
		switch {
		case strings.HasSuffix(key, activeCfgSuffix):
			suffix = activeCfgSuffix
		case strings.HasSuffix(key, buildZeroSuffix):
			suffix = buildZeroSuffix
		default:
			// Deploy.0 and other qualifiers are not part of the build set.
			continue
		}

		key = key[:len(key)-len(suffix)]
		dot := strings.IndexByte(key, '.')
		if dot < 0 {
			warn(warns, opts, kv.Line, fmt.Sprintf("skipping malformed configuration key %q", kv.Key))
			continue
		}
		guid, ok := canonicalGUID(key[:dot])
		if !ok {
			warn(warns, opts, kv.Line, fmt.Sprintf("skipping configuration entry with malformed identifier %q", key[:dot]))
			continue
		}
		solutionCfg := key[dot+1:]

		if suffix == activeCfgSuffix {
			cfg, plat := splitConfigPlatform(strings.TrimSpace(kv.Value))
			set(guid, solutionCfg, func(pc *ProjectConfiguration) {
				pc.Configuration = cfg
				pc.Platform = plat
			})
		} else {
			set(guid, solutionCfg, func(pc *ProjectConfiguration) {
				pc.Build = true
			})
		}
	}
	return table
}
