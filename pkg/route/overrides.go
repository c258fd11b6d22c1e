package route

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// aliasOverrideFile is the on-disk shape for LoadAliasOverrides: a flat map
// of free-form alias to canonical route name, e.g. "per os: Orally".
type aliasOverrideFile map[string]string

// LoadAliasOverrides extends the alias table at runtime from a YAML document
// of the form `alias: CanonicalRouteName`. Every canonical name referenced
// must already be registered; the whole load is rejected if any entry
// references an unknown canonical route, so a bad override file never
// partially applies.
func LoadAliasOverrides(yamlData []byte) error {
	var overrides aliasOverrideFile
	if err := yaml.Unmarshal(yamlData, &overrides); err != nil {
		return fmt.Errorf("route: parsing alias overrides: %w", err)
	}

	for alias, name := range overrides {
		if _, ok := canonical[name]; !ok {
			return fmt.Errorf("route: alias override %q references unknown canonical route %q", alias, name)
		}
	}
	for alias, name := range overrides {
		_ = RegisterAlias(alias, name)
	}
	return nil
}
