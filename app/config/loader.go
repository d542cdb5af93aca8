package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/openmemo/memosync/app/memory"
)

// LoadTaxonomies returns the classification rule tables, overriding the
// built-in defaults section by section from the YAML file at path. An empty
// path means defaults only.
func LoadTaxonomies(path string) (memory.Taxonomies, error) {
	taxonomies := memory.DefaultTaxonomies()
	if path == "" {
		return taxonomies, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return taxonomies, fmt.Errorf("failed to read taxonomy file: %w", err)
	}

	var cfg TaxonomyConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return taxonomies, fmt.Errorf("failed to parse taxonomy YAML: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return taxonomies, fmt.Errorf("invalid taxonomy file %s: %w", path, err)
	}

	apply(&taxonomies.ContentTypes, cfg.ContentTypes)
	apply(&taxonomies.Domains, cfg.Domains)
	apply(&taxonomies.Certainties, cfg.Certainties)
	apply(&taxonomies.Impacts, cfg.Impacts)
	apply(&taxonomies.Tags, cfg.Tags)

	slog.Info("Loaded taxonomy overrides", "path", path)
	return taxonomies, nil
}

func apply(target *[]memory.Rule, rules []RuleConfig) {
	if len(rules) == 0 {
		return
	}

	converted := make([]memory.Rule, 0, len(rules))
	for _, rule := range rules {
		converted = append(converted, memory.Rule{Label: rule.Label, Keywords: rule.Keywords})
	}
	*target = converted
}

func validate(cfg *TaxonomyConfig) error {
	sections := map[string][]RuleConfig{
		"content_types": cfg.ContentTypes,
		"domains":       cfg.Domains,
		"certainties":   cfg.Certainties,
		"impacts":       cfg.Impacts,
		"tags":          cfg.Tags,
	}

	for name, rules := range sections {
		for i, rule := range rules {
			if rule.Label == "" {
				return fmt.Errorf("%s: rule at index %d has no label", name, i)
			}
			if len(rule.Keywords) == 0 {
				return fmt.Errorf("%s: rule %q has no keywords", name, rule.Label)
			}
			for _, keyword := range rule.Keywords {
				if keyword == "" {
					return fmt.Errorf("%s: rule %q has an empty keyword", name, rule.Label)
				}
			}
		}
	}

	return nil
}
