package config

// TaxonomyConfig mirrors the optional YAML taxonomy override file. Each
// section is an ordered list of rules; order in the file is evaluation
// order. Empty sections keep the built-in defaults.
type TaxonomyConfig struct {
	ContentTypes []RuleConfig `yaml:"content_types"`
	Domains      []RuleConfig `yaml:"domains"`
	Certainties  []RuleConfig `yaml:"certainties"`
	Impacts      []RuleConfig `yaml:"impacts"`
	Tags         []RuleConfig `yaml:"tags"`
}

// RuleConfig is one (label, keywords) rule.
type RuleConfig struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}
