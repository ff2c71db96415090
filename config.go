package views

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML shape accepted by LoadConfigFile. All fields are
// optional; zero values fall back to the option defaults.
type FileConfig struct {
	Name                   string         `yaml:"name"`
	ImportLabel            string         `yaml:"import_label"`
	TemplateDir            string         `yaml:"template_dir"`
	Extension              string         `yaml:"extension"`
	AutoReload             bool           `yaml:"auto_reload"`
	ExplainTemplateLoading bool           `yaml:"explain_template_loading"`
	DocsURL                string         `yaml:"docs_url"`
	Globals                map[string]any `yaml:"globals"`
}

// OptionFns converts the file configuration into option functions, so it can
// be combined with programmatic options (later options win).
func (c FileConfig) OptionFns() []OptionFn {
	var fns []OptionFn
	if c.Name != "" {
		fns = append(fns, WithName(c.Name))
	}
	if c.ImportLabel != "" {
		fns = append(fns, WithImportLabel(c.ImportLabel))
	}
	if c.TemplateDir != "" {
		fns = append(fns, WithTemplateDir(c.TemplateDir))
	}
	if c.Extension != "" {
		fns = append(fns, WithExtension(c.Extension))
	}
	if c.AutoReload {
		fns = append(fns, WithAutoReload(true))
	}
	if c.ExplainTemplateLoading {
		fns = append(fns, WithExplainTemplateLoading(true))
	}
	if c.DocsURL != "" {
		fns = append(fns, WithDocsURL(c.DocsURL))
	}
	if len(c.Globals) > 0 {
		fns = append(fns, WithGlobals(c.Globals))
	}
	return fns
}

// LoadConfigFile reads a YAML configuration file into option functions.
func LoadConfigFile(path string) ([]OptionFn, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("views: read config: %w", err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("views: parse config %q: %w", path, err)
	}
	return cfg.OptionFns(), nil
}
