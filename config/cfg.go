package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	// Property is a single declaration produced by a template utility.
	Property struct {
		Name     string
		Template string
	}

	// Properties keeps declarations in the order they were written in the
	// configuration file.
	Properties []Property

	StylingConfig struct {
		Media        map[string]string            `yaml:"media" validate:"dive,keys,required,endkeys,required"`
		ThemeMap     map[string]string            `yaml:"theme_map" validate:"dive,keys,required,excludes=-,endkeys,required"`
		Theme        map[string]map[string]string `yaml:"theme" validate:"dive,keys,required,endkeys,dive,keys,required,endkeys,required"`
		EmitTheme    bool                         `yaml:"emit_theme"`
		RootSelector string                       `yaml:"root_selector" validate:"required_if=EmitTheme true"`
		Utilities    map[string]Properties        `yaml:"utilities" validate:"dive,keys,required,endkeys,min=1"`
		Builtins     map[string]string            `yaml:"builtins" validate:"dive,keys,required,endkeys,oneof=marginX marginY paddingX paddingY size linearGradient"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Styling   StylingConfig  `yaml:"styling"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

// UnmarshalYAML reads mapping of property names to templates preserving its
// order.
func (p *Properties) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: utility must be a mapping of properties to templates", node.Line)
	}
	props := make(Properties, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: template for '%s' must be a scalar", v.Line, k.Value)
		}
		props = append(props, Property{Name: k.Value, Template: v.Value})
	}
	*p = props
	return nil
}

// MarshalYAML writes properties back as an ordered mapping.
func (p Properties) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, prop := range p {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: prop.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Value: prop.Template, Style: yaml.DoubleQuotedStyle},
		)
	}
	return node, nil
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// Only fields defined above are allowed, so plain yaml.Unmarshal will not do
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration expands embedded configuration template to get defaults,
// puts values from the file at the given path (if any) on top of them and
// validates the result.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare returns configuration expanded from embedded template.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
