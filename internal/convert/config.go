package convert

import (
	"bytes"
	"errors"
	"io"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"jstest2objc/internal/renderer"
)

// fileConfig mirrors the YAML file. Pointer fields distinguish "absent" from
// an explicit false.
type fileConfig struct {
	Variables        []string `yaml:"variables"`
	Assertions       *bool    `yaml:"assertions"`
	Numbers          *string  `yaml:"numbers"`
	NormalizeHelpers *bool    `yaml:"normalize_helpers"`
}

var variableNamePattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// LoadRules reads a YAML config and overlays it on DefaultRules. An empty
// path returns the defaults.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, NewExitError("JTO-107-1", path).WithErr(err)
	}
	return applyConfig(rules, path, data)
}

func applyConfig(rules Rules, path string, data []byte) (Rules, error) {
	var cfg fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Rules{}, NewExitError("JTO-107-2", path).WithErr(err)
	}

	if cfg.Variables != nil {
		for _, name := range cfg.Variables {
			if !variableNamePattern.MatchString(name) {
				return Rules{}, NewExitError("JTO-107-4", name)
			}
		}
		rules.Variables = append([]string(nil), cfg.Variables...)
	}
	if cfg.Assertions != nil {
		rules.Assertions = *cfg.Assertions
	}
	if cfg.Numbers != nil {
		policy, err := renderer.ParseNumberPolicy(*cfg.Numbers)
		if err != nil {
			return Rules{}, NewExitError("JTO-107-3", *cfg.Numbers).WithErr(err)
		}
		rules.Numbers = policy
	}
	if cfg.NormalizeHelpers != nil {
		rules.NormalizeHelpers = *cfg.NormalizeHelpers
	}
	return rules, nil
}
