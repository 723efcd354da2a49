// Package catalog loads rule catalogs from YAML and compiles them into
// review rules.
package catalog

import (
	"embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/dshills/cppscore/internal/review"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// DefaultName is the builtin catalog used when no rules file is given.
const DefaultName = "default"

// File is a rule catalog document.
type File struct {
	Name        string     `yaml:"name"`
	Version     int        `yaml:"version"`
	Description string     `yaml:"description"`
	Rules       []RuleSpec `yaml:"rules"`
}

// RuleSpec declares a single rule. All conditions in When must hold for the
// rule to fire.
type RuleSpec struct {
	ID            string            `yaml:"id"`
	Severity      string            `yaml:"severity"`
	Penalty       int               `yaml:"penalty"`
	Icon          string            `yaml:"icon"`
	Text          string            `yaml:"text"`
	CompilerNotes map[string]string `yaml:"compiler_notes"`
	Exclusive     string            `yaml:"exclusive"`
	When          []Condition       `yaml:"when"`
}

// Condition is one test over the snippet. Exactly one field must be set.
type Condition struct {
	Contains     string      `yaml:"contains"`
	Absent       string      `yaml:"absent"`
	AnyOf        []string    `yaml:"any_of"`
	Regex        string      `yaml:"regex"`
	CountExceeds *CountCheck `yaml:"count_exceeds"`
	Compiler     string      `yaml:"compiler"`
	MinVersion   string      `yaml:"min_version"`
}

// CountCheck holds when Pattern matches more often than Over.
// Both are regular expressions.
type CountCheck struct {
	Pattern string `yaml:"pattern"`
	Over    string `yaml:"over"`
}

// kinds lists the condition kinds that are set.
func (c Condition) kinds() []string {
	var k []string
	if c.Contains != "" {
		k = append(k, "contains")
	}
	if c.Absent != "" {
		k = append(k, "absent")
	}
	if len(c.AnyOf) > 0 {
		k = append(k, "any_of")
	}
	if c.Regex != "" {
		k = append(k, "regex")
	}
	if c.CountExceeds != nil {
		k = append(k, "count_exceeds")
	}
	if c.Compiler != "" {
		k = append(k, "compiler")
	}
	if c.MinVersion != "" {
		k = append(k, "min_version")
	}
	return k
}

// Parse decodes a catalog document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog.Parse: %w", err)
	}
	return &f, nil
}

// LoadFile reads and parses a catalog from disk.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog.LoadFile: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog.LoadFile: %s: %w", path, err)
	}
	return f, nil
}

// LoadBuiltin loads a built-in catalog by name.
func LoadBuiltin(name string) (*File, error) {
	data, err := builtinFS.ReadFile("builtin/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("catalog.LoadBuiltin: unknown catalog %q: %w", name, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog.LoadBuiltin: parse %q: %w", name, err)
	}
	return f, nil
}

// List returns the names of all available built-in catalogs.
func List() ([]string, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if strings.HasSuffix(n, ".yaml") {
			names = append(names, strings.TrimSuffix(n, ".yaml"))
		}
	}
	return names, nil
}

var builtin = sync.OnceValues(func() ([]review.Rule, error) {
	f, err := LoadBuiltin(DefaultName)
	if err != nil {
		return nil, err
	}
	return Compile(f)
})

// Builtin returns the compiled default catalog. It is compiled once per process.
func Builtin() ([]review.Rule, error) {
	return builtin()
}

// Load resolves a rules file path to compiled rules, falling back to the
// builtin catalog when path is empty. The catalog name is returned alongside.
func Load(path string) ([]review.Rule, string, error) {
	if path == "" {
		rules, err := Builtin()
		return rules, DefaultName, err
	}
	f, err := LoadFile(path)
	if err != nil {
		return nil, "", err
	}
	rules, err := Compile(f)
	if err != nil {
		return nil, "", err
	}
	return rules, f.Name, nil
}
