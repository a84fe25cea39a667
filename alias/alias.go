// Package alias stores named command-line expansions in a per-tool JSON
// catalog. An alias name is recognized by its first character ('/', '.', or
// '~'); when the first non-flag token of an invocation is an alias it is
// replaced by the stored tokens before full parsing.
package alias

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type record struct {
	Description string   `koanf:"description" json:"description"`
	Command     []string `koanf:"command" json:"command"`
}

// IsAliasName reports whether name uses the alias namespace.
func IsAliasName(name string) bool {
	if name == "" {
		return false
	}
	switch name[0] {
	case '/', '.', '~':
		return true
	}
	return false
}

// Catalog is a file-backed alias store. Mutations are written through to the
// backing file immediately.
type Catalog struct {
	path    string
	records map[string]record
}

// Open loads the catalog at path. A missing file yields an empty catalog; the
// file is created on the first mutation.
func Open(path string) (*Catalog, error) {
	catalog := &Catalog{
		path:    path,
		records: make(map[string]record),
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return catalog, nil
	}
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), kjson.Parser()); err != nil {
		return nil, fmt.Errorf("loading alias catalog %s: %w", path, err)
	}
	if err := k.Unmarshal("", &catalog.records); err != nil {
		return nil, fmt.Errorf("reading alias catalog %s: %w", path, err)
	}
	return catalog, nil
}

// Resolve expands an alias name to its replacement tokens.
func (c *Catalog) Resolve(name string) ([]string, bool) {
	stored, ok := c.records[name]
	if !ok {
		return nil, false
	}
	return append([]string(nil), stored.Command...), true
}

// Set stores or replaces an alias expansion and persists the catalog.
func (c *Catalog) Set(name, description string, command []string) error {
	if !IsAliasName(name) {
		return fmt.Errorf("alias name %q must start with '/', '.', or '~'", name)
	}
	if len(command) == 0 {
		return fmt.Errorf("alias %q has an empty command", name)
	}
	c.records[name] = record{
		Description: description,
		Command:     append([]string(nil), command...),
	}
	return c.save()
}

// Delete removes an alias; it reports whether the alias existed.
func (c *Catalog) Delete(name string) (bool, error) {
	if _, ok := c.records[name]; !ok {
		return false, nil
	}
	delete(c.records, name)
	return true, c.save()
}

// Names lists the catalog's alias names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.records))
	for name := range c.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns the stored description and expansion for an alias.
func (c *Catalog) Describe(name string) (string, []string, bool) {
	stored, ok := c.records[name]
	if !ok {
		return "", nil, false
	}
	return stored.Description, append([]string(nil), stored.Command...), true
}

func (c *Catalog) save() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("creating alias catalog directory: %w", err)
	}
	encoded, err := json.MarshalIndent(c.records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding alias catalog: %w", err)
	}
	if err := os.WriteFile(c.path, append(encoded, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing alias catalog %s: %w", c.path, err)
	}
	return nil
}

// Expand replaces a leading alias token in args with its stored expansion.
// Non-alias vectors pass through unchanged; an unknown alias is an error so
// the user learns the alias is missing instead of seeing a parse failure on
// the raw name.
func Expand(catalog *Catalog, args []string) ([]string, error) {
	if catalog == nil || len(args) == 0 || !IsAliasName(args[0]) {
		return args, nil
	}
	expansion, ok := catalog.Resolve(args[0])
	if !ok {
		return nil, fmt.Errorf("unknown alias %q", args[0])
	}
	return append(expansion, args[1:]...), nil
}
