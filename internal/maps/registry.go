package maps

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Builder constructs a built-in map. Maps that ignore randomness may
// ignore the seed.
type Builder func(seed int64) (*Map, error)

var builtins = map[string]Builder{}

// Register adds a built-in map under the provided name.
func Register(name string, b Builder) {
	if name == "" || b == nil {
		return
	}
	builtins[name] = b
}

// Names lists the built-in maps in order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Open returns the built-in map called nameOrPath, or loads it from disk.
func Open(nameOrPath string, seed int64) (*Map, error) {
	if b, ok := builtins[nameOrPath]; ok {
		return b(seed)
	}
	return Load(nameOrPath)
}

// Load reads a map file; the extension selects YAML or JSON.
func Load(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var doc *Document
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		doc, err = LoadYAML(f)
	case ".json":
		doc, err = LoadJSON(f)
	default:
		return nil, fmt.Errorf("%s: unsupported map format %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return doc.Build(name)
}

//go:embed demo.yaml
var demoYAML []byte

func init() {
	Register("demo", func(int64) (*Map, error) {
		doc, err := LoadYAML(bytes.NewReader(demoYAML))
		if err != nil {
			return nil, fmt.Errorf("demo: %w", err)
		}
		return doc.Build("demo")
	})
	Register("generated", Generate)
}
