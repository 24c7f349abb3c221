// Package catalog provides the named constants and timbre profiles that can
// be referred to by name on the command line.
//
// The built-in tables are embedded YAML files. Users can add their own
// entries, or override built-in ones, by placing .yml files with the same
// structure under $UserConfigDir/mathtone/catalog/. Names are matched case
// insensitively.
package catalog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vsariola/mathtone"
	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
)

type (
	// Catalog is a read-only set of constants and timbres after loading.
	Catalog struct {
		constants map[string]Constant
		timbres   map[string]Profile
	}

	Constant struct {
		Name    string
		Aliases []string `yaml:",omitempty,flow"`
		Digits  string
	}

	Profile struct {
		Name         string
		Coefficients mathtone.Timbre `yaml:",flow"`
	}

	// File is the structure of a catalog .yml file. Either list may be
	// missing.
	File struct {
		Constants []Constant `yaml:",omitempty"`
		Timbres   []Profile  `yaml:",omitempty"`
	}
)

//go:embed data/*.yml
var builtinFS embed.FS

var builtin = mustLoadBuiltin()

func mustLoadBuiltin() *Catalog {
	c := New()
	if err := c.LoadFS(builtinFS, "data"); err != nil {
		panic(fmt.Errorf("failed to load built-in catalog: %w", err))
	}
	return c
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{
		constants: map[string]Constant{},
		timbres:   map[string]Profile{},
	}
}

// Default returns a copy of the built-in catalog.
func Default() *Catalog {
	return builtin.Copy()
}

// Load returns the built-in catalog extended with the user's catalog files.
// A missing user directory is not an error.
func Load() (*Catalog, error) {
	c := Default()
	configDir, err := os.UserConfigDir()
	if err != nil {
		return c, nil
	}
	dir := filepath.Join(configDir, "mathtone")
	if _, err := os.Stat(filepath.Join(dir, "catalog")); errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err := c.LoadFS(os.DirFS(dir), "catalog"); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFS reads every .yml file under root in fsys into the catalog. Later
// entries replace earlier ones of the same name.
func (c *Catalog) LoadFS(fsys fs.FS, root string) error {
	return fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".yml") {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		if err := c.Read(bytes.NewReader(data)); err != nil {
			return fmt.Errorf("%v: %w", path, err)
		}
		return nil
	})
}

// Read decodes one catalog file into the catalog. Unknown fields are errors.
func (c *Catalog) Read(r io.Reader) error {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("could not decode catalog: %w", err)
	}
	for _, k := range f.Constants {
		if err := c.AddConstant(k); err != nil {
			return err
		}
	}
	for _, p := range f.Timbres {
		if err := c.AddTimbre(p); err != nil {
			return err
		}
	}
	return nil
}

// AddConstant adds a constant, reachable by its name and all its aliases.
// The digits may contain a decimal point and whitespace, which are dropped.
func (c *Catalog) AddConstant(k Constant) error {
	if strings.TrimSpace(k.Name) == "" {
		return errors.New("constant without a name")
	}
	k.Digits = strings.Map(func(r rune) rune {
		if r == '.' || r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, k.Digits)
	if k.Digits == "" {
		return fmt.Errorf("constant %v has no digits", k.Name)
	}
	k.Aliases = append([]string(nil), k.Aliases...)
	for n, old := range c.constants {
		if key(old.Name) == key(k.Name) {
			delete(c.constants, n)
		}
	}
	c.constants[key(k.Name)] = k
	for _, a := range k.Aliases {
		c.constants[key(a)] = k
	}
	return nil
}

func (c *Catalog) AddTimbre(p Profile) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("timbre without a name")
	}
	if len(p.Coefficients) == 0 {
		return fmt.Errorf("timbre %v has no coefficients", p.Name)
	}
	for i, v := range p.Coefficients {
		if v < 0 {
			return fmt.Errorf("timbre %v: coefficient %d is negative (%v)", p.Name, i, v)
		}
	}
	p.Coefficients = p.Coefficients.Copy()
	c.timbres[key(p.Name)] = p
	return nil
}

// Constant implements mathtone.ConstantLookup.
func (c *Catalog) Constant(name string) (string, bool) {
	k, ok := c.constants[key(name)]
	return k.Digits, ok
}

// Timbre implements mathtone.TimbreLookup. The returned vector is a copy.
func (c *Catalog) Timbre(name string) (mathtone.Timbre, bool) {
	p, ok := c.timbres[key(name)]
	if !ok {
		return nil, false
	}
	return p.Coefficients.Copy(), true
}

// Constants lists the constants once each, sorted by name.
func (c *Catalog) Constants() []Constant {
	seen := map[string]bool{}
	var ret []Constant
	for _, k := range c.constants {
		if seen[k.Name] {
			continue
		}
		seen[k.Name] = true
		ret = append(ret, k)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Name < ret[j].Name })
	return ret
}

// Timbres lists the timbre profiles sorted by name.
func (c *Catalog) Timbres() []Profile {
	ret := make([]Profile, 0, len(c.timbres))
	for _, p := range c.timbres {
		ret = append(ret, p)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Name < ret[j].Name })
	return ret
}

// Copy makes a deep copy of the catalog.
func (c *Catalog) Copy() *Catalog {
	ret := New()
	for k, v := range c.constants {
		ret.constants[k] = v
	}
	for k, v := range c.timbres {
		v.Coefficients = v.Coefficients.Copy()
		ret.timbres[k] = v
	}
	return ret
}

func key(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
