// Package model loads a documentation project description from YAML and
// answers reference lookups against it.
//
// A project lists modules; each module has an href and named items:
//
//	current: io
//	modules:
//	  - name: io
//	    href: io.html
//	    items:
//	      - name: read
//	        kind: function
//	        label: io.read()
//	      - name: File
//	        kind: type
//
// Unqualified names are looked up among the current module's items (the
// first module when current is unset). "mod.item" names address any module.
package model

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-docmark/internal/refs"
	"github.com/alnah/go-docmark/internal/yamlutil"
)

// KindType marks items that satisfy type-hinted lookups.
const KindType = "type"

// Sentinel errors. Lookup misses also match refs.ErrNotFound.
var (
	ErrModelNotFound = errors.New("model file not found")
	ErrModelParse    = errors.New("failed to parse model")
	ErrModelInvalid  = errors.New("invalid model")
	ErrUnknownModule = errors.New("unknown module")
	ErrUnknownItem   = errors.New("unknown item")
)

// Item is one documented member of a module.
type Item struct {
	Name   string `yaml:"name"`
	Kind   string `yaml:"kind"`
	Label  string `yaml:"label"`
	Anchor string `yaml:"anchor"`
}

// Module is one documented module.
type Module struct {
	Name  string `yaml:"name"`
	Href  string `yaml:"href"`
	Label string `yaml:"label"`
	Items []Item `yaml:"items"`
}

// Project is the documentation model. It is read-only after Load and safe
// for concurrent lookups.
type Project struct {
	Current string   `yaml:"current"`
	Modules []Module `yaml:"modules"`

	byName map[string]*Module
}

// Load reads and validates a project file.
func Load(path string) (*Project, error) {
	var p Project
	if err := yamlutil.ReadFile(path, &p, yamlutil.Strict()); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrModelParse, err)
	}
	if err := p.init(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Parse decodes and validates a project from YAML bytes.
func Parse(data []byte) (*Project, error) {
	var p Project
	if err := yamlutil.Unmarshal(data, &p, yamlutil.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelParse, err)
	}
	if err := p.init(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Project) init() error {
	if len(p.Modules) == 0 {
		return fmt.Errorf("%w: no modules", ErrModelInvalid)
	}
	p.byName = make(map[string]*Module, len(p.Modules))
	for i := range p.Modules {
		m := &p.Modules[i]
		if strings.TrimSpace(m.Name) == "" {
			return fmt.Errorf("%w: module %d has no name", ErrModelInvalid, i+1)
		}
		if _, dup := p.byName[m.Name]; dup {
			return fmt.Errorf("%w: duplicate module %q", ErrModelInvalid, m.Name)
		}
		for j, item := range m.Items {
			if strings.TrimSpace(item.Name) == "" {
				return fmt.Errorf("%w: module %q item %d has no name", ErrModelInvalid, m.Name, j+1)
			}
		}
		p.byName[m.Name] = m
	}
	if p.Current != "" && p.byName[p.Current] == nil {
		return fmt.Errorf("%w: current module %q is not listed", ErrModelInvalid, p.Current)
	}
	return nil
}

// CurrentModule returns the designated current module, or the first one.
func (p *Project) CurrentModule() *Module {
	if p.Current != "" {
		return p.byName[p.Current]
	}
	return &p.Modules[0]
}

// Lookup resolves name against the project. It has the refs.LookupFunc shape.
func (p *Project) Lookup(name string, isType bool) (*refs.Reference, error) {
	if m, ok := p.byName[name]; ok {
		return m.reference(), nil
	}

	if modName, itemName, ok := splitQualified(name); ok {
		m, found := p.byName[modName]
		if !found {
			return nil, fmt.Errorf("%w: %w %q", refs.ErrNotFound, ErrUnknownModule, modName)
		}
		return m.lookupItem(name, itemName, isType)
	}

	return p.CurrentModule().lookupItem(name, name, isType)
}

func (m *Module) reference() *refs.Reference {
	label := m.Label
	if label == "" {
		label = m.Name
	}
	return &refs.Reference{Name: m.Name, Label: label, TypeHint: "module", Href: m.Href}
}

func (m *Module) lookupItem(query, itemName string, isType bool) (*refs.Reference, error) {
	for _, item := range m.Items {
		if item.Name != itemName || (isType && item.Kind != KindType) {
			continue
		}
		label := item.Label
		if label == "" {
			label = query
		}
		return &refs.Reference{
			Name:     m.Name + "." + item.Name,
			Label:    label,
			TypeHint: item.Kind,
			Href:     m.Href + "#" + item.anchor(),
		}, nil
	}
	return nil, fmt.Errorf("%w: %w %q in module %q", refs.ErrNotFound, ErrUnknownItem, itemName, m.Name)
}

func (i Item) anchor() string {
	if i.Anchor != "" {
		return i.Anchor
	}
	return i.Name
}

// splitQualified splits "mod.item" at the last dot. Nested module names such
// as "pl.utils" stay intact.
func splitQualified(name string) (module, item string, ok bool) {
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 || idx == len(name)-1 {
		return "", "", false
	}
	return name[:idx], name[idx+1:], true
}
