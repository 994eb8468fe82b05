// Package fieldmap is the single source of truth for field promotion:
// which source-table columns map to which canonical primary_data columns,
// the priority order among source tables, and the global type
// classification used by both the promotion engine and the manual edit
// path. Lookups never fail; unknown tables yield empty mappings and
// unknown fields classify as TypeUnknown (pass-through text).
package fieldmap

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

type FieldType string

const (
	TypeBoolean  FieldType = "boolean"
	TypeNumber   FieldType = "number"
	TypeText     FieldType = "text"
	TypeTextarea FieldType = "textarea"
	TypeJSON     FieldType = "json"
	TypeArray    FieldType = "array"
	TypeUnknown  FieldType = "unknown"
)

// SourceManual is the provenance label for operator edits. It is never a
// table label; the promotion engine refuses to overwrite fields carrying it.
const SourceManual = "manual"

//go:embed registry.yaml
var registryYAML []byte

type sourceSpec struct {
	Label   string            `yaml:"label"`
	Seed    bool              `yaml:"seed"`
	Columns map[string]string `yaml:"columns"`
}

type registryDoc struct {
	Types    map[string]string     `yaml:"types"`
	Priority []string              `yaml:"priority"`
	Sources  map[string]sourceSpec `yaml:"sources"`
}

type Registry struct {
	types     map[string]FieldType
	priority  []string
	sources   map[string]sourceSpec
	seedTable string
}

// Load parses and validates the embedded registry document.
func Load() (*Registry, error) {
	var doc registryDoc
	if err := yaml.Unmarshal(registryYAML, &doc); err != nil {
		return nil, fmt.Errorf("fieldmap: parse registry: %w", err)
	}

	r := &Registry{
		types:   make(map[string]FieldType, len(doc.Types)),
		sources: doc.Sources,
	}
	for field, ft := range doc.Types {
		switch FieldType(ft) {
		case TypeBoolean, TypeNumber, TypeText, TypeTextarea, TypeJSON, TypeArray:
			r.types[field] = FieldType(ft)
		default:
			return nil, fmt.Errorf("fieldmap: field %q has unknown type %q", field, ft)
		}
	}

	seen := make(map[string]bool, len(doc.Priority))
	for _, table := range doc.Priority {
		if _, ok := doc.Sources[table]; !ok {
			return nil, fmt.Errorf("fieldmap: priority table %q has no source spec", table)
		}
		if seen[table] {
			return nil, fmt.Errorf("fieldmap: table %q listed twice in priority order", table)
		}
		seen[table] = true
		r.priority = append(r.priority, table)
	}

	for table, spec := range doc.Sources {
		if spec.Seed {
			if r.seedTable != "" {
				return nil, fmt.Errorf("fieldmap: both %q and %q marked as seed table", r.seedTable, table)
			}
			r.seedTable = table
		}
		for srcCol, canCol := range spec.Columns {
			if _, ok := r.types[canCol]; !ok {
				return nil, fmt.Errorf("fieldmap: %s.%s maps to untyped canonical field %q", table, srcCol, canCol)
			}
		}
	}
	if r.seedTable == "" {
		return nil, fmt.Errorf("fieldmap: no seed table declared")
	}

	return r, nil
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
	defaultErr  error
)

// Default returns the process-wide registry loaded from the embedded
// document. The embed is fixed at build time, so a load error here is a
// programming error surfaced on first use.
func Default() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultReg, defaultErr = Load()
	})
	return defaultReg, defaultErr
}

// MappingsFor returns sourceColumn -> canonicalColumn for a source table.
// Unknown tables return an empty map; they are simply not promotable.
func (r *Registry) MappingsFor(table string) map[string]string {
	spec, ok := r.sources[table]
	if !ok {
		return map[string]string{}
	}
	out := make(map[string]string, len(spec.Columns))
	for k, v := range spec.Columns {
		out[k] = v
	}
	return out
}

// PriorityOrder returns the source tables highest-priority first.
func (r *Registry) PriorityOrder() []string {
	out := make([]string, len(r.priority))
	copy(out, r.priority)
	return out
}

// TypeOf classifies a canonical field name. Unregistered names are
// TypeUnknown and must be treated as pass-through text by conversion.
func (r *Registry) TypeOf(field string) FieldType {
	if ft, ok := r.types[field]; ok {
		return ft
	}
	return TypeUnknown
}

// IsCanonical reports whether field is a registered promotable field, i.e.
// primary_data carries provenance columns for it.
func (r *Registry) IsCanonical(field string) bool {
	_, ok := r.types[field]
	return ok
}

// CanonicalFields returns every registered canonical field name.
func (r *Registry) CanonicalFields() []string {
	out := make([]string, 0, len(r.types))
	for f := range r.types {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// SourceLabel returns the provenance label stamped into _source columns for
// writes originating from table. Most tables stamp their own name; the seed
// upload stamps usgolf_data.
func (r *Registry) SourceLabel(table string) string {
	if spec, ok := r.sources[table]; ok && spec.Label != "" {
		return spec.Label
	}
	return table
}

// SeedTable returns the table primary_data rows are seeded from.
func (r *Registry) SeedTable() string {
	return r.seedTable
}

// KnownTable reports whether table participates in promotion at all.
func (r *Registry) KnownTable(table string) bool {
	_, ok := r.sources[table]
	return ok
}
