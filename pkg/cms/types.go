package cms

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Resource represents a single JSON:API resource object. Only the fields this
// library consumes are modeled; anything else in the wire document is ignored.
type Resource struct {
	Type          string                  `json:"type"                    yaml:"type"`
	ID            string                  `json:"id"                      yaml:"id"`
	Attributes    AttrMap                 `json:"attributes,omitempty"    yaml:"attributes,omitempty"`
	Relationships map[string]Relationship `json:"relationships,omitempty" yaml:"relationships,omitempty"`
	Links         Links                   `json:"links,omitempty"         yaml:"links,omitempty"`
}

// Relationship returns the named relationship, or nil if the resource has no
// relationships or the name is absent.
func (r *Resource) Relationship(name string) *Relationship {
	if r == nil || r.Relationships == nil {
		return nil
	}

	rel, ok := r.Relationships[name]
	if !ok {
		return nil
	}

	return &rel
}

// Links represents resource links.
type Links map[string]Link

// Link represents a single link.
type Link struct {
	Href string `json:"href" yaml:"href"`
}

// ResourceRef is a {type, id} reference inside relationship data, optionally
// carrying inline meta such as alt text for images.
type ResourceRef struct {
	Type string  `json:"type"           yaml:"type"`
	ID   string  `json:"id"             yaml:"id"`
	Meta AttrMap `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// Relationship represents a JSON:API relationship whose data member is a
// single reference, an ordered list of references, or null.
type Relationship struct {
	Data RelationshipData `json:"data" yaml:"data"`
}

// RelationshipData holds the polymorphic data member of a relationship.
// Exactly one of One/Many is populated; IsMany records whether the wire form
// was array-valued, which matters even for empty arrays.
type RelationshipData struct {
	One    *ResourceRef
	Many   []ResourceRef
	IsMany bool
}

// UnmarshalJSON decodes the one-or-many-or-null relationship data member.
func (d *RelationshipData) UnmarshalJSON(data []byte) error {
	*d = RelationshipData{}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	if trimmed[0] == '[' {
		d.IsMany = true

		err := json.Unmarshal(trimmed, &d.Many)
		if err != nil {
			return fmt.Errorf("decoding relationship references: %w", err)
		}

		return nil
	}

	var ref ResourceRef

	err := json.Unmarshal(trimmed, &ref)
	if err != nil {
		return fmt.Errorf("decoding relationship reference: %w", err)
	}

	d.One = &ref

	return nil
}

// MarshalJSON re-encodes relationship data in its original shape.
func (d RelationshipData) MarshalJSON() ([]byte, error) {
	switch {
	case d.IsMany:
		out, err := json.Marshal(d.Many)
		if err != nil {
			return nil, fmt.Errorf("encoding relationship references: %w", err)
		}

		return out, nil
	case d.One != nil:
		out, err := json.Marshal(d.One)
		if err != nil {
			return nil, fmt.Errorf("encoding relationship reference: %w", err)
		}

		return out, nil
	default:
		return []byte("null"), nil
	}
}

// Document represents a fetched JSON:API document: a primary resource (or
// collection) plus the side-loaded included set used to resolve relationship
// references without further requests.
type Document struct {
	Data     DocumentData `json:"data"               yaml:"data"`
	Included []Resource   `json:"included,omitempty" yaml:"included,omitempty"`
	Links    Links        `json:"links,omitempty"    yaml:"links,omitempty"`
	Meta     AttrMap      `json:"meta,omitempty"     yaml:"meta,omitempty"`
}

// Resource returns the primary resource of a single-resource document, or nil
// for collections and empty documents.
func (d *Document) Resource() *Resource {
	if d == nil || d.Data.IsMany {
		return nil
	}

	return d.Data.One
}

// Resources returns the primary resources of the document, treating a single
// resource as a one-element collection.
func (d *Document) Resources() []Resource {
	if d == nil {
		return nil
	}

	if d.Data.IsMany {
		return d.Data.Many
	}

	if d.Data.One != nil {
		return []Resource{*d.Data.One}
	}

	return nil
}

// DocumentData holds the polymorphic primary data member of a document.
type DocumentData struct {
	One    *Resource
	Many   []Resource
	IsMany bool
}

// UnmarshalJSON decodes the one-or-many-or-null primary data member.
func (d *DocumentData) UnmarshalJSON(data []byte) error {
	*d = DocumentData{}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	if trimmed[0] == '[' {
		d.IsMany = true

		err := json.Unmarshal(trimmed, &d.Many)
		if err != nil {
			return fmt.Errorf("decoding primary resources: %w", err)
		}

		return nil
	}

	var res Resource

	err := json.Unmarshal(trimmed, &res)
	if err != nil {
		return fmt.Errorf("decoding primary resource: %w", err)
	}

	d.One = &res

	return nil
}

// MarshalJSON re-encodes primary data in its original shape.
func (d DocumentData) MarshalJSON() ([]byte, error) {
	switch {
	case d.IsMany:
		out, err := json.Marshal(d.Many)
		if err != nil {
			return nil, fmt.Errorf("encoding primary resources: %w", err)
		}

		return out, nil
	case d.One != nil:
		out, err := json.Marshal(d.One)
		if err != nil {
			return nil, fmt.Errorf("encoding primary resource: %w", err)
		}

		return out, nil
	default:
		return []byte("null"), nil
	}
}

// AttrMap is a free-form JSON:API attribute (or meta) mapping. The typed
// getters fail soft: a missing key or mismatched value kind yields the zero
// value rather than an error, mirroring how partial CMS content is expected
// in normal operation.
type AttrMap map[string]any

// String returns the named attribute as a string, or "" on absence/mismatch.
func (m AttrMap) String(key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}

	return ""
}

// Int returns the named attribute as an int. JSON numbers arrive as float64;
// both int and float64 values are accepted.
func (m AttrMap) Int(key string) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// Bool returns the named attribute as a bool, or false on absence/mismatch.
func (m AttrMap) Bool(key string) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}

	return false
}

// Map returns the named attribute as a nested AttrMap, or nil.
func (m AttrMap) Map(key string) AttrMap {
	if v, ok := m[key].(map[string]any); ok {
		return AttrMap(v)
	}

	return nil
}

// StringSlice returns the named attribute as a slice of strings, dropping any
// non-string elements.
func (m AttrMap) StringSlice(key string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(raw))

	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}

	return out
}

// ResolvedRoute is the decoupled-router response for a single site path.
type ResolvedRoute struct {
	Resolved   string           `json:"resolved"          yaml:"resolved"`
	IsHomePath bool             `json:"isHomePath"        yaml:"isHomePath"`
	Label      string           `json:"label,omitempty"   yaml:"label,omitempty"`
	Entity     *ResolvedEntity  `json:"entity,omitempty"  yaml:"entity,omitempty"`
	JSONAPI    *ResolvedJSONAPI `json:"jsonapi,omitempty" yaml:"jsonapi,omitempty"`
}

// ResolvedEntity identifies the entity behind a resolved path.
type ResolvedEntity struct {
	Canonical string `json:"canonical" yaml:"canonical"`
	Type      string `json:"type"      yaml:"type"`
	Bundle    string `json:"bundle"    yaml:"bundle"`
	ID        string `json:"id"        yaml:"id"`
	UUID      string `json:"uuid"      yaml:"uuid"`
}

// ResolvedJSONAPI carries the JSON:API addresses for a resolved entity.
type ResolvedJSONAPI struct {
	Individual   string `json:"individual"           yaml:"individual"`
	ResourceName string `json:"resourceName"         yaml:"resourceName"`
	PathPrefix   string `json:"pathPrefix,omitempty" yaml:"pathPrefix,omitempty"`
	EntryPoint   string `json:"entryPoint,omitempty" yaml:"entryPoint,omitempty"`
}
