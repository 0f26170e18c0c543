// Package validators holds the $jsonSchema validators the edutask collections are
// provisioned with, keyed by collection name.
package validators

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var ErrUnknownCollection = errors.New("no validator for collection")

// Validator is a parsed collection schema.
type Validator struct {
	Collection string
	// Schema is the full validator document ({"$jsonSchema": {...}}) sent to the server.
	Schema bson.M

	required   []string
	properties map[string][]string // field -> accepted bsonType names
	items      map[string][]string // array field -> accepted element bsonType names
	unique     []string
}

// Load parses the embedded schema for the named collection.
func Load(name string) (*Validator, error) {
	data, err := schemaFS.ReadFile("schemas/" + name + ".json")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, name)
		}
		return nil, err
	}
	var doc bson.M
	if err := bson.UnmarshalExtJSON(data, false, &doc); err != nil {
		return nil, fmt.Errorf("parse validator %s: %w", name, err)
	}
	js, ok := asMap(doc["$jsonSchema"])
	if !ok {
		return nil, fmt.Errorf("validator %s: missing $jsonSchema", name)
	}

	v := &Validator{Collection: name, Schema: doc, properties: map[string][]string{}, items: map[string][]string{}}
	for _, r := range asList(js["required"]) {
		if s, ok := r.(string); ok {
			v.required = append(v.required, s)
		}
	}
	props, _ := asMap(js["properties"])
	for field, raw := range props {
		p, ok := asMap(raw)
		if !ok {
			continue
		}
		v.properties[field] = typeNames(p["bsonType"])
		if it, ok := asMap(p["items"]); ok {
			if types := typeNames(it["bsonType"]); len(types) > 0 {
				v.items[field] = types
			}
		}
		if u, ok := p["uniqueItems"].(bool); ok && u {
			v.unique = append(v.unique, field)
		}
	}
	sort.Strings(v.unique)
	return v, nil
}

// Names lists the collections that have an embedded validator.
func Names() []string {
	entries, _ := schemaFS.ReadDir("schemas")
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(out)
	return out
}

// fixtureCollection backs the generic DAO tests and is never provisioned.
const fixtureCollection = "test_collection"

// Collections lists the application collections: every embedded schema except
// the test fixture.
func Collections() []string {
	var out []string
	for _, n := range Names() {
		if n != fixtureCollection {
			out = append(out, n)
		}
	}
	return out
}

// UniqueFields returns the fields that get a unique index.
func (v *Validator) UniqueFields() []string {
	return append([]string(nil), v.unique...)
}

// Required returns the fields every document must carry.
func (v *Validator) Required() []string {
	return append([]string(nil), v.required...)
}

// Check evaluates the required and bsonType rules against doc. It is the
// in-process counterpart of server-side document validation.
func (v *Validator) Check(doc bson.M) error {
	for _, f := range v.required {
		if _, ok := doc[f]; !ok {
			return fmt.Errorf("missing required field %q", f)
		}
	}
	for field, types := range v.properties {
		val, ok := doc[field]
		if !ok || len(types) == 0 {
			continue
		}
		if !matchesAny(val, types) {
			return fmt.Errorf("field %q: expected bsonType %s, got %T", field, strings.Join(types, "|"), val)
		}
	}
	for field, types := range v.items {
		val, ok := doc[field]
		if !ok {
			continue
		}
		for i, elem := range elements(val) {
			if !matchesAny(elem, types) {
				return fmt.Errorf("field %q item %d: expected bsonType %s, got %T", field, i, strings.Join(types, "|"), elem)
			}
		}
	}
	return nil
}

func typeNames(raw interface{}) []string {
	switch t := raw.(type) {
	case string:
		return []string{t}
	default:
		var out []string
		for _, x := range asList(raw) {
			if s, ok := x.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
}

func asMap(v interface{}) (bson.M, bool) {
	switch m := v.(type) {
	case bson.M:
		return m, true
	case map[string]interface{}:
		return bson.M(m), true
	case bson.D:
		out := make(bson.M, len(m))
		for _, e := range m {
			out[e.Key] = e.Value
		}
		return out, true
	}
	return nil, false
}

func asList(v interface{}) []interface{} {
	switch l := v.(type) {
	case bson.A:
		return l
	case []interface{}:
		return l
	}
	return nil
}
