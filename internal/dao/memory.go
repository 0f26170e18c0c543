package dao

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/jkberiksson/bsv-edutask/internal/models"
	"github.com/jkberiksson/bsv-edutask/internal/validators"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryCollection is an in-process Collection that enforces a validator the way
// the server does: required fields, bsonType and unique fields. It backs unit
// tests and runs without a database.
type MemoryCollection struct {
	mu        sync.RWMutex
	name      string
	validator *validators.Validator
	docs      []models.Document
}

// NewMemoryCollection returns an empty collection. A nil validator accepts any document.
func NewMemoryCollection(name string, v *validators.Validator) *MemoryCollection {
	return &MemoryCollection{name: name, validator: v}
}

func (m *MemoryCollection) InsertOne(ctx context.Context, doc models.Document) (interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stored := models.Clone(doc)
	if _, ok := stored[models.IDField]; !ok {
		stored[models.IDField] = primitive.NewObjectID()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.validator != nil {
		if err := m.validator.Check(stored); err != nil {
			return nil, &WriteError{Collection: m.name, Code: CodeValidationFailed, Message: "Document failed validation: " + err.Error()}
		}
	}
	unique := []string{models.IDField}
	if m.validator != nil {
		unique = append(unique, m.validator.UniqueFields()...)
	}
	for _, field := range unique {
		val, ok := stored[field]
		if !ok {
			continue
		}
		for _, d := range m.docs {
			if existing, ok := d[field]; ok && reflect.DeepEqual(existing, val) {
				return nil, &WriteError{
					Collection: m.name,
					Code:       CodeDuplicateKey,
					Message:    fmt.Sprintf("E11000 duplicate key error collection: %s index: %s_1 dup key: { %s: %v }", m.name, field, field, val),
				}
			}
		}
	}
	m.docs = append(m.docs, stored)
	return stored[models.IDField], nil
}

// Find matches top-level fields by equality and returns copies in insertion order.
func (m *MemoryCollection) Find(ctx context.Context, filter models.Document) ([]models.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Document{}
	for _, d := range m.docs {
		if matchesFilter(d, filter) {
			out = append(out, models.Clone(d))
		}
	}
	return out, nil
}

// Len returns the number of stored documents.
func (m *MemoryCollection) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}

func matchesFilter(d, filter models.Document) bool {
	for k, want := range filter {
		got, ok := d[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}
