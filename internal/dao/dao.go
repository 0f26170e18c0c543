// Package dao is the persistence boundary for one edutask collection.
package dao

import (
	"context"
	"errors"

	"github.com/jkberiksson/bsv-edutask/internal/models"
	"github.com/jkberiksson/bsv-edutask/pkg/logger"
	"github.com/jkberiksson/bsv-edutask/pkg/metrics"
)

var log = logger.Named("dao")

// Collection is the store capability a DAO needs. It is satisfied by the
// MongoDB adapter and by MemoryCollection.
type Collection interface {
	// InsertOne persists doc and returns the identity the store assigned.
	InsertOne(ctx context.Context, doc models.Document) (interface{}, error)
	// Find returns all documents matching filter in store order.
	Find(ctx context.Context, filter models.Document) ([]models.Document, error)
}

// DAO wraps exactly one named collection for its lifetime.
type DAO struct {
	name string
	col  Collection
}

// NewWithCollection binds a DAO to an already provisioned collection.
func NewWithCollection(name string, col Collection) *DAO {
	return &DAO{name: name, col: col}
}

func (d *DAO) Name() string { return d.name }

// Create inserts doc and returns a copy of it augmented with the "_id" the
// store assigned. The caller's map is left untouched. Store rejections are
// returned as *WriteError; no validation happens here.
func (d *DAO) Create(ctx context.Context, doc models.Document) (models.Document, error) {
	out := models.Clone(doc)
	id, err := d.col.InsertOne(ctx, out)
	if err != nil {
		err = asWriteError(d.name, err)
		var we *WriteError
		if errors.As(err, &we) {
			metrics.DAOWrites.WithLabelValues(d.name, "rejected").Inc()
			log.Debugf("%s: write rejected (code %d): %s", d.name, we.Code, we.Message)
		} else {
			metrics.DAOWrites.WithLabelValues(d.name, "error").Inc()
			log.Warnf("%s: insert failed: %v", d.name, err)
		}
		return nil, err
	}
	out[models.IDField] = id
	metrics.DAOWrites.WithLabelValues(d.name, "created").Inc()
	return out, nil
}

// Find returns the documents matching filter; an empty result is not an error.
// Store errors are returned unchanged.
func (d *DAO) Find(ctx context.Context, filter models.Document) ([]models.Document, error) {
	if filter == nil {
		filter = models.Document{}
	}
	docs, err := d.col.Find(ctx, filter)
	if err != nil {
		metrics.DAOFinds.WithLabelValues(d.name, "error").Inc()
		return nil, err
	}
	metrics.DAOFinds.WithLabelValues(d.name, "ok").Inc()
	if docs == nil {
		docs = []models.Document{}
	}
	return docs, nil
}
