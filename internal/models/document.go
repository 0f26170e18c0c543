package models

import "go.mongodb.org/mongo-driver/bson"

// IDField is the identity field the store assigns on insert.
const IDField = "_id"

// Document is a schema-constrained field->value mapping persisted in a collection.
type Document = bson.M

// Clone returns a shallow copy of d. A nil input yields an empty document.
func Clone(d Document) Document {
	out := make(Document, len(d)+1)
	for k, v := range d {
		out[k] = v
	}
	return out
}
