package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the typed view of a document in the "user" collection.
type User struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	FirstName string               `bson:"firstName" json:"firstName"`
	LastName  string               `bson:"lastName" json:"lastName"`
	Email     string               `bson:"email" json:"email"`
	Tasks     []primitive.ObjectID `bson:"tasks,omitempty" json:"tasks,omitempty"`
}

// UserFromDocument decodes a raw user document into a User.
func UserFromDocument(d Document) (*User, error) {
	if d == nil {
		return nil, nil
	}
	raw, err := bson.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal user document: %w", err)
	}
	var u User
	if err := bson.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("decode user document: %w", err)
	}
	return &u, nil
}
