package dao

import (
	"context"
	"fmt"

	"github.com/jkberiksson/bsv-edutask/internal/models"
	"github.com/jkberiksson/bsv-edutask/internal/validators"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCollection adapts a *mongo.Collection to Collection.
type MongoCollection struct {
	col *mongo.Collection
}

func NewMongoCollection(col *mongo.Collection) *MongoCollection {
	return &MongoCollection{col: col}
}

func (m *MongoCollection) InsertOne(ctx context.Context, doc models.Document) (interface{}, error) {
	res, err := m.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	return res.InsertedID, nil
}

func (m *MongoCollection) Find(ctx context.Context, filter models.Document) ([]models.Document, error) {
	cur, err := m.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []models.Document{}
	for cur.Next(ctx) {
		var d models.Document
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// New provisions the named collection in db with its validator and unique
// indexes, then returns a DAO bound to it.
func New(ctx context.Context, db *mongo.Database, name string) (*DAO, error) {
	v, err := validators.Load(name)
	if err != nil {
		return nil, err
	}
	if err := Provision(ctx, db, v); err != nil {
		return nil, err
	}
	return NewWithCollection(name, NewMongoCollection(db.Collection(name))), nil
}

// Provision creates the collection with the validator attached, or updates the
// validator of an existing one, and ensures a unique index per unique field.
func Provision(ctx context.Context, db *mongo.Database, v *validators.Validator) error {
	names, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: v.Collection}})
	if err != nil {
		return fmt.Errorf("list collections: %w", err)
	}
	if len(names) == 0 {
		opts := options.CreateCollection().SetValidator(v.Schema)
		if err := db.CreateCollection(ctx, v.Collection, opts); err != nil {
			return fmt.Errorf("create collection %s: %w", v.Collection, err)
		}
		log.Infof("created collection %s", v.Collection)
	} else {
		cmd := bson.D{{Key: "collMod", Value: v.Collection}, {Key: "validator", Value: v.Schema}}
		if err := db.RunCommand(ctx, cmd).Err(); err != nil {
			return fmt.Errorf("update validator %s: %w", v.Collection, err)
		}
		log.Debugf("updated validator on %s", v.Collection)
	}

	col := db.Collection(v.Collection)
	for _, field := range v.UniqueFields() {
		idx := mongo.IndexModel{Keys: bson.D{{Key: field, Value: 1}}, Options: options.Index().SetUnique(true)}
		if _, err := col.Indexes().CreateOne(ctx, idx); err != nil {
			return fmt.Errorf("unique index %s.%s: %w", v.Collection, field, err)
		}
	}
	return nil
}
