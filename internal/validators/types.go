package validators

import (
	"reflect"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func matchesAny(val interface{}, types []string) bool {
	for _, t := range types {
		if matches(val, t) {
			return true
		}
	}
	return false
}

// matches reports whether a Go value would be stored with the given BSON type alias.
func matches(val interface{}, bsonType string) bool {
	switch bsonType {
	case "string":
		_, ok := val.(string)
		return ok
	case "bool":
		_, ok := val.(bool)
		return ok
	case "objectId":
		_, ok := val.(primitive.ObjectID)
		return ok
	case "date":
		switch val.(type) {
		case time.Time, primitive.DateTime:
			return true
		}
		return false
	case "null":
		return val == nil
	case "double":
		switch val.(type) {
		case float32, float64:
			return true
		}
		return false
	case "int":
		switch x := val.(type) {
		case int32, int8, int16, uint8, uint16:
			return true
		case int:
			return int64(x) >= -1<<31 && int64(x) <= 1<<31-1
		}
		return false
	case "long":
		switch x := val.(type) {
		case int64:
			return true
		case int:
			return int64(x) < -1<<31 || int64(x) > 1<<31-1
		}
		return false
	case "number":
		return matches(val, "int") || matches(val, "long") || matches(val, "double")
	case "object":
		switch val.(type) {
		case bson.M, bson.D, map[string]interface{}:
			return true
		}
		return false
	case "array":
		if val == nil {
			return false
		}
		rv := reflect.ValueOf(val)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return false
		}
		// bson.D and []byte are stored as embedded document and binary.
		switch val.(type) {
		case bson.D, []byte:
			return false
		}
		return true
	}
	return false
}

// elements returns the items of an array-like value; anything else yields nil.
func elements(val interface{}) []interface{} {
	if !matches(val, "array") {
		return nil
	}
	rv := reflect.ValueOf(val)
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
