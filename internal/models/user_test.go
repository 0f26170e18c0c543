package models

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserFromDocument(t *testing.T) {
	id := primitive.NewObjectID()
	u, err := UserFromDocument(Document{
		"_id":       id,
		"firstName": "Jane",
		"lastName":  "Doe",
		"email":     "jane.doe@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, id, u.ID)
	require.Equal(t, "Jane", u.FirstName)
	require.Equal(t, "jane.doe@example.com", u.Email)
	require.Empty(t, u.Tasks)

	none, err := UserFromDocument(nil)
	require.NoError(t, err)
	require.Nil(t, none)
}

func TestUserFromDocument_TypeMismatch(t *testing.T) {
	_, err := UserFromDocument(Document{"email": 42})
	require.Error(t, err)
}

func TestClone(t *testing.T) {
	src := Document{"title": "a"}
	c := Clone(src)
	c["_id"] = "x"
	require.NotContains(t, src, "_id")
	require.Equal(t, "a", c["title"])
	require.NotNil(t, Clone(nil))
}
