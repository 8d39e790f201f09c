package mongo

import (
	"testing"
	"time"

	"musclemania/gym-catalog/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestWithID(t *testing.T) {
	doc, err := withID(domain.Category{ID: "ignored", Name: "Chest", ImageURL: "img"}, "cat-1")
	require.NoError(t, err)

	require.NotEmpty(t, doc)
	assert.Equal(t, "_id", doc[0].Key)
	assert.Equal(t, "cat-1", doc[0].Value)
	assert.Equal(t, "Chest", doc.Map()["name"])

	ids := 0
	for _, e := range doc {
		if e.Key == "_id" {
			ids++
		}
	}
	assert.Equal(t, 1, ids)
}

func TestWithID_EmptyRecordID(t *testing.T) {
	marker := domain.SeedMarker{Version: 1, SeededAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	doc, err := withID(marker, domain.CatalogSeedMarkerID)
	require.NoError(t, err)
	assert.Equal(t, bson.E{Key: "_id", Value: domain.CatalogSeedMarkerID}, doc[0])
	assert.EqualValues(t, 1, doc.Map()["version"])
}

func TestIDString(t *testing.T) {
	oid := primitive.NewObjectID()
	assert.Equal(t, oid.Hex(), idString(oid))
	assert.Equal(t, "abc", idString("abc"))
	assert.Equal(t, "42", idString(int32(42)))
}

func TestClassify(t *testing.T) {
	assert.Nil(t, classify(nil))
}
