package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestSearchFilterEmpty(t *testing.T) {
	assert.Equal(t, bson.M{}, searchFilter(""))
	assert.Equal(t, bson.M{}, partSearchFilter(""))
}

func TestSearchFilterMatchesNameAndPhone(t *testing.T) {
	filter := searchFilter("ravi")

	or, ok := filter["$or"].([]bson.M)
	assert.True(t, ok)
	assert.Len(t, or, 2)

	regex := bson.M{"$regex": "ravi", "$options": "i"}
	assert.Equal(t, regex, or[0]["name"])
	assert.Equal(t, regex, or[1]["phone"])
}

func TestPartSearchFilterMatchesNumberAndCategory(t *testing.T) {
	filter := partSearchFilter("OF-2041")

	or, ok := filter["$or"].([]bson.M)
	assert.True(t, ok)
	assert.Len(t, or, 3)

	regex := bson.M{"$regex": "OF-2041", "$options": "i"}
	assert.Equal(t, regex, or[0]["name"])
	assert.Equal(t, regex, or[1]["partNumber"])
	assert.Equal(t, regex, or[2]["category"])
}
