package dbmongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestNormalizePage_Defaults(t *testing.T) {
	page, limit := NormalizePage(0, 0)
	assert.Equal(t, int64(DefaultPage), page)
	assert.Equal(t, int64(DefaultLimit), limit)
}

func TestNormalizePage_Negative(t *testing.T) {
	page, limit := NormalizePage(-3, -50)
	assert.Equal(t, int64(1), page)
	assert.Equal(t, int64(10), limit)
}

func TestNormalizePage_ValidPassThrough(t *testing.T) {
	page, limit := NormalizePage(4, 25)
	assert.Equal(t, int64(4), page)
	assert.Equal(t, int64(25), limit)
}

func TestLookupUserPublic_Stage(t *testing.T) {
	stage := LookupUserPublic("owner", "ownerProfile")

	assert.Equal(t, "$lookup", stage[0].Key)
	spec := stage[0].Value.(bson.D)
	assert.Equal(t, CollUsers, spec[0].Value)
	assert.Equal(t, "owner", spec[1].Value)
	assert.Equal(t, "_id", spec[2].Value)
	assert.Equal(t, "ownerProfile", spec[3].Value)
}

func TestFirstOf_Stage(t *testing.T) {
	stage := FirstOf("owner")

	assert.Equal(t, "$addFields", stage[0].Key)
	fields := stage[0].Value.(bson.D)
	assert.Equal(t, "owner", fields[0].Key)
	assert.Equal(t, bson.D{{Key: "$first", Value: "$owner"}}, fields[0].Value)
}

func TestPublicProfileProjection_ExcludesCredentials(t *testing.T) {
	proj := PublicProfileProjection()

	keys := make(map[string]bool, len(proj))
	for _, e := range proj {
		keys[e.Key] = true
	}
	assert.True(t, keys["username"])
	assert.True(t, keys["avatar"])
	assert.False(t, keys["passwordHash"])
	assert.False(t, keys["refreshToken"])
}
