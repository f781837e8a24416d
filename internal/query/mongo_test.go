package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func TestBuildMongoFilterEmpty(t *testing.T) {
	filter, err := BuildMongoFilter(Filter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, filter)
}

func TestBuildMongoFilterOwner(t *testing.T) {
	owner := bson.NewObjectID()
	filter, err := BuildMongoFilter(Filter{Owner: owner.Hex(), Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, owner, filter["userId"])
}

func TestBuildMongoFilterRejectsBadOwner(t *testing.T) {
	_, err := BuildMongoFilter(Filter{Owner: "not-hex", Page: 1, PageSize: 10})
	assert.Error(t, err)
}

func TestBuildMongoFilterKeywordQuoted(t *testing.T) {
	filter, err := BuildMongoFilter(Filter{Keyword: "a.*b$(c)", Page: 1, PageSize: 10})
	require.NoError(t, err)

	rx, ok := filter["remark"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, `a\.\*b\$\(c\)`, rx["$regex"])
	assert.Equal(t, "i", rx["$options"])
}

func TestBuildMongoFilterDateRange(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 5, 23, 59, 59, 999_000_000, time.UTC)

	filter, err := BuildMongoFilter(Filter{StartAt: &start, EndAt: &end, Page: 1, PageSize: 10})
	require.NoError(t, err)

	rng, ok := filter["date"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, start, rng["$gte"])
	assert.Equal(t, end, rng["$lte"])

	filter, err = BuildMongoFilter(Filter{StartAt: &start, Page: 1, PageSize: 10})
	require.NoError(t, err)
	rng = filter["date"].(bson.M)
	assert.Contains(t, rng, "$gte")
	assert.NotContains(t, rng, "$lte")
}

func TestMongoFindOptions(t *testing.T) {
	builder := MongoFindOptions(Filter{Page: 3, PageSize: 20})

	opts := options.FindOptions{}
	for _, set := range builder.List() {
		require.NoError(t, set(&opts))
	}

	require.NotNil(t, opts.Skip)
	assert.Equal(t, int64(40), *opts.Skip)
	require.NotNil(t, opts.Limit)
	assert.Equal(t, int64(20), *opts.Limit)
	assert.Equal(t, bson.D{{Key: "date", Value: -1}}, opts.Sort)
}
