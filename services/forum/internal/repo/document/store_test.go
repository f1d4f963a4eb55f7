package document

import (
	"testing"

	"nomadnest/services/forum/internal/listing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPostMatch(t *testing.T) {
	t.Run("empty filter matches everything", func(t *testing.T) {
		assert.Empty(t, postMatch(listing.PostFilter{Search: "   "}))
	})

	t.Run("search is escaped and case-insensitive", func(t *testing.T) {
		match := postMatch(listing.PostFilter{Search: " c++ ", AuthorEmail: "a@x.io"})
		require.Len(t, match, 2)
		assert.Equal(t, bson.E{Key: "author_email", Value: "a@x.io"}, match[0])
		assert.Equal(t, bson.E{Key: "tag", Value: primitive.Regex{Pattern: `c\+\+`, Options: "i"}}, match[1])
	})
}

func TestPostPipeline(t *testing.T) {
	q := listing.PostQuery{
		Filter: listing.PostFilter{Search: "travel"},
		Sort:   listing.SortScore,
		Page:   listing.NewPage(3, 4),
	}

	pipeline := postPipeline(q)
	require.Len(t, pipeline, 5)

	stages := make([]string, len(pipeline))
	for i, stage := range pipeline {
		stages[i] = stage[0].Key
	}
	assert.Equal(t, []string{"$match", "$addFields", "$sort", "$skip", "$limit"}, stages)

	assert.Equal(t, postMatch(q.Filter), pipeline[0][0].Value)
	assert.Equal(t, bson.D{
		{Key: "voteDifference", Value: -1},
		{Key: "post_time", Value: -1},
		{Key: "_id", Value: 1},
	}, pipeline[2][0].Value)
	assert.Equal(t, int64(8), pipeline[3][0].Value)
	assert.Equal(t, int64(4), pipeline[4][0].Value)
}

func TestPostSortRecency(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "post_time", Value: -1}, {Key: "_id", Value: 1}}, postSort(listing.SortRecency))
}

func TestCommentMatch(t *testing.T) {
	assert.Empty(t, commentMatch(listing.CommentFilter{}))

	match := commentMatch(listing.CommentFilter{PostID: "p1", ReportedOnly: true})
	require.Len(t, match, 2)
	assert.Equal(t, "post_id", match[0].Key)
	assert.Equal(t, "feedback", match[1].Key)
}

func TestObjectID(t *testing.T) {
	_, ok := objectID("not-an-object-id")
	assert.False(t, ok)

	oid := primitive.NewObjectID()
	parsed, ok := objectID(oid.Hex())
	assert.True(t, ok)
	assert.Equal(t, oid, parsed)
}
