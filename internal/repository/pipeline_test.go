package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func stage(t *testing.T, p mongo.Pipeline, i int, op string) bson.D {
	t.Helper()
	require.Greater(t, len(p), i)
	require.Equal(t, op, p[i][0].Key)
	d, ok := p[i][0].Value.(bson.D)
	require.True(t, ok, "stage %d %s should hold a bson.D", i, op)
	return d
}

func lookupField(t *testing.T, d bson.D, key string) interface{} {
	t.Helper()
	for _, e := range d {
		if e.Key == key {
			return e.Value
		}
	}
	t.Fatalf("key %q not present in %v", key, d)
	return nil
}

func TestUserTweetsPipeline(t *testing.T) {
	owner := primitive.NewObjectID()
	viewer := primitive.NewObjectID()
	p := userTweetsPipeline(owner, viewer)

	match := stage(t, p, 0, "$match")
	assert.Equal(t, owner, lookupField(t, match, "owner"))

	ownerJoin := stage(t, p, 1, "$lookup")
	assert.Equal(t, "users", lookupField(t, ownerJoin, "from"))

	likeJoin := stage(t, p, 3, "$lookup")
	assert.Equal(t, "likes", lookupField(t, likeJoin, "from"))
	assert.Equal(t, "tweet", lookupField(t, likeJoin, "foreignField"))

	addFields := stage(t, p, 4, "$addFields")
	isLiked, ok := lookupField(t, addFields, "isLiked").(bson.D)
	require.True(t, ok)
	in, ok := lookupField(t, isLiked, "$in").(bson.A)
	require.True(t, ok)
	require.Len(t, in, 2)
	assert.Equal(t, viewer, in[0], "isLiked must test the requesting viewer")
	assert.Equal(t, "$likeInfo.likedBy", in[1])

	sort := stage(t, p, 6, "$sort")
	assert.Equal(t, -1, lookupField(t, sort, "createdAt"), "newest first")
}

func TestUserTweetsPipelineAnonymousViewer(t *testing.T) {
	p := userTweetsPipeline(primitive.NewObjectID(), primitive.NilObjectID)

	addFields := stage(t, p, 4, "$addFields")
	isLiked := lookupField(t, addFields, "isLiked").(bson.D)
	in := lookupField(t, isLiked, "$in").(bson.A)
	assert.Equal(t, primitive.NilObjectID, in[0], "anonymous viewer never matches a likedBy set")
}

func TestSubscribersPipeline(t *testing.T) {
	channel := primitive.NewObjectID()
	p := subscribersPipeline(channel)

	match := stage(t, p, 0, "$match")
	assert.Equal(t, channel, lookupField(t, match, "channel"))

	join := stage(t, p, 1, "$lookup")
	assert.Equal(t, "users", lookupField(t, join, "from"))
	assert.Equal(t, "subscriber", lookupField(t, join, "localField"))

	project := stage(t, p, 4, "$project")
	for _, field := range []string{"_id", "username", "fullName", "avatar"} {
		assert.Equal(t, 1, lookupField(t, project, field))
	}
}

func TestSubscribedChannelsPipeline(t *testing.T) {
	subscriber := primitive.NewObjectID()
	p := subscribedChannelsPipeline(subscriber)

	match := stage(t, p, 0, "$match")
	assert.Equal(t, subscriber, lookupField(t, match, "subscriber"))

	join := stage(t, p, 1, "$lookup")
	assert.Equal(t, "users", lookupField(t, join, "from"))

	sub, ok := lookupField(t, join, "pipeline").(mongo.Pipeline)
	require.True(t, ok, "channel lookup must carry the video sub-pipeline")

	videoJoin := stage(t, sub, 0, "$lookup")
	assert.Equal(t, "videos", lookupField(t, videoJoin, "from"))
	assert.Equal(t, "owner", lookupField(t, videoJoin, "foreignField"))

	// latestVideo must be $last (insertion order), not a createdAt max:
	// equal timestamps resolve by storage order.
	addFields := stage(t, sub, 1, "$addFields")
	latest, ok := lookupField(t, addFields, "latestVideo").(bson.D)
	require.True(t, ok)
	require.Len(t, latest, 1)
	assert.Equal(t, "$last", latest[0].Key)
	assert.Equal(t, "$allVideos", latest[0].Value)
}
