package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestVoteFilter(t *testing.T) {
	oid := primitive.NewObjectID()

	m := asMap(voteFilter(oid, "a@b.c"))
	assert.Equal(t, oid, m["_id"])

	// the user must be absent from both partitions for the update to match
	up := asMap(m["upVoters"].(primitive.D))
	assert.Equal(t, "a@b.c", up["$ne"])

	down := asMap(m["downVoters"].(primitive.D))
	assert.Equal(t, "a@b.c", down["$ne"])
}

func TestVoteUpdate(t *testing.T) {
	d, err := voteUpdate(VoteUp, "a@b.c")
	require.NoError(t, err)
	m := asMap(d)
	assert.Contains(t, m, "$addToSet")
	assert.Contains(t, m, "$inc")

	inc := asMap(m["$inc"].(primitive.D))
	assert.Equal(t, int32(1), inc["upVotes"])

	d, err = voteUpdate(VoteDown, "a@b.c")
	require.NoError(t, err)
	inc = asMap(asMap(d)["$inc"].(primitive.D))
	assert.Equal(t, int32(1), inc["downVotes"])

	_, err = voteUpdate(VoteNeutral, "a@b.c")
	assert.Equal(t, ErrInvalidVote, err)

	_, err = voteUpdate(5, "a@b.c")
	assert.Equal(t, ErrInvalidVote, err)
}

func TestProfileVotes(t *testing.T) {
	state := &voterState{
		UpVotes:    2,
		DownVotes:  1,
		UpVoters:   []string{"a@b.c", "x@y.z"},
		DownVoters: []string{"q@r.s"},
	}

	pv := profileVotes(state, "a@b.c")
	assert.Equal(t, int32(2), pv.UpVotes)
	assert.Equal(t, int32(1), pv.DownVotes)
	assert.Equal(t, VoteUp, pv.UserVote)

	pv = profileVotes(state, "q@r.s")
	assert.Equal(t, VoteDown, pv.UserVote)

	pv = profileVotes(state, "nobody@nowhere")
	assert.Equal(t, VoteNeutral, pv.UserVote)
}

// A vote is one conditional write: the filter only matches while the user is
// absent from BOTH partitions, and the update adds exactly one membership and
// one counter increment. So N distinct users can never produce more than N
// counted votes, and a second attempt in either direction matches nothing
func TestOneShotVoteComposition(t *testing.T) {
	tests := []struct {
		vote       int32
		votersKey  string
		counterKey string
	}{
		{VoteUp, "upVoters", "upVotes"},
		{VoteDown, "downVoters", "downVotes"},
	}

	oid := primitive.NewObjectID()

	for _, tt := range tests {
		filter := asMap(voteFilter(oid, "a@b.c"))

		// the guard covers both partitions, independent of the direction voted
		for _, partition := range []string{"upVoters", "downVoters"} {
			cond := asMap(filter[partition].(primitive.D))
			assert.Equal(t, "a@b.c", cond["$ne"], partition)
		}

		update, err := voteUpdate(tt.vote, "a@b.c")
		require.NoError(t, err)
		m := asMap(update)

		// exactly one membership and one increment, both on the voted partition
		assert.Len(t, update, 2)
		add := asMap(m["$addToSet"].(primitive.D))
		assert.Len(t, add, 1)
		assert.Equal(t, "a@b.c", add[tt.votersKey])

		inc := asMap(m["$inc"].(primitive.D))
		assert.Len(t, inc, 1)
		assert.Equal(t, int32(1), inc[tt.counterKey])
	}
}

func TestCastVoteUnknownPostType(t *testing.T) {
	v := VoteModel{Collections: map[string]*mongo.Collection{}}

	_, err := v.CastVote("course", primitive.NewObjectID().Hex(), "a@b.c", VoteUp)
	assert.Equal(t, ErrInvalidPostType, err)
}
