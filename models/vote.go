package models

import (
	"context"
	"time"

	"synapshare/apperror"
	"synapshare/helpers"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// vote (action) type
const (
	VoteUp      int32 = 1
	VoteDown    int32 = -1
	VoteNeutral int32 = 0 // not voted
)

// ProfileVotes represents the current state of votes related to a post
type ProfileVotes struct {
	UpVotes   int32 `json:"upVotes"`
	DownVotes int32 `json:"downVotes"`
	UserVote  int32 `json:"userVote"` // vote action of the requesting user (read from token)
}

// VoteModel provides the voting logic for all content kinds.
// Votes are embedded in the content documents (voter arrays + counters),
// so one conditional update is enough to keep them consistent
type VoteModel struct {
	Collections map[string]*mongo.Collection // keyed by post type
}

// CastVote registers a one-shot vote for/against a post.
// The filter excludes documents the user has already voted on (either
// direction), so the update is atomic with respect to concurrent voters -
// no read-check-then-write gap, no lost increments
func (v VoteModel) CastVote(postType string, postID string, voterEMail string, vote int32) (*ProfileVotes, error) {

	collection, ok := v.Collections[postType]
	if !ok {
		return nil, ErrInvalidPostType
	}

	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, apperror.ErrNoData
	}

	update, err := voteUpdate(vote, voterEMail)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	result, err := collection.UpdateOne(ctx, voteFilter(oid, voterEMail), update)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	if result.MatchedCount == 0 {
		// either the post is gone or the user has voted before -
		// look at the document to tell the two apart
		exists, err := documentExists(collection, oid)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperror.ErrNoData
		}
		return nil, ErrAlreadyVoted
	}

	return v.GetVotes(postType, postID, voterEMail)
}

// GetVotes returns the up and down votes as well as the vote of the user
func (v VoteModel) GetVotes(postType string, postID string, userEMail string) (*ProfileVotes, error) {

	collection, ok := v.Collections[postType]
	if !ok {
		return nil, ErrInvalidPostType
	}

	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, apperror.ErrNoData
	}

	fields := bson.D{
		{Key: "_id", Value: 0}, // _id kommt immer, daher explizit ausschalten
		{Key: "upVotes", Value: 1},
		{Key: "downVotes", Value: 1},
		{Key: "upVoters", Value: 1},
		{Key: "downVoters", Value: 1},
	}

	opts := options.FindOne().SetProjection(fields)

	var state voterState

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	err = collection.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&state)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.ErrNoData
		}
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	return profileVotes(&state, userEMail), nil
}

// voterState mirrors the vote fields of a content document
type voterState struct {
	UpVotes    int32    `bson:"upVotes"`
	DownVotes  int32    `bson:"downVotes"`
	UpVoters   []string `bson:"upVoters"`
	DownVoters []string `bson:"downVoters"`
}

// voteFilter matches the post only while the user is absent from both
// voter partitions
func voteFilter(oid primitive.ObjectID, voterEMail string) bson.D {
	return bson.D{
		{Key: "_id", Value: oid},
		{Key: "upVoters", Value: bson.D{{Key: "$ne", Value: voterEMail}}},
		{Key: "downVoters", Value: bson.D{{Key: "$ne", Value: voterEMail}}},
	}
}

// voteUpdate adds the voter to the matching partition and bumps the counter
// in the same write, keeping counter == partition size
func voteUpdate(vote int32, voterEMail string) (bson.D, error) {
	switch vote {
	case VoteUp:
		return bson.D{
			{Key: "$addToSet", Value: bson.D{{Key: "upVoters", Value: voterEMail}}},
			{Key: "$inc", Value: bson.D{{Key: "upVotes", Value: int32(1)}}},
		}, nil
	case VoteDown:
		return bson.D{
			{Key: "$addToSet", Value: bson.D{{Key: "downVoters", Value: voterEMail}}},
			{Key: "$inc", Value: bson.D{{Key: "downVotes", Value: int32(1)}}},
		}, nil
	}
	return nil, ErrInvalidVote
}

// profileVotes derives the response from the stored state
func profileVotes(state *voterState, userEMail string) *ProfileVotes {

	pv := &ProfileVotes{
		UpVotes:   state.UpVotes,
		DownVotes: state.DownVotes,
		UserVote:  VoteNeutral,
	}

	for _, v := range state.UpVoters {
		if v == userEMail {
			pv.UserVote = VoteUp
		}
	}
	for _, v := range state.DownVoters {
		if v == userEMail {
			pv.UserVote = VoteDown
		}
	}

	return pv
}
