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

// SavedPost is a bookmark - a weak reference to a content document.
// The target may be deleted at any time; bookmarks are never cascaded
type SavedPost struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	UserEMail string             `json:"userEmail" bson:"userEmail"`
	PostType  string             `json:"postType" bson:"postType"` // note | discussion | node
	PostID    primitive.ObjectID `json:"postId" bson:"postId"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// SavedPostModel provides the logic to the interface and access to the database
type SavedPostModel struct {
	Collection *mongo.Collection
}

// Save bookmarks a post for a user.
// An upsert on (userEmail, postType, postId) keeps the registry free of
// duplicates - saving twice just returns the existing record
func (m SavedPostModel) Save(userEMail string, postType string, postID string) (*SavedPost, error) {

	if !ValidPostType(postType) {
		return nil, ErrInvalidPostType
	}

	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, apperror.ErrNoData
	}

	filter := bson.D{
		{Key: "userEmail", Value: userEMail},
		{Key: "postType", Value: postType},
		{Key: "postId", Value: oid},
	}

	fields := bson.D{
		{Key: "$setOnInsert", Value: bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "userEmail", Value: userEMail},
			{Key: "postType", Value: postType},
			{Key: "postId", Value: oid},
			{Key: "createdAt", Value: time.Now()},
		}},
	}

	opts := options.Update().SetUpsert(true)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	_, err = m.Collection.UpdateOne(ctx, filter, fields, opts)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	// read back what is stored (new or pre-existing)
	var saved SavedPost

	err = m.Collection.FindOne(ctx, filter).Decode(&saved)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	return &saved, nil
}

// ListByUser returns all bookmarks of a user, newest first.
// Targets are NOT checked for existence (weak references)
func (m SavedPostModel) ListByUser(userEMail string) ([]SavedPost, error) {

	sort := bson.D{
		{Key: "createdAt", Value: -1},
	}

	opts := options.Find().SetSort(sort).SetLimit(searchLimit)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	cursor, err := m.Collection.Find(ctx, bson.M{"userEmail": userEMail}, opts)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	var saved []SavedPost

	err = cursor.All(ctx, &saved)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	// check for empty result set (no error raised by find)
	if saved == nil {
		return nil, apperror.ErrNoData
	}

	return saved, nil
}
