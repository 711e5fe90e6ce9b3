package models

import (
	"context"
	"regexp"
	"time"

	"synapshare/apperror"
	"synapshare/authorization"
	"synapshare/helpers"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// fixed page size for listings and searches
const searchLimit = 20

// post types as stored in savedPosts and used by the vote registry
const (
	PostTypeNote       = "note"
	PostTypeDiscussion = "discussion"
	PostTypeNode       = "node"
)

// ValidPostType guards the enum
func ValidPostType(postType string) bool {
	switch postType {
	case PostTypeNote, PostTypeDiscussion, PostTypeNode:
		return true
	}
	return false
}

// searchFilter builds the case-insensitive "LIKE %term%" query on the
// de-normalized text field all content collections carry.
// The term is quoted so searches like "c++" stay plain substring matches
// and clients cannot run their own regexes against the store
func searchFilter(searchTerm string) bson.D {
	return bson.D{
		{Key: "text", Value: primitive.Regex{Pattern: ".*" + regexp.QuoteMeta(searchTerm) + ".*", Options: "i"}},
	}
}

// documentExists is used whenever an upsert operation is not applicable
func documentExists(collection *mongo.Collection, id primitive.ObjectID) (bool, error) {

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	// there seems to be no function like "exists" so a projection on just the ID is used
	fields := bson.D{
		{Key: "_id", Value: 1}}

	data := struct {
		ID primitive.ObjectID `bson:"_id"`
	}{}

	err := collection.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(fields)).Decode(&data)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return false, nil
		}
		// treat errors as a "yes" - caller should not evaluate the result in case of an error
		return true, helpers.WrapError(err, helpers.FuncName())
	}
	// no error means a document was found, hence the object exists
	return true, nil
}

// ownerOf reads just the owner field of a content document
func ownerOf(collection *mongo.Collection, id primitive.ObjectID, ownerField string) (string, error) {

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	fields := bson.D{
		{Key: "_id", Value: 0},
		{Key: ownerField, Value: 1}}

	var data bson.M

	err := collection.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(fields)).Decode(&data)
	if err != nil {
		return "", err
	}

	owner, _ := data[ownerField].(string)
	return owner, nil
}

// deleteContent implements the shared delete path of all content kinds.
// The owner route requires ownership; the admin route requires the role claim -
// the two failures stay distinguishable for the API
func deleteContent(collection *mongo.Collection, postID string, ownerField string,
	credentials *authorization.Credentials, adminRoute bool) error {

	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return apperror.ErrNoData
	}

	owner, err := ownerOf(collection, oid, ownerField)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return apperror.ErrNoData
		}
		return helpers.WrapError(err, helpers.FuncName())
	}

	if adminRoute {
		if !credentials.IsAdmin() {
			return apperror.ErrAdminRequired
		}
	} else if !credentials.Owns(owner) {
		return apperror.ErrDenied
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	result, err := collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return helpers.WrapError(err, helpers.FuncName())
	}

	if result.DeletedCount == 0 {
		return apperror.ErrNoData // already gone
	}

	return nil
}
