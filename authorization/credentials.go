package authorization

import (
	"context"
	"time"

	"synapshare/apperror"
	"synapshare/helpers"
	"synapshare/lookups"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Functions to check permissions
// without dependencies to the User Model

// Credentials identifies the verified caller of a request.
// Ownership of content is tracked by eMail-address, the admin role is a claim
// on the account - not a hardcoded address
type Credentials struct {
	UserID       primitive.ObjectID `bson:"-"`
	LoginName    string             `bson:"loginName"`
	EMail        string             `bson:"eMail"`
	RoleCode     int32              `bson:"roleCD"`
	LanguageCode int32              `bson:"languageCD"`
}

// IsAdmin reports whether the caller carries the admin role
func (c *Credentials) IsAdmin() bool {
	return c.RoleCode == lookups.URadmin
}

// Owns reports whether the caller created the given document
func (c *Credentials) Owns(ownerEMail string) bool {
	return c.EMail == ownerEMail
}

// Reader loads credentials for a verified user ID (read from the token)
type Reader struct {
	userCol *mongo.Collection
}

// SetConnections is called in Env Model Initializiation
func (r *Reader) SetConnections(mongoCollections map[string]*mongo.Collection) {
	r.userCol = mongoCollections["users"]
}

// GetCredentials returns account infos to control permissions and text-out (language)
func (r *Reader) GetCredentials(userID string) (*Credentials, error) {
	var credentials Credentials

	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperror.ErrNoData
	}

	fields := bson.D{
		{Key: "_id", Value: 0}, // _id kommt immer, ausser es wird explizit ausgeschlossen (0)
		{Key: "loginName", Value: 1},
		{Key: "eMail", Value: 1},
		{Key: "roleCD", Value: 1},
		{Key: "languageCD", Value: 1},
	}

	opts := options.FindOne().SetProjection(fields)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	err = r.userCol.FindOne(ctx, bson.M{"_id": userOID}, opts).Decode(&credentials)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.ErrNoData
		}
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	credentials.UserID = userOID

	return &credentials, nil
}
