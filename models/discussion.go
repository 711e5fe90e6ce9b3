package models

import (
	"context"
	"strings"
	"time"

	"synapshare/apperror"
	"synapshare/authorization"
	"synapshare/helpers"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Comment is embedded in its discussion to make queries for GET-requests
// faster. Comments are append-only: no edit, no delete
type Comment struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	Content   string             `json:"content" bson:"content"`
	PostedBy  string             `json:"postedBy" bson:"postedBy"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// Discussion is the "interface" used for client communication
type Discussion struct {
	ID         primitive.ObjectID `json:"id" bson:"_id"`
	Title      string             `json:"title" bson:"title"`
	Content    string             `json:"content" bson:"content"`
	PostedBy   string             `json:"postedBy" bson:"postedBy"` // owner eMail, set once at creation
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	Text       string             `json:"text" bson:"text"` // de-norm for the over-all search
	UpVotes    int32              `json:"upVotes" bson:"upVotes"`
	DownVotes  int32              `json:"downVotes" bson:"downVotes"`
	UpVoters   []string           `json:"-" bson:"upVoters"`
	DownVoters []string           `json:"-" bson:"downVoters"`
	Comments   []Comment          `json:"comments" bson:"comments"`
}

// DiscussionUpdate carries a partial edit; empty fields keep their previous values
type DiscussionUpdate struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// DiscussionModel provides the logic to the interface and access to the database
type DiscussionModel struct {
	Collection *mongo.Collection
}

// Validate checks given values and sets defaults where applicable (immutable)
func (m DiscussionModel) Validate(discussion Discussion) (*Discussion, error) {

	cleaned := discussion

	cleaned.Title = strings.TrimSpace(cleaned.Title)
	if cleaned.Title == "" {
		return nil, ErrTitleMissing
	}

	cleaned.Content = strings.TrimSpace(cleaned.Content)
	if cleaned.Content == "" {
		return nil, ErrContentMissing
	}

	return &cleaned, nil
}

// Create adds a new discussion - validated by controller
func (m DiscussionModel) Create(discussion *Discussion, ownerEMail string) (string, error) {

	// set "system-fields"
	discussion.ID = primitive.NewObjectID()
	discussion.PostedBy = ownerEMail
	discussion.CreatedAt = time.Now()
	discussion.Text = discussionText(discussion.Title, discussion.Content)
	discussion.UpVotes = 0
	discussion.DownVotes = 0
	discussion.UpVoters = []string{}
	discussion.DownVoters = []string{}
	discussion.Comments = []Comment{}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	res, err := m.Collection.InsertOne(ctx, discussion)
	if err != nil {
		return "", helpers.WrapError(err, helpers.FuncName())
	}

	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// List returns the newest discussions (page size fixed, see searchLimit)
func (m DiscussionModel) List() ([]Discussion, error) {
	return m.find(bson.D{})
}

// Search filters the collection by the de-normalized text field
func (m DiscussionModel) Search(searchTerm string) ([]Discussion, error) {
	return m.find(searchFilter(searchTerm))
}

// GetDiscussion returns one
func (m DiscussionModel) GetDiscussion(discussionID string) (*Discussion, error) {

	id, err := primitive.ObjectIDFromHex(discussionID)
	if err != nil {
		return nil, apperror.ErrNoData
	}

	data := Discussion{}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	err = m.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&data)
	if err != nil {
		return nil, apperror.ErrNoData
	}

	return &data, nil
}

// Update edits a discussion (owner only). Fields missing in the request keep
// their previous values; the search text is recomputed within the same write
func (m DiscussionModel) Update(discussionID string, changes DiscussionUpdate, credentials *authorization.Credentials) (*Discussion, error) {

	current, err := m.GetDiscussion(discussionID)
	if err != nil {
		return nil, err
	}

	if !credentials.Owns(current.PostedBy) {
		return nil, apperror.ErrDenied
	}

	fields := bson.D{
		{Key: "$set", Value: mergedDiscussionFields(current, &changes)},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	result, err := m.Collection.UpdateOne(ctx, bson.D{{Key: "_id", Value: current.ID}}, fields)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	if result.MatchedCount == 0 {
		return nil, apperror.ErrNoData // deleted in the meantime
	}

	return m.GetDiscussion(discussionID)
}

// Delete removes a discussion. The owner route requires ownership, the admin
// route requires the admin role claim
func (m DiscussionModel) Delete(discussionID string, credentials *authorization.Credentials, adminRoute bool) error {
	return deleteContent(m.Collection, discussionID, "postedBy", credentials, adminRoute)
}

// AddComment appends a comment to the discussion.
// A push on the parent document keeps the insertion order without any
// further sorting
func (m DiscussionModel) AddComment(discussionID string, comment *Comment, authorEMail string) (string, error) {

	oid, err := primitive.ObjectIDFromHex(discussionID)
	if err != nil {
		return "", apperror.ErrNoData
	}

	comment.ID = primitive.NewObjectID()
	comment.PostedBy = authorEMail
	comment.CreatedAt = time.Now()

	filter := bson.D{{Key: "_id", Value: oid}}
	fields := bson.D{
		{Key: "$push", Value: bson.D{
			{Key: "comments", Value: comment},
		}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	result, err := m.Collection.UpdateOne(ctx, filter, fields)
	if err != nil {
		return "", helpers.WrapError(err, helpers.FuncName())
	}

	if result.MatchedCount == 0 {
		return "", apperror.ErrNoData // document might have been deleted
	}

	return comment.ID.Hex(), nil
}

// ValidateComment checks the given comment
func (m DiscussionModel) ValidateComment(comment Comment) (*Comment, error) {

	cleaned := comment

	cleaned.Content = strings.TrimSpace(cleaned.Content)
	if cleaned.Content == "" {
		return nil, ErrCommentEmpty
	}

	return &cleaned, nil
}

// ListComments returns all comments of a discussion in insertion order
func (m DiscussionModel) ListComments(discussionID string) ([]Comment, error) {

	id, err := primitive.ObjectIDFromHex(discussionID)
	if err != nil {
		return nil, apperror.ErrNoData
	}

	// only read the embedded array
	fields := bson.D{
		{Key: "_id", Value: 0},
		{Key: "comments", Value: 1},
	}

	opts := options.FindOne().SetProjection(fields)

	data := struct {
		Comments []Comment `bson:"comments"`
	}{}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	err = m.Collection.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&data)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.ErrNoData
		}
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	if data.Comments == nil {
		data.Comments = []Comment{}
	}

	return data.Comments, nil
}

// internal find used by List & Search
func (m DiscussionModel) find(filter bson.D) ([]Discussion, error) {

	sort := bson.D{
		{Key: "createdAt", Value: -1},
	}

	opts := options.Find().SetLimit(searchLimit).SetSort(sort)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	cursor, err := m.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	var discussions []Discussion

	err = cursor.All(ctx, &discussions)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	// check for empty result set (no error raised by find)
	if discussions == nil {
		return nil, apperror.ErrNoData
	}

	return discussions, nil
}

// discussionText derives the search text of a discussion
func discussionText(title string, content string) string {
	return title + " " + content
}

// mergedDiscussionFields applies the partial update over the current document
// and recomputes the derived text, so the source fields and text can never
// drift apart
func mergedDiscussionFields(current *Discussion, changes *DiscussionUpdate) bson.D {

	title := current.Title
	if strings.TrimSpace(changes.Title) != "" {
		title = strings.TrimSpace(changes.Title)
	}

	content := current.Content
	if strings.TrimSpace(changes.Content) != "" {
		content = strings.TrimSpace(changes.Content)
	}

	return bson.D{
		{Key: "title", Value: title},
		{Key: "content", Value: content},
		{Key: "text", Value: discussionText(title, content)},
	}
}
