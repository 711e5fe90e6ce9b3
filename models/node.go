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

// Node is the "interface" used for client communication (projects/ideas)
type Node struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	CodeSnippet string             `json:"codeSnippet" bson:"codeSnippet"`
	PostedBy    string             `json:"postedBy" bson:"postedBy"` // owner eMail, set once at creation
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	Text        string             `json:"text" bson:"text"` // de-norm for the over-all search
	UpVotes     int32              `json:"upVotes" bson:"upVotes"`
	DownVotes   int32              `json:"downVotes" bson:"downVotes"`
	UpVoters    []string           `json:"-" bson:"upVoters"`
	DownVoters  []string           `json:"-" bson:"downVoters"`
}

// NodeUpdate carries a partial edit; empty fields keep their previous values
type NodeUpdate struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CodeSnippet string `json:"codeSnippet"`
}

// NodeModel provides the logic to the interface and access to the database
type NodeModel struct {
	Collection *mongo.Collection
}

// Validate checks given values and sets defaults where applicable (immutable)
func (m NodeModel) Validate(node Node) (*Node, error) {

	cleaned := node

	cleaned.Title = strings.TrimSpace(cleaned.Title)
	if cleaned.Title == "" {
		return nil, ErrTitleMissing
	}

	cleaned.Description = strings.TrimSpace(cleaned.Description)
	if cleaned.Description == "" {
		return nil, ErrDescriptionMissing
	}

	// the code snippet is optional and kept verbatim (whitespace matters)

	return &cleaned, nil
}

// Create adds a new node - validated by controller
func (m NodeModel) Create(node *Node, ownerEMail string) (string, error) {

	// set "system-fields"
	node.ID = primitive.NewObjectID()
	node.PostedBy = ownerEMail
	node.CreatedAt = time.Now()
	node.Text = nodeText(node.Title, node.Description)
	node.UpVotes = 0
	node.DownVotes = 0
	node.UpVoters = []string{}
	node.DownVoters = []string{}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	res, err := m.Collection.InsertOne(ctx, node)
	if err != nil {
		return "", helpers.WrapError(err, helpers.FuncName())
	}

	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// List returns the newest nodes (page size fixed, see searchLimit)
func (m NodeModel) List() ([]Node, error) {
	return m.find(bson.D{})
}

// Search filters the collection by the de-normalized text field
func (m NodeModel) Search(searchTerm string) ([]Node, error) {
	return m.find(searchFilter(searchTerm))
}

// GetNode returns one
func (m NodeModel) GetNode(nodeID string) (*Node, error) {

	id, err := primitive.ObjectIDFromHex(nodeID)
	if err != nil {
		return nil, apperror.ErrNoData
	}

	data := Node{}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	err = m.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&data)
	if err != nil {
		return nil, apperror.ErrNoData
	}

	return &data, nil
}

// Update edits a node (owner only). Fields missing in the request keep their
// previous values; the search text is recomputed within the same write
func (m NodeModel) Update(nodeID string, changes NodeUpdate, credentials *authorization.Credentials) (*Node, error) {

	current, err := m.GetNode(nodeID)
	if err != nil {
		return nil, err
	}

	if !credentials.Owns(current.PostedBy) {
		return nil, apperror.ErrDenied
	}

	fields := bson.D{
		{Key: "$set", Value: mergedNodeFields(current, &changes)},
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

	return m.GetNode(nodeID)
}

// Delete removes a node. The owner route requires ownership, the admin route
// requires the admin role claim
func (m NodeModel) Delete(nodeID string, credentials *authorization.Credentials, adminRoute bool) error {
	return deleteContent(m.Collection, nodeID, "postedBy", credentials, adminRoute)
}

// internal find used by List & Search
func (m NodeModel) find(filter bson.D) ([]Node, error) {

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

	var nodes []Node

	err = cursor.All(ctx, &nodes)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	// check for empty result set (no error raised by find)
	if nodes == nil {
		return nil, apperror.ErrNoData
	}

	return nodes, nil
}

// nodeText derives the search text of a node
func nodeText(title string, description string) string {
	return title + " " + description
}

// mergedNodeFields applies the partial update over the current document and
// recomputes the derived text, so the source fields and text can never
// drift apart
func mergedNodeFields(current *Node, changes *NodeUpdate) bson.D {

	title := current.Title
	if strings.TrimSpace(changes.Title) != "" {
		title = strings.TrimSpace(changes.Title)
	}

	description := current.Description
	if strings.TrimSpace(changes.Description) != "" {
		description = strings.TrimSpace(changes.Description)
	}

	codeSnippet := current.CodeSnippet
	if changes.CodeSnippet != "" {
		codeSnippet = changes.CodeSnippet
	}

	return bson.D{
		{Key: "title", Value: title},
		{Key: "description", Value: description},
		{Key: "codeSnippet", Value: codeSnippet},
		{Key: "text", Value: nodeText(title, description)},
	}
}
