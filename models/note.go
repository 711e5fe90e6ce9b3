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

// Note is the "interface" used for client communication (study materials)
type Note struct {
	ID         primitive.ObjectID `json:"id" bson:"_id"`
	Title      string             `json:"title" bson:"title"`
	FileURL    string             `json:"fileUrl" bson:"fileUrl"`
	UploadedBy string             `json:"uploadedBy" bson:"uploadedBy"` // owner eMail, set once at creation
	Subject    string             `json:"subject" bson:"subject"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	Text       string             `json:"text" bson:"text"` // de-norm for the over-all search
	UpVotes    int32              `json:"upVotes" bson:"upVotes"`
	DownVotes  int32              `json:"downVotes" bson:"downVotes"`
	UpVoters   []string           `json:"-" bson:"upVoters"`
	DownVoters []string           `json:"-" bson:"downVoters"`
}

// NoteUpdate carries a partial edit; empty fields keep their previous values
type NoteUpdate struct {
	Title   string `json:"title"`
	Subject string `json:"subject"`
	FileURL string `json:"-"` // set by the upload handling, not the client
}

// NoteModel provides the logic to the interface and access to the database
type NoteModel struct {
	Collection *mongo.Collection
}

// Validate checks given values and sets defaults where applicable (immutable)
func (m NoteModel) Validate(note Note) (*Note, error) {

	cleaned := note

	cleaned.Title = strings.TrimSpace(cleaned.Title)
	if cleaned.Title == "" {
		return nil, ErrTitleMissing
	}

	cleaned.Subject = strings.TrimSpace(cleaned.Subject)
	if cleaned.Subject == "" {
		return nil, ErrSubjectMissing
	}

	return &cleaned, nil
}

// Create adds a new note - validated by controller
func (m NoteModel) Create(note *Note, ownerEMail string) (string, error) {

	// set "system-fields"
	note.ID = primitive.NewObjectID()
	note.UploadedBy = ownerEMail
	note.CreatedAt = time.Now()
	note.Text = noteText(note.Title)
	note.UpVotes = 0
	note.DownVotes = 0
	note.UpVoters = []string{}
	note.DownVoters = []string{}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	res, err := m.Collection.InsertOne(ctx, note)
	if err != nil {
		return "", helpers.WrapError(err, helpers.FuncName())
	}

	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// List returns the newest notes (page size fixed, see searchLimit)
func (m NoteModel) List() ([]Note, error) {
	return m.find(bson.D{})
}

// Search filters the collection by the de-normalized text field
func (m NoteModel) Search(searchTerm string) ([]Note, error) {
	return m.find(searchFilter(searchTerm))
}

// GetNote returns one
func (m NoteModel) GetNote(noteID string) (*Note, error) {

	id, err := primitive.ObjectIDFromHex(noteID)
	if err != nil {
		return nil, apperror.ErrNoData
	}

	data := Note{}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	err = m.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&data)
	if err != nil {
		return nil, apperror.ErrNoData
	}

	return &data, nil
}

// Update edits a note (owner only). Fields missing in the request keep their
// previous values; the search text is recomputed within the same write
func (m NoteModel) Update(noteID string, changes NoteUpdate, credentials *authorization.Credentials) (*Note, error) {

	current, err := m.GetNote(noteID)
	if err != nil {
		return nil, err
	}

	if !credentials.Owns(current.UploadedBy) {
		return nil, apperror.ErrDenied
	}

	fields := bson.D{
		{Key: "$set", Value: mergedNoteFields(current, &changes)},
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

	return m.GetNote(noteID)
}

// Delete removes a note. The owner route requires ownership, the admin route
// requires the admin role claim
func (m NoteModel) Delete(noteID string, credentials *authorization.Credentials, adminRoute bool) error {
	return deleteContent(m.Collection, noteID, "uploadedBy", credentials, adminRoute)
}

// internal find used by List & Search
func (m NoteModel) find(filter bson.D) ([]Note, error) {

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

	var notes []Note

	err = cursor.All(ctx, &notes)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	// check for empty result set (no error raised by find)
	if notes == nil {
		return nil, apperror.ErrNoData
	}

	return notes, nil
}

// noteText derives the search text of a note (currently just the title)
func noteText(title string) string {
	return title
}

// mergedNoteFields applies the partial update over the current document and
// recomputes the derived text, so title and text can never drift apart
func mergedNoteFields(current *Note, changes *NoteUpdate) bson.D {

	title := current.Title
	if strings.TrimSpace(changes.Title) != "" {
		title = strings.TrimSpace(changes.Title)
	}

	subject := current.Subject
	if strings.TrimSpace(changes.Subject) != "" {
		subject = strings.TrimSpace(changes.Subject)
	}

	fileURL := current.FileURL
	if changes.FileURL != "" {
		fileURL = changes.FileURL
	}

	return bson.D{
		{Key: "title", Value: title},
		{Key: "subject", Value: subject},
		{Key: "fileUrl", Value: fileURL},
		{Key: "text", Value: noteText(title)},
	}
}
