package models

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// asMap flattens a bson.D for assertions
func asMap(d bson.D) map[string]interface{} {
	m := make(map[string]interface{})
	for _, e := range d {
		m[e.Key] = e.Value
	}
	return m
}

func TestValidateNote(t *testing.T) {
	m := NoteModel{}

	_, err := m.Validate(Note{Title: "  ", Subject: "math"})
	assert.Equal(t, ErrTitleMissing, err)

	_, err = m.Validate(Note{Title: "binomials", Subject: ""})
	assert.Equal(t, ErrSubjectMissing, err)

	note, err := m.Validate(Note{Title: " binomials ", Subject: " math "})
	require.NoError(t, err)
	assert.Equal(t, "binomials", note.Title)
	assert.Equal(t, "math", note.Subject)
}

func TestValidateDiscussion(t *testing.T) {
	m := DiscussionModel{}

	_, err := m.Validate(Discussion{Title: "", Content: "text"})
	assert.Equal(t, ErrTitleMissing, err)

	_, err = m.Validate(Discussion{Title: "go vs rust", Content: " "})
	assert.Equal(t, ErrContentMissing, err)

	d, err := m.Validate(Discussion{Title: "go vs rust", Content: "fight"})
	require.NoError(t, err)
	assert.Equal(t, "go vs rust", d.Title)
}

func TestValidateNode(t *testing.T) {
	m := NodeModel{}

	_, err := m.Validate(Node{Title: "", Description: "desc"})
	assert.Equal(t, ErrTitleMissing, err)

	_, err = m.Validate(Node{Title: "tool", Description: ""})
	assert.Equal(t, ErrDescriptionMissing, err)

	// code snippet is optional and kept verbatim
	n, err := m.Validate(Node{Title: "tool", Description: "a cli", CodeSnippet: "  func main() {}\n"})
	require.NoError(t, err)
	assert.Equal(t, "  func main() {}\n", n.CodeSnippet)
}

func TestMergedNoteFields(t *testing.T) {
	current := &Note{Title: "old title", Subject: "math", FileURL: "http://x/f.pdf"}

	// empty fields keep their previous values
	fields := mergedNoteFields(current, &NoteUpdate{})
	m := asMap(fields)
	assert.Equal(t, "old title", m["title"])
	assert.Equal(t, "math", m["subject"])
	assert.Equal(t, "http://x/f.pdf", m["fileUrl"])
	assert.Equal(t, "old title", m["text"])

	// changed title recomputes the search text in the same set
	fields = mergedNoteFields(current, &NoteUpdate{Title: "new title"})
	m = asMap(fields)
	assert.Equal(t, "new title", m["title"])
	assert.Equal(t, "new title", m["text"])
	assert.Equal(t, "math", m["subject"])
}

func TestMergedDiscussionFields(t *testing.T) {
	current := &Discussion{Title: "t", Content: "c"}

	fields := mergedDiscussionFields(current, &DiscussionUpdate{Content: "longer content"})
	m := asMap(fields)
	assert.Equal(t, "t", m["title"])
	assert.Equal(t, "longer content", m["content"])
	assert.Equal(t, "t longer content", m["text"])
}

func TestMergedNodeFields(t *testing.T) {
	current := &Node{Title: "t", Description: "d", CodeSnippet: "s"}

	fields := mergedNodeFields(current, &NodeUpdate{Description: "new d"})
	m := asMap(fields)
	assert.Equal(t, "t", m["title"])
	assert.Equal(t, "new d", m["description"])
	assert.Equal(t, "s", m["codeSnippet"])
	assert.Equal(t, "t new d", m["text"])
}

func TestTextDerivation(t *testing.T) {
	assert.Equal(t, "abc", noteText("abc"))
	assert.Equal(t, "a b", discussionText("a", "b"))
	assert.Equal(t, "a b", nodeText("a", "b"))
}

func TestSearchFilter(t *testing.T) {
	tests := []struct {
		term    string
		pattern string
	}{
		{"mongodb", ".*mongodb.*"},
		// metacharacters are matched literally, not interpreted
		{"c++", `.*c\+\+.*`},
		{"f(x)", `.*f\(x\).*`},
		{"[draft]", `.*\[draft\].*`},
		{"", ".*.*"},
	}

	for _, tt := range tests {
		m := asMap(searchFilter(tt.term))
		rx, ok := m["text"].(primitive.Regex)
		require.True(t, ok, tt.term)
		assert.Equal(t, tt.pattern, rx.Pattern, tt.term)
		assert.Equal(t, "i", rx.Options, tt.term)

		// the pattern must stay valid so the store never rejects the find
		re, err := regexp.Compile(rx.Pattern)
		require.NoError(t, err, tt.term)
		assert.True(t, re.MatchString("prefix "+tt.term+" suffix"), tt.term)
	}
}

func TestValidPostType(t *testing.T) {
	assert.True(t, ValidPostType(PostTypeNote))
	assert.True(t, ValidPostType(PostTypeDiscussion))
	assert.True(t, ValidPostType(PostTypeNode))
	assert.False(t, ValidPostType("course"))
	assert.False(t, ValidPostType(""))
}
