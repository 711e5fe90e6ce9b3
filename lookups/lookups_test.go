package lookups

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserRole(t *testing.T) {
	assert.Equal(t, "guest", UserRole(URguest))
	assert.Equal(t, "member", UserRole(URmember))
	assert.Equal(t, "admin", UserRole(URadmin))
	assert.Equal(t, "", UserRole(42))
}

func TestPostType(t *testing.T) {
	assert.Equal(t, "note", PostType(PTnote))
	assert.Equal(t, "discussion", PostType(PTdiscussion))
	assert.Equal(t, "node", PostType(PTnode))
	assert.Equal(t, "", PostType(-1))
}

func TestLookupType(t *testing.T) {
	assert.Equal(t, "user role", LookupType(LTuserRole))
	assert.Equal(t, "user language", LookupType(LTlang))
	assert.Equal(t, "post type", LookupType(LTpostType))
}
