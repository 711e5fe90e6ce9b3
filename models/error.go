package models

import (
	"errors"
)

// custom error types (generic types found in apperror package)

// user
var (
	ErrUserNameNotAvailable = errors.New("user name is not available")
	ErrEMailAddressTaken    = errors.New("email-address is already used")
	ErrInvalidUser          = errors.New("invalid user name or password")
	ErrInvalidPassword      = errors.New("password does not meet rules")
)

// content (notes, discussions, nodes)
// transformed by controllers to respective Bad Request (400)
var (
	ErrTitleMissing       = errors.New("title is required")
	ErrContentMissing     = errors.New("content is required")
	ErrDescriptionMissing = errors.New("description is required")
	ErrSubjectMissing     = errors.New("subject is required")
)

// voting
var (
	ErrAlreadyVoted    = errors.New("user has already voted on this post")
	ErrInvalidVote     = errors.New("invalid vote direction")
	ErrInvalidPostType = errors.New("invalid post type")
)

// comment
var (
	ErrCommentEmpty = errors.New("comment is required")
)

// news proxy
var (
	ErrNewsUnavailable = errors.New("failed to fetch news")
)
