package controllers

import (
	"fmt"
	"net/http"

	"synapshare/apperror"
	"synapshare/models"
)

// ErrorResponse is the standardized error structure which may be returned by any API
type ErrorResponse struct {
	Code    int32  `json:"code"`
	Message string `json:"msg"`
}

// HandleError encodes the std ErrorResponse
func HandleError(err error) (httpStatus int, apiError ErrorResponse) {

	if err == nil {
		apiError.Code = 0
		apiError.Message = ""

		return 0, apiError
	}

	fmt.Println(err)
	switch err {
	// system
	case apperror.ErrMultipleRecords:
		apiError.Code = MultipleRecords
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusInternalServerError
	case apperror.ErrRecordChanged:
		apiError.Code = RecordChanged
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusInternalServerError
	case apperror.ErrNoData:
		apiError.Code = NotFound
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusNotFound
	// permissions
	case apperror.ErrDenied:
		apiError.Code = ActionDenied
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusForbidden
	case apperror.ErrAdminRequired:
		apiError.Code = AdminRequired
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusForbidden
	// user
	case models.ErrUserNameNotAvailable:
		apiError.Code = UserNameTaken
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusBadRequest
	case models.ErrEMailAddressTaken:
		apiError.Code = EMailAddressTaken
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusBadRequest
	case models.ErrInvalidUser:
		apiError.Code = InvalidLogin
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusUnauthorized
	case models.ErrInvalidPassword:
		apiError.Code = InvalidPassword
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusBadRequest
	// content
	case models.ErrTitleMissing:
		apiError.Code = TitleMissing
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusBadRequest
	case models.ErrContentMissing:
		apiError.Code = ContentMissing
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusBadRequest
	case models.ErrDescriptionMissing:
		apiError.Code = DescriptionMissing
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusBadRequest
	case models.ErrSubjectMissing:
		apiError.Code = SubjectMissing
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusBadRequest
	case models.ErrCommentEmpty:
		apiError.Code = CommentMissing
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusBadRequest
	// voting
	case models.ErrAlreadyVoted:
		apiError.Code = AlreadyVoted
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusBadRequest
	case models.ErrInvalidVote:
		apiError.Code = InvalidVote
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusBadRequest
	case models.ErrInvalidPostType:
		apiError.Code = InvalidPostType
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusBadRequest
	// news proxy
	case models.ErrNewsUnavailable:
		apiError.Code = NewsUnavailable
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusInternalServerError
	default:
		apiError.Code = SystemError
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusInternalServerError
	}
	return httpStatus, apiError
}

// Application Error Codes (API Errors)
const (
	// client/api
	InvalidJSON int32 = (10000 + iota)
	InvalidRequest
	InvalidLogin
	// generic system
	MultipleRecords
	RecordChanged
	NotFound
	// permission
	ActionDenied
	AdminRequired
	// user
	UserNameTaken
	EMailAddressTaken
	InvalidPassword
	// content
	TitleMissing
	ContentMissing
	DescriptionMissing
	SubjectMissing
	CommentMissing
	// voting
	AlreadyVoted
	InvalidVote
	InvalidPostType
	// news
	NewsUnavailable
	SystemError = 99999
)

func (er ErrorResponse) String(code int32) string {
	msg := ""
	switch code {
	// common (system)
	case InvalidJSON:
		msg = "Invalid JSON"
	case InvalidRequest:
		msg = "Invalid Request" // JSON was correct, data was not
	case InvalidLogin:
		msg = "invalid user name or password"
	case MultipleRecords:
		msg = "multiple records found"
	case RecordChanged:
		msg = "record changed by another user"
	case NotFound:
		msg = "item does not exist"
	// permission (item access)
	case ActionDenied:
		msg = "update/delete action not allowed"
	case AdminRequired:
		msg = "admin role required"
	// user
	case UserNameTaken:
		msg = "user name is not available"
	case EMailAddressTaken:
		msg = "email-address is already used"
	case InvalidPassword:
		msg = "password does not meet rules"
	// content
	case TitleMissing:
		msg = "title is required"
	case ContentMissing:
		msg = "content is required"
	case DescriptionMissing:
		msg = "description is required"
	case SubjectMissing:
		msg = "subject is required"
	case CommentMissing:
		msg = "comment is required"
	// voting
	case AlreadyVoted:
		msg = "already voted on this post"
	case InvalidVote:
		msg = "invalid vote direction"
	case InvalidPostType:
		msg = "invalid post type"
	// news
	case NewsUnavailable:
		msg = "failed to fetch news"
	case SystemError:
		msg = "Server Problem"
	}

	return msg
}
