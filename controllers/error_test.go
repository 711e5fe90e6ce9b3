package controllers

import (
	"errors"
	"net/http"
	"testing"

	"synapshare/apperror"
	"synapshare/models"

	"github.com/stretchr/testify/assert"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   int32
	}{
		{apperror.ErrNoData, http.StatusNotFound, NotFound},
		{apperror.ErrDenied, http.StatusForbidden, ActionDenied},
		{apperror.ErrAdminRequired, http.StatusForbidden, AdminRequired},
		{apperror.ErrMultipleRecords, http.StatusInternalServerError, MultipleRecords},
		{models.ErrInvalidUser, http.StatusUnauthorized, InvalidLogin},
		{models.ErrUserNameNotAvailable, http.StatusBadRequest, UserNameTaken},
		{models.ErrEMailAddressTaken, http.StatusBadRequest, EMailAddressTaken},
		{models.ErrTitleMissing, http.StatusBadRequest, TitleMissing},
		{models.ErrSubjectMissing, http.StatusBadRequest, SubjectMissing},
		{models.ErrCommentEmpty, http.StatusBadRequest, CommentMissing},
		{models.ErrAlreadyVoted, http.StatusBadRequest, AlreadyVoted},
		{models.ErrInvalidPostType, http.StatusBadRequest, InvalidPostType},
		{models.ErrNewsUnavailable, http.StatusInternalServerError, NewsUnavailable},
		{errors.New("anything else"), http.StatusInternalServerError, SystemError},
	}

	for _, tt := range tests {
		status, apiError := HandleError(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.Equal(t, tt.code, apiError.Code, tt.err.Error())
		assert.NotEmpty(t, apiError.Message, tt.err.Error())
	}
}

func TestHandleErrorNil(t *testing.T) {
	status, apiError := HandleError(nil)
	assert.Equal(t, 0, status)
	assert.Equal(t, int32(0), apiError.Code)
	assert.Empty(t, apiError.Message)
}
