package controllers

import (
	"net/http"

	"synapshare/apperror"
	"synapshare/environment"

	"github.com/gin-gonic/gin"
)

// SavePost bookmarks a post for the calling user.
// Saving the same post twice is fine - the registry keeps one record
func SavePost(c *gin.Context) {

	var apiError ErrorResponse

	credentials, err := currentUser(c)
	if err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	// anonymous struct used to receive input (POST BODY)
	data := struct {
		PostType string `json:"postType" binding:"required"`
		PostID   string `json:"postId" binding:"required"`
	}{}

	// use 'shouldBind' so we can send customized messages
	if err := c.ShouldBindJSON(&data); err != nil {
		apiError.Code = InvalidJSON
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusBadRequest, apiError)
		return
	}

	saved, err := environment.Env.SavedPostModel.Save(credentials.EMail, data.PostType, data.PostID)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusCreated, saved)
}

// ListSavedPosts returns the bookmarks of the calling user
func ListSavedPosts(c *gin.Context) {

	credentials, err := currentUser(c)
	if err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	saved, err := environment.Env.SavedPostModel.ListByUser(credentials.EMail)
	if err != nil {
		// nothing found (not an error to the client)
		if err == apperror.ErrNoData {
			c.Status(http.StatusNoContent)
			return
		}
		// technical errors
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, saved)
}
