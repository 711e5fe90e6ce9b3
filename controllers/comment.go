package controllers

import (
	"net/http"

	"synapshare/environment"
	"synapshare/models"

	"github.com/gin-gonic/gin"
)

// AddComment appends a reply to a discussion (append-only, no edit/delete)
func AddComment(c *gin.Context) {

	var (
		err      error
		data     models.Comment
		apiError ErrorResponse
	)

	credentials, err := currentUser(c)
	if err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	// use "shouldBind" not all fields are required in this context
	if err = c.ShouldBindJSON(&data); err != nil {
		apiError.Code = InvalidJSON
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusBadRequest, apiError)
		return
	}

	// validate request
	comment, err := environment.Env.DiscussionModel.ValidateComment(data)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	id, err := environment.Env.DiscussionModel.AddComment(c.Param("id"), comment, credentials.EMail)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusCreated, Created{id})
}

// ListComments returns all replies of a discussion in posting order
func ListComments(c *gin.Context) {

	comments, err := environment.Env.DiscussionModel.ListComments(c.Param("id"))
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, comments)
}
