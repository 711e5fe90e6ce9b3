package controllers

import (
	"net/http"

	"synapshare/apperror"
	"synapshare/authentication"
	"synapshare/environment"
	"synapshare/models"

	"github.com/gin-gonic/gin"
)

// AddDiscussion opens a new thread
func AddDiscussion(c *gin.Context) {

	var (
		err      error
		data     models.Discussion
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
	discussion, err := environment.Env.DiscussionModel.Validate(data)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	id, err := environment.Env.DiscussionModel.Create(discussion, credentials.EMail)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusCreated, Created{id})
}

// ListDiscussions returns the newest threads
func ListDiscussions(c *gin.Context) {

	discussions, err := environment.Env.DiscussionModel.List()
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

	c.JSON(http.StatusOK, discussions)
}

// GetDiscussion returns the specified thread including its comments
func GetDiscussion(c *gin.Context) {

	var id = c.Param("id")

	data, err := environment.Env.DiscussionModel.GetDiscussion(id)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	// register the visit (anonymous readers are welcome, page refreshes are not counted)
	userID, _ := authentication.Authenticate(c.Request)
	if environment.Env.Requests.Continue(c.ClientIP(), models.PostTypeDiscussion+"_"+id) {
		environment.Env.Tracker.SaveVisitor(models.PostTypeDiscussion, id, userID)
	}

	c.JSON(http.StatusOK, data)
}

// UpdateDiscussion edits title & content (owner only, partial request allowed)
func UpdateDiscussion(c *gin.Context) {

	var (
		err      error
		data     models.DiscussionUpdate
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

	discussion, err := environment.Env.DiscussionModel.Update(c.Param("id"), data, credentials)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, discussion)
}

// DeleteDiscussion removes a thread (owner only)
func DeleteDiscussion(c *gin.Context) {
	deleteDiscussion(c, false)
}

// AdminDeleteDiscussion removes any thread (admin role required)
func AdminDeleteDiscussion(c *gin.Context) {
	deleteDiscussion(c, true)
}

func deleteDiscussion(c *gin.Context, adminRoute bool) {

	credentials, err := currentUser(c)
	if err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	err = environment.Env.DiscussionModel.Delete(c.Param("id"), credentials, adminRoute)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, Deleted{"Discussion deleted"})
}
