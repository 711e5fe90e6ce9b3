package controllers

import (
	"net/http"

	"synapshare/apperror"
	"synapshare/authentication"
	"synapshare/environment"
	"synapshare/models"

	"github.com/gin-gonic/gin"
)

// AddNode publishes a new project idea
func AddNode(c *gin.Context) {

	var (
		err      error
		data     models.Node
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
	node, err := environment.Env.NodeModel.Validate(data)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	id, err := environment.Env.NodeModel.Create(node, credentials.EMail)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusCreated, Created{id})
}

// ListNodes returns the newest project ideas
func ListNodes(c *gin.Context) {

	nodes, err := environment.Env.NodeModel.List()
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

	c.JSON(http.StatusOK, nodes)
}

// GetNode returns the specified project idea
func GetNode(c *gin.Context) {

	var id = c.Param("id")

	data, err := environment.Env.NodeModel.GetNode(id)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	// register the visit (anonymous readers are welcome, page refreshes are not counted)
	userID, _ := authentication.Authenticate(c.Request)
	if environment.Env.Requests.Continue(c.ClientIP(), models.PostTypeNode+"_"+id) {
		environment.Env.Tracker.SaveVisitor(models.PostTypeNode, id, userID)
	}

	c.JSON(http.StatusOK, data)
}

// UpdateNode edits a project idea (owner only, partial request allowed)
func UpdateNode(c *gin.Context) {

	var (
		err      error
		data     models.NodeUpdate
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

	node, err := environment.Env.NodeModel.Update(c.Param("id"), data, credentials)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, node)
}

// DeleteNode removes a project idea (owner only)
func DeleteNode(c *gin.Context) {
	deleteNode(c, false)
}

// AdminDeleteNode removes any project idea (admin role required)
func AdminDeleteNode(c *gin.Context) {
	deleteNode(c, true)
}

func deleteNode(c *gin.Context, adminRoute bool) {

	credentials, err := currentUser(c)
	if err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	err = environment.Env.NodeModel.Delete(c.Param("id"), credentials, adminRoute)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, Deleted{"Node deleted"})
}
