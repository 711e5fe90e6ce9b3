package controllers

import (
	"synapshare/authentication"
	"synapshare/authorization"
	"synapshare/environment"

	"github.com/gin-gonic/gin"
)

// Created is the standard response for new items
type Created struct {
	ID string `json:"id"`
}

// Deleted is the standard response for removed items
type Deleted struct {
	Message string `json:"message"`
}

// currentUser verifies the token and loads the caller's credentials.
// Used by every handler that needs to evaluate ownership or the role
func currentUser(c *gin.Context) (*authorization.Credentials, error) {

	userID, err := authentication.Authenticate(c.Request)
	if err != nil {
		return nil, err
	}

	return environment.Env.Credentials.GetCredentials(userID)
}
