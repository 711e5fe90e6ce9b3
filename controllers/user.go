package controllers

import (
	"net/http"

	"synapshare/apperror"
	"synapshare/authentication"
	"synapshare/environment"

	"github.com/gin-gonic/gin"
)

// GetUser sends a profile
func GetUser(c *gin.Context) {

	// userID (currentUser) could be used to check a user's permission to view another profile
	_, err := authentication.Authenticate(c.Request)
	if err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	// fehlender parameter muss nicht geprüft werden, sonst wär's eine andere route
	user, err := environment.Env.UserModel.GetUserByID(c.Param("id"))
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	// don't send password hash
	user.Password = ""

	c.JSON(http.StatusOK, &user)
}

// DeleteUser removes an account (admins only).
// The user's tokens are revoked, their content is kept
func DeleteUser(c *gin.Context) {

	credentials, err := currentUser(c)
	if err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	if !credentials.IsAdmin() {
		status, apiError := HandleError(apperror.ErrAdminRequired)
		c.JSON(status, apiError)
		return
	}

	eMail := c.Param("email")

	// look up the victim's ID before the account is gone (token registry is keyed by ID)
	user, err := environment.Env.UserModel.GetUserByEMail(eMail)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	err = environment.Env.UserModel.DeleteUserByEMail(eMail)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	// log the deleted account out everywhere
	authentication.DeleteUserAuths(user.ID.Hex())

	c.JSON(http.StatusOK, Deleted{"User deleted"})
}
