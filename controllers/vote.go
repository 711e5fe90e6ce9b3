package controllers

import (
	"net/http"

	"synapshare/environment"

	"github.com/gin-gonic/gin"
)

// CastVote builds the handler for a vote route. Post type and direction are
// fixed per route, the voter comes from the token - the request needs no body
func CastVote(postType string, vote int32) gin.HandlerFunc {
	return func(c *gin.Context) {

		credentials, err := currentUser(c)
		if err != nil {
			c.Status(http.StatusUnauthorized)
			return
		}

		profileVotes, err := environment.Env.VoteModel.CastVote(postType, c.Param("id"), credentials.EMail, vote)
		if err != nil {
			status, apiError := HandleError(err)
			c.JSON(status, apiError)
			return
		}

		c.JSON(http.StatusOK, profileVotes)
	}
}
