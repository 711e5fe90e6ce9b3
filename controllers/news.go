package controllers

import (
	"net/http"

	"synapshare/environment"

	"github.com/gin-gonic/gin"
)

// GetNews passes the current technology headlines through to the client
func GetNews(c *gin.Context) {

	articles, err := environment.Env.NewsModel.GetNews()
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", articles)
}
