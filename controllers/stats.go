package controllers

import (
	"fmt"
	"net/http"
	"time"

	"synapshare/environment"
	"synapshare/models"

	"github.com/gin-gonic/gin"
)

// GetVisits counts the visits of a post
// http://localhost:3000/stats/visits?type=note&id=604b6859f09f3aeecc9215c5&startDT=2021-03-20
func GetVisits(c *gin.Context) {

	var (
		err      error
		apiError ErrorResponse
	)

	postType := c.Query("type")
	id := c.Query("id")
	if id == "" || !models.ValidPostType(postType) {
		apiError.Code = InvalidRequest
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusBadRequest, apiError)
		return
	}

	var startDT time.Time

	startStr := c.Query("startDT")
	if startStr == "" {
		// default: 7 days back (starting at 00:00:00)
		startDT = time.Now().AddDate(0, 0, -7)
		startDT = time.Date(startDT.Year(), startDT.Month(), startDT.Day(), 0, 0, 0, 0, startDT.UTC().Location())
	} else {
		startDT, err = time.Parse("2006-01-02", startStr) // seems magic date
		if err != nil {
			fmt.Println(err)
			apiError.Code = InvalidRequest
			apiError.Message = apiError.String(apiError.Code)
			c.JSON(http.StatusBadRequest, apiError)
			return
		}
	}

	visits, err := environment.Env.Tracker.GetVisits(postType, id, startDT)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	// wrap response into an object
	res := struct {
		Visits int64 `json:"visits"`
	}{visits}

	c.JSON(http.StatusOK, res)
}
