package controllers

import (
	"net/http"

	"synapshare/apperror"
	"synapshare/environment"
	"synapshare/models"

	"github.com/gin-gonic/gin"
)

// SearchResult aggregates the matches over all content kinds
type SearchResult struct {
	Notes       []models.Note       `json:"notes"`
	Discussions []models.Discussion `json:"discussions"`
	Nodes       []models.Node       `json:"nodes"`
}

// Search runs the over-all text search
// format => http://localhost:3000/search?q=mongodb
func Search(c *gin.Context) {

	var (
		err    error
		result SearchResult
	)

	searchTerm := c.Query("q")

	// empty collections are not an error here - the client gets empty lists
	result.Notes, err = environment.Env.NoteModel.Search(searchTerm)
	if err != nil && err != apperror.ErrNoData {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}
	if result.Notes == nil {
		result.Notes = []models.Note{}
	}

	result.Discussions, err = environment.Env.DiscussionModel.Search(searchTerm)
	if err != nil && err != apperror.ErrNoData {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}
	if result.Discussions == nil {
		result.Discussions = []models.Discussion{}
	}

	result.Nodes, err = environment.Env.NodeModel.Search(searchTerm)
	if err != nil && err != apperror.ErrNoData {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}
	if result.Nodes == nil {
		result.Nodes = []models.Node{}
	}

	environment.Env.Tracker.SaveSearch(searchTerm,
		len(result.Notes)+len(result.Discussions)+len(result.Nodes))

	c.JSON(http.StatusOK, result)
}
