package controllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"synapshare/apperror"
	"synapshare/authentication"
	"synapshare/environment"
	"synapshare/models"

	"github.com/gin-gonic/gin"
	"github.com/twinj/uuid"
)

// AddNote creates a new study note. The request is a multipart form
// (an optional file travels with the metadata)
func AddNote(c *gin.Context) {

	var (
		err      error
		apiError ErrorResponse
	)

	credentials, err := currentUser(c)
	if err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	// (no post body available at forms)
	data := models.Note{
		Title:   c.PostForm("title"),
		Subject: c.PostForm("subject"),
	}

	// validate request
	note, err := environment.Env.NoteModel.Validate(data)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	// the file is optional - a note can also be plain text
	file, err := c.FormFile("file")
	if err == nil {
		// generate a unique system file name, the original name is not trusted
		sysFileName := "note_" + uuid.NewV4().String() + filepath.Ext(file.Filename)

		stage := os.Getenv("UPLOAD_STAGE") + "/" + sysFileName

		// upload the file to specific stage
		err = c.SaveUploadedFile(file, stage)
		if err != nil {
			fmt.Println(err)
			apiError.Code = SystemError
			apiError.Message = apiError.String(apiError.Code)
			c.JSON(http.StatusInternalServerError, apiError)
			return
		}

		// move file to destination
		dst := os.Getenv("UPLOAD_TARGET") + "/" + sysFileName
		err = os.Rename(stage, dst)
		if err != nil {
			fmt.Println(err)
			apiError.Code = SystemError
			apiError.Message = apiError.String(apiError.Code)
			c.JSON(http.StatusInternalServerError, apiError)
			return
		}

		note.FileURL = os.Getenv("API_HOME") + ":" + os.Getenv("API_PORT") + environment.FilesEndpoint + "/" + sysFileName
	}

	id, err := environment.Env.NoteModel.Create(note, credentials.EMail)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusCreated, Created{id})
}

// ListNotes returns the newest study notes
func ListNotes(c *gin.Context) {

	notes, err := environment.Env.NoteModel.List()
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

	c.JSON(http.StatusOK, notes)
}

// GetNote returns the specified note
func GetNote(c *gin.Context) {

	var id = c.Param("id")

	data, err := environment.Env.NoteModel.GetNote(id)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	// register the visit (anonymous readers are welcome, page refreshes are not counted)
	userID, _ := authentication.Authenticate(c.Request)
	if environment.Env.Requests.Continue(c.ClientIP(), models.PostTypeNote+"_"+id) {
		environment.Env.Tracker.SaveVisitor(models.PostTypeNote, id, userID)
	}

	c.JSON(http.StatusOK, data)
}

// UpdateNote edits title & subject (owner only, partial request allowed)
func UpdateNote(c *gin.Context) {

	var (
		err      error
		data     models.NoteUpdate
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

	note, err := environment.Env.NoteModel.Update(c.Param("id"), data, credentials)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, note)
}

// DeleteNote removes a note (owner only)
func DeleteNote(c *gin.Context) {
	deleteNote(c, false)
}

// AdminDeleteNote removes any note (admin role required)
func AdminDeleteNote(c *gin.Context) {
	deleteNote(c, true)
}

func deleteNote(c *gin.Context, adminRoute bool) {

	credentials, err := currentUser(c)
	if err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	err = environment.Env.NoteModel.Delete(c.Param("id"), credentials, adminRoute)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, Deleted{"Note deleted"})
}
