package main

import (
	"fmt"
	"log"
	"os"
	"synapshare/authentication"
	"synapshare/controllers"
	"synapshare/database"
	"synapshare/environment"
	"synapshare/middleware"
	"synapshare/models"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	router = gin.Default()
)

// wird VOR der Programmausführung (main) gerufen
// die Reihenfolge der Package-Inits ist aber undefiniert!
func init() {
	// Load Config
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}
}

func handleRequests() {
	router.Use(middleware.CORSMiddleware())

	// code/text map for clients (roles, post types, languages)
	router.GET("/lookups", controllers.ListLookups)

	// auth-related
	router.POST("/login", controllers.Login)
	router.POST("/logout", authentication.TokenAuthMiddleware(), controllers.Logout)
	router.POST("/refresh", controllers.Refresh) // nicht prüfen, ob das at noch valide ist (keine Middleware)
	router.POST("/register", controllers.Register)

	// user-mgmt
	router.GET("/users/:id", authentication.TokenAuthMiddleware(), controllers.GetUser)
	router.POST("/user/changePass", authentication.TokenAuthMiddleware(), controllers.ChangePassword)
	router.DELETE("/users/:email", authentication.TokenAuthMiddleware(), controllers.DeleteUser) // admins only

	// study notes
	// GET hat keinen BODY (Go/Gin & Postman unterstützen das zwar, Angular nicht) - deshalb Parameter
	router.GET("/notes", controllers.ListNotes)
	router.GET("/notes/:id", controllers.GetNote)
	router.POST("/notes", authentication.TokenAuthMiddleware(), controllers.AddNote)
	router.PUT("/notes/:id", authentication.TokenAuthMiddleware(), controllers.UpdateNote)
	router.DELETE("/notes/:id", authentication.TokenAuthMiddleware(), controllers.DeleteNote)
	router.POST("/notes/:id/upvote", authentication.TokenAuthMiddleware(), controllers.CastVote(models.PostTypeNote, models.VoteUp))
	router.POST("/notes/:id/downvote", authentication.TokenAuthMiddleware(), controllers.CastVote(models.PostTypeNote, models.VoteDown))

	// discussion forum
	router.GET("/discussions", controllers.ListDiscussions)
	router.GET("/discussions/:id", controllers.GetDiscussion)
	router.POST("/discussions", authentication.TokenAuthMiddleware(), controllers.AddDiscussion)
	router.PUT("/discussions/:id", authentication.TokenAuthMiddleware(), controllers.UpdateDiscussion)
	router.DELETE("/discussions/:id", authentication.TokenAuthMiddleware(), controllers.DeleteDiscussion)
	router.POST("/discussions/:id/upvote", authentication.TokenAuthMiddleware(), controllers.CastVote(models.PostTypeDiscussion, models.VoteUp))
	router.POST("/discussions/:id/downvote", authentication.TokenAuthMiddleware(), controllers.CastVote(models.PostTypeDiscussion, models.VoteDown))

	// commenting (discussions only, append-only)
	router.GET("/discussions/:id/comments", controllers.ListComments)
	router.POST("/discussions/:id/comments", authentication.TokenAuthMiddleware(), controllers.AddComment)

	// project nodes
	router.GET("/nodes", controllers.ListNodes)
	router.GET("/nodes/:id", controllers.GetNode)
	router.POST("/nodes", authentication.TokenAuthMiddleware(), controllers.AddNode)
	router.PUT("/nodes/:id", authentication.TokenAuthMiddleware(), controllers.UpdateNode)
	router.DELETE("/nodes/:id", authentication.TokenAuthMiddleware(), controllers.DeleteNode)
	router.POST("/nodes/:id/upvote", authentication.TokenAuthMiddleware(), controllers.CastVote(models.PostTypeNode, models.VoteUp))
	router.POST("/nodes/:id/downvote", authentication.TokenAuthMiddleware(), controllers.CastVote(models.PostTypeNode, models.VoteDown))

	// moderation (role checked in the handlers, not by a separate token)
	router.DELETE("/admin/notes/:id", authentication.TokenAuthMiddleware(), controllers.AdminDeleteNote)
	router.DELETE("/admin/discussions/:id", authentication.TokenAuthMiddleware(), controllers.AdminDeleteDiscussion)
	router.DELETE("/admin/nodes/:id", authentication.TokenAuthMiddleware(), controllers.AdminDeleteNode)

	// bookmarks
	router.POST("/savedPosts", authentication.TokenAuthMiddleware(), controllers.SavePost)
	router.GET("/savedPosts", authentication.TokenAuthMiddleware(), controllers.ListSavedPosts)

	// over-all text search
	router.GET("/search", controllers.Search)

	// proxied tech news (pass-through)
	router.GET("/news", controllers.GetNews)

	// statistics
	router.GET("/stats/visits", controllers.GetVisits) // visits since last 7 days "hot"

	// system tools
	router.GET("/monitor/requests/count", authentication.TokenAuthMiddleware(), controllers.CountRequests)
	router.GET("/monitor/requests/dump", authentication.TokenAuthMiddleware(), controllers.DumpRequests)
	router.POST("/monitor/requests/flush", authentication.TokenAuthMiddleware(), controllers.FlushRequests)

	// uploaded note files (stand-in for a real blob store)
	router.Static(environment.FilesEndpoint, os.Getenv("UPLOAD_TARGET"))

	switch os.Getenv("APP_ENV") {
	case "DEV":
		router.Run(":" + os.Getenv("API_PORT"))
	case "PRD":
		router.RunTLS(":"+os.Getenv("API_PORT"), os.Getenv("APP_CERTFILE"), os.Getenv("APP_KEYFILE"))
	default:
		panic(fmt.Errorf("APP_ENV must not set"))
	}
}

func main() {
	// Connect to main database here (mongoDB)
	err := database.OpenConnection()
	if err != nil {
		log.Fatal(err)
	}
	defer database.CloseConnection()

	// connect to JWT Store (redis)
	err = authentication.OpenConnection()
	if err != nil {
		log.Fatal(err)
	}
	defer authentication.CloseConnection()

	// connect to news cache (redis)
	err = database.OpenRedisConnection()
	if err != nil {
		log.Fatal(err)
	}
	defer database.CloseRedisConnection()

	// connect to Analysis-DB (influxDB)
	err = database.OpenInfluxConnection()
	if err != nil {
		log.Fatal(err)
	}
	defer database.CloseInfluxConnection()

	// Initialize the Models
	environment.InitializeModels()

	fmt.Println("SynapShare running...")
	handleRequests()
}
