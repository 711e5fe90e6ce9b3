package environment

import (
	"os"

	"synapshare/analytics"
	"synapshare/authorization"
	"synapshare/client"
	"synapshare/database"
	"synapshare/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// FilesEndpoint is the public route of uploaded note files
const FilesEndpoint = "/files"

// Environment is used for dependency-injection (package de-coupling)
type Environment struct {
	Tracker         *analytics.Tracker
	Requests        *client.Registry
	Credentials     *authorization.Reader
	UserModel       models.UserModel
	NoteModel       models.NoteModel
	DiscussionModel models.DiscussionModel
	NodeModel       models.NodeModel
	VoteModel       models.VoteModel
	SavedPostModel  models.SavedPostModel
	NewsModel       models.NewsModel
}

// newEnv operates as the constructor to initialize the collection references (private)
func newEnv(mongoClient *mongo.Client) *Environment {
	env := &Environment{}

	db := mongoClient.Database(os.Getenv("DB_NAME"))

	notes := db.Collection("notes")
	discussions := db.Collection("discussions")
	nodes := db.Collection("nodes")

	// prepare analytics gathering (profile visits & searches)
	// always create the object so no futher checking is needed in the models
	env.Tracker = new(analytics.Tracker)
	env.Tracker.SetConnections(database.GetInfluxConnection())
	env.Tracker.VisitorAPI.WriteAPI = (*database.GetInfluxConnection()).WriteAPIBlocking(
		os.Getenv("ANALYTICS_ORG"), os.Getenv("ANALYTICS_VISITORS_BUCKET"))
	env.Tracker.VisitorAPI.QueryAPI = (*database.GetInfluxConnection()).QueryAPI(os.Getenv("ANALYTICS_ORG"))
	env.Tracker.SearchAPI.WriteAPI = (*database.GetInfluxConnection()).WriteAPIBlocking(
		os.Getenv("ANALYTICS_ORG"), os.Getenv("ANALYTICS_SEARCHES_BUCKET"))
	env.Tracker.SearchAPI.QueryAPI = (*database.GetInfluxConnection()).QueryAPI(os.Getenv("ANALYTICS_ORG"))

	// client request registry (visit de-duplication & monitoring)
	env.Requests = new(client.Registry)
	env.Requests.Initialize()

	// permission look-ups, decoupled from the user model
	env.Credentials = new(authorization.Reader)
	env.Credentials.SetConnections(map[string]*mongo.Collection{
		"users": db.Collection("users"),
	})

	env.UserModel.Client = mongoClient
	env.UserModel.Collection = db.Collection("users")

	env.NoteModel.Collection = notes
	env.DiscussionModel.Collection = discussions
	env.NodeModel.Collection = nodes

	// the vote model writes to the same collections as the content models
	env.VoteModel.Collections = map[string]*mongo.Collection{
		models.PostTypeNote:       notes,
		models.PostTypeDiscussion: discussions,
		models.PostTypeNode:       nodes,
	}

	env.SavedPostModel.Collection = db.Collection("savedPosts")

	env.NewsModel.CacheClient = database.GetRedisConnection()

	return env
}

// Env is the singleton registry
var Env *Environment

// InitializeModels injects the database connection to the models
// (do not confuse with package init)
func InitializeModels() {
	Env = newEnv(database.GetConnection())
}
