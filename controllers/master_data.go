package controllers

import (
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/edusparsh/erp_backend/repository"
	"github.com/edusparsh/erp_backend/service"
	"github.com/edusparsh/erp_backend/utils"
)

// MasterEntity describes one master-data collection served by the shared
// CRUD handlers. Every master router (boards, classes, courses, ...) is the
// same five endpoints over a different collection.
type MasterEntity struct {
	Collection    string
	Resource      string
	RequiredField string
}

// duplicateFilter matches a stored document carrying the same name,
// ignoring case. Metacharacters in the name are matched literally.
func (m MasterEntity) duplicateFilter(value string) bson.M {
	return bson.M{m.RequiredField: service.CaseInsensitiveExact(value)}
}

// List returns every document in the collection, newest first.
func (m MasterEntity) List(c *gin.Context) {
	ctx := repository.GetContext()
	findOptions := options.Find().SetSort(bson.M{"createdAt": -1})

	filter := bson.M{}
	if search := c.Query("search"); search != "" {
		filter[m.RequiredField] = bson.M{"$regex": regexp.QuoteMeta(search), "$options": "i"}
	}

	cursor, err := repository.Collection(m.Collection).Find(ctx, filter, findOptions)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		utils.HandleError(c, err)
		return
	}
	if docs == nil {
		docs = []bson.M{}
	}

	utils.SuccessResponse(c, docs, "")
}

// Create inserts a document after checking the required field.
func (m MasterEntity) Create(c *gin.Context) {
	var body bson.M
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.HandleError(c, utils.CreateValidationError("invalid request body"))
		return
	}

	value, ok := body[m.RequiredField].(string)
	if !ok || value == "" {
		utils.HandleError(c, utils.CreateValidationError(fmt.Sprintf("%s is required", m.RequiredField)))
		return
	}

	delete(body, "_id")
	now := time.Now()
	body["createdAt"] = now
	body["updatedAt"] = now

	ctx := repository.GetContext()

	// Master-data names are unique per collection.
	count, err := repository.Collection(m.Collection).CountDocuments(ctx, m.duplicateFilter(value))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if count > 0 {
		utils.HandleError(c, utils.CreateConflictError(fmt.Sprintf("%s with this %s already exists", m.Resource, m.RequiredField)))
		return
	}

	result, err := repository.Collection(m.Collection).InsertOne(ctx, body)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.LogDbOperation("insert", m.Collection, bson.M{m.RequiredField: value}, result.InsertedID)

	body["_id"] = result.InsertedID
	utils.SuccessResponse(c, body, m.Resource+" created", http.StatusCreated)
}

// Get returns one document by id.
func (m MasterEntity) Get(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("invalid id"))
		return
	}

	ctx := repository.GetContext()
	var doc bson.M
	err = repository.Collection(m.Collection).FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError(m.Resource))
			return
		}
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, doc, "")
}

// Update overwrites document fields from the request body.
func (m MasterEntity) Update(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("invalid id"))
		return
	}

	var body bson.M
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.HandleError(c, utils.CreateValidationError("invalid request body"))
		return
	}

	delete(body, "_id")
	delete(body, "createdAt")
	body["updatedAt"] = time.Now()

	ctx := repository.GetContext()
	result, err := repository.Collection(m.Collection).UpdateOne(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": body},
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.MatchedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError(m.Resource))
		return
	}

	utils.SuccessResponse(c, nil, m.Resource+" updated")
}

// Delete removes one document by id.
func (m MasterEntity) Delete(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("invalid id"))
		return
	}

	ctx := repository.GetContext()
	result, err := repository.Collection(m.Collection).DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.DeletedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError(m.Resource))
		return
	}

	utils.SuccessResponse(c, nil, m.Resource+" deleted")
}

// The master-data entities served by the shared handlers.
var (
	BoardEntity       = MasterEntity{Collection: repository.BoardsCollection, Resource: "board", RequiredField: "name"}
	ClassEntity       = MasterEntity{Collection: repository.ClassesCollection, Resource: "class", RequiredField: "className"}
	CourseEntity      = MasterEntity{Collection: repository.CoursesCollection, Resource: "course", RequiredField: "name"}
	SubjectEntity     = MasterEntity{Collection: repository.SubjectsCollection, Resource: "subject", RequiredField: "name"}
	BatchEntity       = MasterEntity{Collection: repository.BatchesCollection, Resource: "batch", RequiredField: "name"}
	SessionEntity     = MasterEntity{Collection: repository.SessionsCollection, Resource: "session", RequiredField: "name"}
	ScriptEntity      = MasterEntity{Collection: repository.ScriptsCollection, Resource: "script", RequiredField: "title"}
	SourceEntity      = MasterEntity{Collection: repository.SourcesCollection, Resource: "source", RequiredField: "name"}
	CoordinatorEntity = MasterEntity{Collection: repository.CoordinatorsCollection, Resource: "coordinator", RequiredField: "name"}
	RMEntity          = MasterEntity{Collection: repository.RMsCollection, Resource: "RM", RequiredField: "name"}
)
