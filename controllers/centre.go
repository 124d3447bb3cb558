package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/edusparsh/erp_backend/models"
	"github.com/edusparsh/erp_backend/repository"
	"github.com/edusparsh/erp_backend/service"
	"github.com/edusparsh/erp_backend/utils"
)

// GetCentreList lists centres. Non-admin principals only see their own.
func GetCentreList(c *gin.Context) {
	principal, err := utils.GetPrincipal(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	filter := bson.M{}
	scope := service.ResolveAccessScope(principal)
	if scope.NoAccess {
		utils.SuccessResponse(c, []models.Centre{}, "")
		return
	}
	if !scope.Unrestricted {
		filter["_id"] = bson.M{"$in": scope.CentreIn}
	}

	ctx := repository.GetContext()
	findOptions := options.Find().SetSort(bson.M{"name": 1})

	cursor, err := repository.Collection(repository.CentresCollection).Find(ctx, filter, findOptions)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	var centres []models.Centre
	if err := cursor.All(ctx, &centres); err != nil {
		utils.HandleError(c, err)
		return
	}
	if centres == nil {
		centres = []models.Centre{}
	}

	utils.SuccessResponse(c, centres, "")
}

// CreateCentre creates a centre.
func CreateCentre(c *gin.Context) {
	var centre models.Centre
	if err := c.ShouldBindJSON(&centre); err != nil || centre.Name == "" {
		utils.HandleError(c, utils.CreateValidationError("name is required"))
		return
	}

	now := time.Now()
	centre.ID = primitive.NilObjectID
	centre.Active = true
	centre.CreatedAt = now
	centre.UpdatedAt = now

	ctx := repository.GetContext()
	result, err := repository.Collection(repository.CentresCollection).InsertOne(ctx, centre)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	centre.ID = result.InsertedID.(primitive.ObjectID)
	utils.SuccessResponse(c, centre, "centre created", http.StatusCreated)
}

// GetCentreDetail returns one centre.
func GetCentreDetail(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("invalid centre id"))
		return
	}

	ctx := repository.GetContext()
	var centre models.Centre
	err = repository.Collection(repository.CentresCollection).FindOne(ctx, bson.M{"_id": objID}).Decode(&centre)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("centre"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, centre, "")
}

// UpdateCentre edits a centre.
func UpdateCentre(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("invalid centre id"))
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
	result, err := repository.Collection(repository.CentresCollection).UpdateOne(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": body},
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.MatchedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("centre"))
		return
	}

	utils.SuccessResponse(c, nil, "centre updated")
}

// DeleteCentre removes a centre. Centres still assigned to a zone must be
// unassigned there first.
func DeleteCentre(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("invalid centre id"))
		return
	}

	ctx := repository.GetContext()

	zoneCount, err := repository.Collection(repository.ZonesCollection).CountDocuments(ctx, bson.M{"centres": objID})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if zoneCount > 0 {
		utils.HandleError(c, utils.CreateBadRequestError("centre is assigned to a zone; remove it from the zone first"))
		return
	}

	result, err := repository.Collection(repository.CentresCollection).DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.DeletedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("centre"))
		return
	}

	utils.SuccessResponse(c, nil, "centre deleted")
}
