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
	"github.com/edusparsh/erp_backend/utils"
)

// zoneRequest is the zone create/update payload.
type zoneRequest struct {
	Name    string   `json:"name"`
	Code    string   `json:"code"`
	Centres []string `json:"centres"`
}

// GetZoneList lists zones.
func GetZoneList(c *gin.Context) {
	ctx := repository.GetContext()
	findOptions := options.Find().SetSort(bson.M{"name": 1})

	cursor, err := repository.Collection(repository.ZonesCollection).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	var zones []models.Zone
	if err := cursor.All(ctx, &zones); err != nil {
		utils.HandleError(c, err)
		return
	}
	if zones == nil {
		zones = []models.Zone{}
	}

	utils.SuccessResponse(c, zones, "")
}

// CreateZone creates a zone with an optional initial centre set.
func CreateZone(c *gin.Context) {
	var req zoneRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		utils.HandleError(c, utils.CreateValidationError("name is required"))
		return
	}

	centres, err := parseCentreIDs(req.Centres)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	now := time.Now()
	zone := models.Zone{
		Name:      req.Name,
		Code:      req.Code,
		Centres:   centres,
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx := repository.GetContext()
	result, err := repository.Collection(repository.ZonesCollection).InsertOne(ctx, zone)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	zone.ID = result.InsertedID.(primitive.ObjectID)
	utils.SuccessResponse(c, zone, "zone created", http.StatusCreated)
}

// GetZoneDetail returns one zone.
func GetZoneDetail(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("invalid zone id"))
		return
	}

	ctx := repository.GetContext()
	var zone models.Zone
	err = repository.Collection(repository.ZonesCollection).FindOne(ctx, bson.M{"_id": objID}).Decode(&zone)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("zone"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, zone, "")
}

// UpdateZone edits a zone, including reassigning its centre set.
func UpdateZone(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("invalid zone id"))
		return
	}

	var req zoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.CreateValidationError("invalid request body"))
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.Name != "" {
		update["name"] = req.Name
	}
	if req.Code != "" {
		update["code"] = req.Code
	}
	if req.Centres != nil {
		centres, err := parseCentreIDs(req.Centres)
		if err != nil {
			utils.HandleError(c, err)
			return
		}
		update["centres"] = centres
	}

	ctx := repository.GetContext()
	result, err := repository.Collection(repository.ZonesCollection).UpdateOne(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": update},
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.MatchedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("zone"))
		return
	}

	utils.SuccessResponse(c, nil, "zone updated")
}

// DeleteZone removes a zone. A zone that still owns centres cannot be
// deleted; its centres must be unassigned first.
func DeleteZone(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("invalid zone id"))
		return
	}

	ctx := repository.GetContext()

	var zone models.Zone
	err = repository.Collection(repository.ZonesCollection).FindOne(ctx, bson.M{"_id": objID}).Decode(&zone)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("zone"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	if !zone.Deletable() {
		utils.HandleError(c, utils.CreateBadRequestError("zone still has assigned centres; unassign them before deleting"))
		return
	}

	_, err = repository.Collection(repository.ZonesCollection).DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, nil, "zone deleted")
}

// parseCentreIDs parses hex centre ids, rejecting invalid ones.
func parseCentreIDs(ids []string) ([]primitive.ObjectID, error) {
	centres := make([]primitive.ObjectID, 0, len(ids))
	for _, idStr := range ids {
		id, err := primitive.ObjectIDFromHex(idStr)
		if err != nil {
			return nil, utils.CreateValidationError("invalid centre id: " + idStr)
		}
		centres = append(centres, id)
	}
	return centres, nil
}
