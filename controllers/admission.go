package controllers

import (
	"net/http"
	"strconv"
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

// admissionRequest is the admission create/update payload.
type admissionRequest struct {
	LeadID        string     `json:"leadId"`
	StudentName   string     `json:"studentName"`
	CourseID      string     `json:"courseId"`
	CentreID      string     `json:"centreId"`
	SessionID     string     `json:"sessionId"`
	TotalFee      float64    `json:"totalFee"`
	AmountPaid    float64    `json:"amountPaid"`
	AdmissionDate *time.Time `json:"admissionDate"`
}

// GetAdmissionList lists admissions within the principal's centre scope.
func GetAdmissionList(c *gin.Context) {
	principal, err := utils.GetPrincipal(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	scope := service.ResolveAccessScope(principal)
	if scope.NoAccess {
		utils.SuccessResponse(c, []models.Admission{}, "")
		return
	}

	filter := bson.M{}
	if !scope.Unrestricted {
		filter["centreId"] = bson.M{"$in": scope.CentreIn}
	}

	page, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	if err != nil || limit < 1 {
		limit = 20
	}

	ctx := repository.GetContext()
	collection := repository.Collection(repository.AdmissionsCollection)

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	findOptions := options.Find().
		SetSort(bson.M{"admissionDate": -1}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := collection.Find(ctx, filter, findOptions)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	var admissions []models.Admission
	if err := cursor.All(ctx, &admissions); err != nil {
		utils.HandleError(c, err)
		return
	}
	if admissions == nil {
		admissions = []models.Admission{}
	}

	utils.PaginatedResponse(c, admissions, total, page, limit)
}

// CreateAdmission records an admission. When the admission references a
// lead, that lead is marked counseled so it drops out of active listings.
func CreateAdmission(c *gin.Context) {
	var req admissionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.StudentName == "" {
		utils.HandleError(c, utils.CreateValidationError("studentName is required"))
		return
	}

	now := time.Now()
	admission := models.Admission{
		StudentName:   req.StudentName,
		TotalFee:      req.TotalFee,
		AmountPaid:    req.AmountPaid,
		AdmissionDate: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.AdmissionDate != nil {
		admission.AdmissionDate = *req.AdmissionDate
	}
	if id, err := primitive.ObjectIDFromHex(req.LeadID); err == nil {
		admission.LeadID = id
	}
	if id, err := primitive.ObjectIDFromHex(req.CentreID); err == nil {
		admission.CentreID = id
	}
	if id, err := primitive.ObjectIDFromHex(req.SessionID); err == nil {
		admission.SessionID = id
	}

	ctx := repository.GetContext()

	if id, err := primitive.ObjectIDFromHex(req.CourseID); err == nil {
		admission.CourseID = id
		// Denormalise the course name for the dashboard top-courses chart.
		var course models.Course
		if err := repository.Collection(repository.CoursesCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&course); err == nil {
			admission.CourseName = course.Name
		}
	}

	result, err := repository.Collection(repository.AdmissionsCollection).InsertOne(ctx, admission)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	admission.ID = result.InsertedID.(primitive.ObjectID)

	if !admission.LeadID.IsZero() {
		_, err = repository.Collection(repository.LeadsCollection).UpdateOne(
			ctx,
			bson.M{"_id": admission.LeadID},
			bson.M{"$set": bson.M{"isCounseled": true, "updatedAt": now}},
		)
		if err != nil {
			utils.LogError(err, map[string]interface{}{"leadId": admission.LeadID.Hex()}, "failed to mark lead counseled")
		}
	}

	utils.SuccessResponse(c, admission, "admission recorded", http.StatusCreated)
}

// GetAdmissionDetail returns one admission.
func GetAdmissionDetail(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("invalid admission id"))
		return
	}

	ctx := repository.GetContext()
	var admission models.Admission
	err = repository.Collection(repository.AdmissionsCollection).FindOne(ctx, bson.M{"_id": objID}).Decode(&admission)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("admission"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, admission, "")
}

// UpdateAdmission edits an admission's fee fields.
func UpdateAdmission(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("invalid admission id"))
		return
	}

	var req admissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.CreateValidationError("invalid request body"))
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.StudentName != "" {
		update["studentName"] = req.StudentName
	}
	if req.TotalFee > 0 {
		update["totalFee"] = req.TotalFee
	}
	if req.AmountPaid > 0 {
		update["amountPaid"] = req.AmountPaid
	}
	if req.AdmissionDate != nil {
		update["admissionDate"] = *req.AdmissionDate
	}

	ctx := repository.GetContext()
	result, err := repository.Collection(repository.AdmissionsCollection).UpdateOne(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": update},
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.MatchedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("admission"))
		return
	}

	utils.SuccessResponse(c, nil, "admission updated")
}

// DeleteAdmission removes an admission record.
func DeleteAdmission(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("invalid admission id"))
		return
	}

	ctx := repository.GetContext()
	result, err := repository.Collection(repository.AdmissionsCollection).DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.DeletedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("admission"))
		return
	}

	utils.SuccessResponse(c, nil, "admission deleted")
}
