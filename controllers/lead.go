package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
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

// parseLeadQueryParams reads the lead-list filters off the request.
func parseLeadQueryParams(c *gin.Context) service.LeadQueryParams {
	params := service.LeadQueryParams{
		Search:   c.Query("search"),
		LeadType: c.Query("leadType"),
	}

	if fromStr := c.Query("fromDate"); fromStr != "" {
		if from, err := time.Parse("2006-01-02", fromStr); err == nil {
			params.FromDate = &from
		}
	}
	if toStr := c.Query("toDate"); toStr != "" {
		if to, err := time.Parse("2006-01-02", toStr); err == nil {
			params.ToDate = &to
		}
	}

	for _, centreStr := range c.QueryArray("centre") {
		for _, part := range strings.Split(centreStr, ",") {
			if id, err := primitive.ObjectIDFromHex(strings.TrimSpace(part)); err == nil {
				params.CentreIDs = append(params.CentreIDs, id)
			}
		}
	}

	if courseStr := c.Query("course"); courseStr != "" {
		if id, err := primitive.ObjectIDFromHex(courseStr); err == nil {
			params.CourseID = id
		}
	}

	for _, name := range c.QueryArray("telecaller") {
		if name = strings.TrimSpace(name); name != "" {
			params.Telecallers = append(params.Telecallers, name)
		}
	}

	switch c.Query("isCounseled") {
	case "true":
		params.CounseledOnly = true
	case "all":
		params.IncludeCounseled = true
	}

	return params
}

// GetLeads lists leads visible to the principal, filtered and paginated.
func GetLeads(c *gin.Context) {
	principal, err := utils.GetPrincipal(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	scope := service.ResolveAccessScope(principal)
	if scope.NoAccess {
		// No assigned centres: an empty list, not an error.
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"data":       []models.Lead{},
			"totalLeads": 0,
			"pagination": gin.H{"total": 0, "page": 1, "limit": 10, "pages": 0},
		})
		return
	}

	params := parseLeadQueryParams(c)
	filter := service.BuildLeadFilter(params, scope)

	page, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)
	if err != nil || limit < 1 {
		limit = 10
	}

	ctx := repository.GetContext()
	collection := repository.Collection(repository.LeadsCollection)

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	findOptions := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := collection.Find(ctx, filter, findOptions)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	var leads []models.Lead
	if err := cursor.All(ctx, &leads); err != nil {
		utils.HandleError(c, err)
		return
	}
	if leads == nil {
		leads = []models.Lead{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       leads,
		"totalLeads": total,
		"pagination": gin.H{
			"total": total,
			"page":  page,
			"limit": limit,
			"pages": (total + limit - 1) / limit,
		},
	})
}

// GetLeadDetail returns one lead. Recording URLs are re-presigned on the
// way out since stored presigned URLs expire.
func GetLeadDetail(c *gin.Context) {
	principal, err := utils.GetPrincipal(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	lead, apiErr := loadScopedLead(c, principal)
	if apiErr != nil {
		utils.HandleError(c, apiErr)
		return
	}

	ctx := repository.GetContext()
	lead.Recordings = service.RefreshRecordingURLs(ctx, lead.Recordings)

	utils.SuccessResponse(c, lead, "")
}

// loadScopedLead loads a lead by path id and verifies centre/responsibility
// scope.
func loadScopedLead(c *gin.Context, principal models.Principal) (*models.Lead, error) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return nil, utils.CreateBadRequestError("invalid lead id")
	}

	ctx := repository.GetContext()
	var lead models.Lead
	err = repository.Collection(repository.LeadsCollection).FindOne(ctx, bson.M{"_id": objID}).Decode(&lead)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.CreateNotFoundError("lead")
		}
		return nil, err
	}

	scope := service.ResolveAccessScope(principal)
	if scope.NoAccess {
		return nil, utils.CreateForbiddenError()
	}
	if !scope.Unrestricted {
		if !lead.CentreID.IsZero() && !scope.AllowsCentre(lead.CentreID) {
			return nil, utils.CreateForbiddenError()
		}
		if scope.ResponsibilityEquals != "" &&
			!strings.EqualFold(lead.LeadResponsibility, scope.ResponsibilityEquals) {
			return nil, utils.CreateForbiddenError()
		}
	}

	return &lead, nil
}

// CreateLead is the lead-intake endpoint.
func CreateLead(c *gin.Context) {
	principal, err := utils.GetPrincipal(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	var req models.LeadCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.CreateValidationError(err.Error()))
		return
	}

	now := time.Now()
	lead := models.Lead{
		Name:               req.Name,
		Email:              req.Email,
		Phone:              req.Phone,
		School:             req.School,
		LeadType:           req.LeadType,
		LeadSource:         req.LeadSource,
		LeadResponsibility: req.LeadResponsibility,
		FollowUps:          []models.FollowUp{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if lead.LeadType == "" {
		lead.LeadType = models.LeadTypeCOLD
	}
	// Telecallers always own what they create.
	if principal.Role == models.UserRoleTELECALLER {
		lead.LeadResponsibility = principal.Name
		lead.TelecallerID = principal.ID
	}

	setLeadRefs(&lead, req.ClassID, req.CentreID, req.CourseID, req.BoardID)

	if lead.TelecallerID.IsZero() && lead.LeadResponsibility != "" {
		lead.TelecallerID = lookupTelecallerID(lead.LeadResponsibility)
	}

	ctx := repository.GetContext()
	result, err := repository.Collection(repository.LeadsCollection).InsertOne(ctx, lead)
	if err != nil {
		if repository.IsDuplicateKeyError(err) {
			utils.HandleError(c, utils.CreateConflictError("a lead with this phone already exists"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	lead.ID = result.InsertedID.(primitive.ObjectID)
	utils.SuccessResponse(c, lead, "lead created", http.StatusCreated)
}

// setLeadRefs parses the optional reference ids onto the lead.
func setLeadRefs(lead *models.Lead, classID, centreID, courseID, boardID string) {
	if id, err := primitive.ObjectIDFromHex(classID); err == nil {
		lead.ClassID = id
	}
	if id, err := primitive.ObjectIDFromHex(centreID); err == nil {
		lead.CentreID = id
	}
	if id, err := primitive.ObjectIDFromHex(courseID); err == nil {
		lead.CourseID = id
	}
	if id, err := primitive.ObjectIDFromHex(boardID); err == nil {
		lead.BoardID = id
	}
}

// lookupTelecallerID resolves a responsibility name to a telecaller user id
// so new rows carry the proper reference alongside the legacy name.
func lookupTelecallerID(name string) primitive.ObjectID {
	ctx := repository.GetContext()
	var user struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	err := repository.Collection(repository.UsersCollection).FindOne(ctx, bson.M{
		"name": service.CaseInsensitiveExact(name),
		"role": models.UserRoleTELECALLER,
	}).Decode(&user)
	if err != nil {
		return primitive.NilObjectID
	}
	return user.ID
}

// UpdateLead edits lead fields. Follow-ups are append-only and not
// touchable through this path.
func UpdateLead(c *gin.Context) {
	principal, err := utils.GetPrincipal(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	lead, apiErr := loadScopedLead(c, principal)
	if apiErr != nil {
		utils.HandleError(c, apiErr)
		return
	}

	var req models.LeadUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.CreateValidationError(err.Error()))
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.Name != "" {
		update["name"] = req.Name
	}
	if req.Email != "" {
		update["email"] = req.Email
	}
	if req.Phone != "" {
		update["phone"] = req.Phone
	}
	if req.School != "" {
		update["school"] = req.School
	}
	if req.LeadType != "" {
		update["leadType"] = req.LeadType
	}
	if req.LeadSource != "" {
		update["leadSource"] = req.LeadSource
	}
	if req.LeadResponsibility != "" {
		update["leadResponsibility"] = req.LeadResponsibility
		update["telecallerId"] = lookupTelecallerID(req.LeadResponsibility)
	}
	if req.IsCounseled != nil {
		update["isCounseled"] = *req.IsCounseled
	}
	if id, err := primitive.ObjectIDFromHex(req.ClassID); err == nil {
		update["classId"] = id
	}
	if id, err := primitive.ObjectIDFromHex(req.CentreID); err == nil {
		update["centreId"] = id
	}
	if id, err := primitive.ObjectIDFromHex(req.CourseID); err == nil {
		update["courseId"] = id
	}
	if id, err := primitive.ObjectIDFromHex(req.BoardID); err == nil {
		update["boardId"] = id
	}

	ctx := repository.GetContext()
	_, err = repository.Collection(repository.LeadsCollection).UpdateOne(
		ctx,
		bson.M{"_id": lead.ID},
		bson.M{"$set": update},
	)
	if err != nil {
		if repository.IsDuplicateKeyError(err) {
			utils.HandleError(c, utils.CreateConflictError("a lead with this phone already exists"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, nil, "lead updated")
}

// AddFollowUp appends a follow-up record. The append, lastFollowUpDate and
// the optional root nextFollowUpDate land in one atomic update, so two
// simultaneous submissions can never lose each other's record.
func AddFollowUp(c *gin.Context) {
	principal, err := utils.GetPrincipal(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	lead, apiErr := loadScopedLead(c, principal)
	if apiErr != nil {
		utils.HandleError(c, apiErr)
		return
	}

	var req models.AddFollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.CreateValidationError("feedback is required"))
		return
	}

	followUp, setFields := service.BuildFollowUpAppend(req, principal, time.Now())

	ctx := repository.GetContext()
	_, err = repository.Collection(repository.LeadsCollection).UpdateOne(
		ctx,
		bson.M{"_id": lead.ID},
		bson.M{
			"$push": bson.M{"followUps": followUp},
			"$set":  setFields,
		},
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, followUp, "follow-up recorded")
}

// DeleteLead hard-deletes a lead. Admin action only; routine exclusion goes
// through isCounseled instead.
func DeleteLead(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("invalid lead id"))
		return
	}

	ctx := repository.GetContext()
	result, err := repository.Collection(repository.LeadsCollection).DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.DeletedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("lead"))
		return
	}

	utils.SuccessResponse(c, nil, "lead deleted")
}

// BulkImportLeads inserts an array of lead rows. Rows with missing fields
// or duplicate phones or emails are skipped, and the endpoint answers 207
// so callers can tell a partial import from a clean one.
func BulkImportLeads(c *gin.Context) {
	var rows []models.BulkImportRow
	if err := c.ShouldBindJSON(&rows); err != nil {
		utils.HandleError(c, utils.CreateValidationError("expected an array of lead rows"))
		return
	}
	if len(rows) == 0 {
		utils.HandleError(c, utils.CreateValidationError("no rows to import"))
		return
	}

	ctx := repository.GetContext()

	phones := make([]string, 0, len(rows))
	emails := make([]string, 0, len(rows))
	for _, row := range rows {
		if p := strings.TrimSpace(row.Phone); p != "" {
			phones = append(phones, p)
		}
		if e := strings.TrimSpace(row.Email); e != "" {
			emails = append(emails, e)
		}
	}
	existingPhones, err := service.ExistingPhones(ctx, phones)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	existingEmails, err := service.ExistingEmails(ctx, emails)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	leads, skipped := service.PrepareImportRows(rows, existingPhones, existingEmails, time.Now())

	imported := 0
	if len(leads) > 0 {
		docs := make([]interface{}, len(leads))
		for i := range leads {
			docs[i] = leads[i]
		}
		// Unordered insert: one racing duplicate does not abort the rest.
		result, err := repository.Collection(repository.LeadsCollection).InsertMany(
			ctx, docs, options.InsertMany().SetOrdered(false),
		)
		if result != nil {
			imported = len(result.InsertedIDs)
		}
		if err != nil && !repository.IsDuplicateKeyError(err) && imported == 0 {
			utils.HandleError(c, err)
			return
		}
	}

	utils.LogInfo(map[string]interface{}{
		"rows":     len(rows),
		"imported": imported,
		"skipped":  len(skipped),
	}, "bulk lead import finished")

	c.JSON(http.StatusMultiStatus, gin.H{
		"success":       true,
		"importedCount": imported,
		"skippedCount":  len(rows) - imported,
		"skipped":       skipped,
	})
}

// ExportLeads streams the filtered lead list as an xlsx workbook.
func ExportLeads(c *gin.Context) {
	principal, err := utils.GetPrincipal(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	scope := service.ResolveAccessScope(principal)
	params := parseLeadQueryParams(c)
	filter := service.BuildLeadFilter(params, scope)

	ctx := repository.GetContext()
	workbook, err := service.ExportLeads(ctx, filter)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("leads-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := workbook.Write(c.Writer); err != nil {
		utils.Logger.Error().Err(err).Msg("failed to stream lead export")
	}
}

// GetLeadAnalytics returns the scoped lead analytics: status distribution,
// follow-up activity and the telecaller leaderboard. A broken sub-aggregate
// degrades to its zero value instead of failing the endpoint.
func GetLeadAnalytics(c *gin.Context) {
	principal, err := utils.GetPrincipal(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	scope := service.ResolveAccessScope(principal)
	params := parseLeadQueryParams(c)
	filter := service.BuildLeadFilter(params, scope)

	windowParams := service.FollowUpWindowParams{
		From: params.FromDate,
		To:   params.ToDate,
	}
	if window := parseTimeOfDayWindow(c); window != nil {
		windowParams.TimeOfDay = window
	}

	ctx := repository.GetContext()

	response := models.LeadAnalyticsResponse{}
	degraded := []string{}

	total, err := repository.Collection(repository.LeadsCollection).CountDocuments(ctx, filter)
	if err != nil {
		degraded = append(degraded, "totalLeads")
	}
	response.TotalLeads = total

	statuses := service.StatusDistribution(ctx, filter)
	response.StatusDistribution = statuses.Value
	if statuses.Err != nil {
		response.StatusDistribution = service.ZeroFillStatusCounts(nil)
		degraded = append(degraded, "statusDistribution")
	}

	activity := service.FollowUpActivityWindow(ctx, filter, windowParams)
	response.FollowUpActivity = activity.Value
	if activity.Err != nil {
		response.FollowUpActivity = models.FollowUpActivity{ByStatus: map[string]int{}}
		degraded = append(degraded, "followUpActivity")
	}

	leaderboard := service.TelecallerLeaderboard(ctx, filter)
	response.Leaderboard = leaderboard.Value
	if leaderboard.Err != nil {
		response.Leaderboard = []models.TelecallerStats{}
		degraded = append(degraded, "leaderboard")
	}

	if len(degraded) > 0 {
		response.Degraded = degraded
	}

	utils.SuccessResponse(c, response, "")
}

// parseTimeOfDayWindow reads the optional fromHour/toHour window params.
func parseTimeOfDayWindow(c *gin.Context) *service.TimeOfDayWindow {
	fromHourStr := c.Query("fromHour")
	toHourStr := c.Query("toHour")
	if fromHourStr == "" || toHourStr == "" {
		return nil
	}

	fromHour, err := strconv.Atoi(fromHourStr)
	if err != nil {
		return nil
	}
	toHour, err := strconv.Atoi(toHourStr)
	if err != nil {
		return nil
	}

	fromMinute, _ := strconv.Atoi(c.DefaultQuery("fromMinute", "0"))
	toMinute, _ := strconv.Atoi(c.DefaultQuery("toMinute", "59"))

	return &service.TimeOfDayWindow{
		FromHour:   fromHour,
		FromMinute: fromMinute,
		ToHour:     toHour,
		ToMinute:   toMinute,
	}
}

// AddRecording registers a call recording against a lead and hands back a
// fresh presigned URL.
func AddRecording(c *gin.Context) {
	principal, err := utils.GetPrincipal(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	lead, apiErr := loadScopedLead(c, principal)
	if apiErr != nil {
		utils.HandleError(c, apiErr)
		return
	}

	var req models.AddRecordingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.CreateValidationError("objectKey and fileName are required"))
		return
	}

	recording := models.Recording{
		ID:            primitive.NewObjectID(),
		ObjectKey:     req.ObjectKey,
		FileName:      req.FileName,
		UploadedBy:    principal.Name,
		UploadedAt:    time.Now(),
		Transcription: req.Transcription,
		AnalysisScore: req.AnalysisScore,
	}

	ctx := repository.GetContext()
	if storage := service.Recordings(); storage != nil {
		url, expiresAt, err := storage.PresignGet(ctx, req.ObjectKey)
		if err != nil {
			utils.HandleError(c, err)
			return
		}
		recording.URL = url
		recording.URLExpiresAt = expiresAt
	}

	_, err = repository.Collection(repository.LeadsCollection).UpdateOne(
		ctx,
		bson.M{"_id": lead.ID},
		bson.M{
			"$push": bson.M{"recordings": recording},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, recording, "recording registered", http.StatusCreated)
}
