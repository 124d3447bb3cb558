package controllers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/edusparsh/erp_backend/models"
	"github.com/edusparsh/erp_backend/repository"
	"github.com/edusparsh/erp_backend/service"
	"github.com/edusparsh/erp_backend/utils"
)

// GetDashboardAnalytics returns the composed dashboard. Always 200; failed
// sub-aggregates degrade to zeros and are listed under "degraded".
func GetDashboardAnalytics(c *gin.Context) {
	principal, err := utils.GetPrincipal(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	scope := service.ResolveAccessScope(principal)

	params := service.DashboardParams{}
	if fromStr := c.Query("fromDate"); fromStr != "" {
		if from, err := time.Parse("2006-01-02", fromStr); err == nil {
			params.From = &from
		}
	}
	if toStr := c.Query("toDate"); toStr != "" {
		if to, err := time.Parse("2006-01-02", toStr); err == nil {
			params.To = &to
		}
	}
	if monthsStr := c.Query("months"); monthsStr != "" {
		if months, err := strconv.Atoi(monthsStr); err == nil {
			params.TrendMonths = months
		}
	}
	if topNStr := c.Query("topN"); topNStr != "" {
		if topN, err := strconv.Atoi(topNStr); err == nil {
			params.TopN = topN
		}
	}

	ctx := repository.GetContext()
	response := service.ComposeDashboard(ctx, scope, params)

	utils.SuccessResponse(c, response, "")
}

// GetCentreLeadAnalysis returns lead analytics for one centre. The
// requested centre is intersected with the principal's scope; an
// out-of-scope centre falls back to the principal's own centre set.
func GetCentreLeadAnalysis(c *gin.Context) {
	principal, err := utils.GetPrincipal(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	centreID, err := primitive.ObjectIDFromHex(c.Param("centreId"))
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("invalid centre id"))
		return
	}

	scope := service.ResolveAccessScope(principal)
	if scope.NoAccess {
		utils.SuccessResponse(c, models.LeadAnalyticsResponse{
			StatusDistribution: service.ZeroFillStatusCounts(nil),
			FollowUpActivity:   models.FollowUpActivity{ByStatus: map[string]int{}},
			Leaderboard:        []models.TelecallerStats{},
		}, "")
		return
	}

	params := parseLeadQueryParams(c)
	params.CentreIDs = []primitive.ObjectID{centreID}
	filter := service.BuildLeadFilter(params, scope)

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

	activity := service.FollowUpActivityWindow(ctx, filter, service.FollowUpWindowParams{
		From: params.FromDate,
		To:   params.ToDate,
	})
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

// leadTypeSummary buckets the status distribution into the card counters.
// A failed distribution leaves the counters zero and is flagged as
// degraded so it cannot be mistaken for genuinely empty data.
func leadTypeSummary(total int64, statuses service.AggResult[[]models.StatusCount]) gin.H {
	summary := gin.H{
		"totalLeads":    total,
		"hotLeads":      0,
		"coldLeads":     0,
		"negativeLeads": 0,
	}
	for _, s := range statuses.Value {
		switch s.LeadType {
		case models.LeadTypeHOT:
			summary["hotLeads"] = s.Count
		case models.LeadTypeCOLD:
			summary["coldLeads"] = s.Count
		case models.LeadTypeNEGATIVE:
			summary["negativeLeads"] = s.Count
		}
	}
	if statuses.Err != nil {
		summary["degraded"] = []string{"statusDistribution"}
	}
	return summary
}

// GetDashboardSummary is the compact card-level summary: lead counts per
// type plus follow-up totals, scoped like everything else.
func GetDashboardSummary(c *gin.Context) {
	principal, err := utils.GetPrincipal(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	scope := service.ResolveAccessScope(principal)
	filter := service.BuildLeadFilter(parseLeadQueryParams(c), scope)

	ctx := repository.GetContext()

	total, err := repository.Collection(repository.LeadsCollection).CountDocuments(ctx, filter)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	statuses := service.StatusDistribution(ctx, filter)
	summary := leadTypeSummary(total, statuses)

	counseledFilter := service.BuildLeadFilter(service.LeadQueryParams{CounseledOnly: true}, scope)
	counseled, err := repository.Collection(repository.LeadsCollection).CountDocuments(ctx, counseledFilter)
	if err == nil {
		summary["counseled"] = counseled
	}

	utils.SuccessResponse(c, summary, "")
}
