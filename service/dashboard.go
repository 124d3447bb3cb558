package service

import (
	"context"
	"time"

	"github.com/edusparsh/erp_backend/config"
	"github.com/edusparsh/erp_backend/models"
	"github.com/edusparsh/erp_backend/repository"
	"github.com/edusparsh/erp_backend/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// DashboardParams scope the dashboard aggregates.
type DashboardParams struct {
	From        *time.Time
	To          *time.Time
	TrendMonths int
	TopN        int
}

// BuildRevenueSummary shapes raw admission totals into the revenue summary
// with both numeric and Indian-unit display values.
func BuildRevenueSummary(totalFee, amountPaid float64, admissionCount int) models.RevenueSummary {
	summary := models.RevenueSummary{
		TotalRevenue:         totalFee,
		TotalRevenueDisplay:  utils.FormatIndianCurrency(totalFee),
		CollectedFees:        amountPaid,
		CollectedFeesDisplay: utils.FormatIndianCurrency(amountPaid),
		AdmissionCount:       admissionCount,
	}
	if admissionCount > 0 {
		summary.AverageTicket = totalFee / float64(admissionCount)
	}
	summary.AverageTicketDisplay = utils.FormatIndianCurrency(summary.AverageTicket)
	return summary
}

// RevenueAggregate sums admission fees under the given predicate.
func RevenueAggregate(ctx context.Context, filter bson.M) AggResult[models.RevenueSummary] {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$group", Value: bson.M{
			"_id":        nil,
			"totalFee":   bson.M{"$sum": "$totalFee"},
			"amountPaid": bson.M{"$sum": "$amountPaid"},
			"count":      bson.M{"$sum": 1},
		}}},
	}

	cursor, err := repository.Collection(repository.AdmissionsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return Failed[models.RevenueSummary]("revenue", err)
	}
	defer cursor.Close(ctx)

	var raw []struct {
		TotalFee   float64 `bson:"totalFee"`
		AmountPaid float64 `bson:"amountPaid"`
		Count      int     `bson:"count"`
	}
	if err := cursor.All(ctx, &raw); err != nil {
		return Failed[models.RevenueSummary]("revenue", err)
	}

	if len(raw) == 0 {
		return Ok(BuildRevenueSummary(0, 0, 0))
	}
	return Ok(BuildRevenueSummary(raw[0].TotalFee, raw[0].AmountPaid, raw[0].Count))
}

// FunnelAggregate counts the lead funnel stages under the given predicates.
func FunnelAggregate(ctx context.Context, leadFilter, admissionFilter bson.M) AggResult[models.FunnelSummary] {
	leads := repository.Collection(repository.LeadsCollection)

	funnel := models.FunnelSummary{}

	total, err := leads.CountDocuments(ctx, leadFilter)
	if err != nil {
		return Failed[models.FunnelSummary]("funnel", err)
	}
	funnel.TotalLeads = int(total)

	statuses := StatusDistribution(ctx, leadFilter)
	if statuses.Err != nil {
		return Failed[models.FunnelSummary]("funnel", statuses.Err)
	}
	for _, s := range statuses.Value {
		switch s.LeadType {
		case models.LeadTypeHOT:
			funnel.HotLeads = s.Count
		case models.LeadTypeCOLD:
			funnel.ColdLeads = s.Count
		case models.LeadTypeNEGATIVE:
			funnel.NegativeLeads = s.Count
		}
	}

	counseledFilter := cloneFilter(leadFilter)
	counseledFilter["isCounseled"] = true
	counseled, err := leads.CountDocuments(ctx, counseledFilter)
	if err != nil {
		return Failed[models.FunnelSummary]("funnel", err)
	}
	funnel.Counseled = int(counseled)

	admissions, err := repository.Collection(repository.AdmissionsCollection).CountDocuments(ctx, admissionFilter)
	if err != nil {
		return Failed[models.FunnelSummary]("funnel", err)
	}
	funnel.Admissions = int(admissions)

	return Ok(funnel)
}

// MonthlyTrendAggregate builds the month-over-month trend over the last n
// months, zero-filled and ordered oldest first.
func MonthlyTrendAggregate(ctx context.Context, leadFilter, admissionFilter bson.M, months int) AggResult[[]models.MonthlyTrendPoint] {
	if months <= 0 {
		months = 6
	}
	// Month keys must line up with the timezone Mongo buckets by.
	monthKeys := utils.LastNMonthKeys(time.Now().In(config.LoadConfig().Location()), months)

	leadCounts, err := MonthlyCounts(ctx, repository.LeadsCollection, leadFilter, "createdAt")
	if err != nil {
		return Failed[[]models.MonthlyTrendPoint]("monthlyTrend", err)
	}

	admissionCounts, err := MonthlyCounts(ctx, repository.AdmissionsCollection, admissionFilter, "admissionDate")
	if err != nil {
		return Failed[[]models.MonthlyTrendPoint]("monthlyTrend", err)
	}

	revenue, err := MonthlyRevenue(ctx, admissionFilter)
	if err != nil {
		return Failed[[]models.MonthlyTrendPoint]("monthlyTrend", err)
	}

	return Ok(ComposeTrend(monthKeys, leadCounts, admissionCounts, revenue))
}

// ZoneRollupAggregate builds per-zone rollups. Each zone re-runs the
// centre-scoped lead count and revenue aggregation; acceptable at the small
// number of zones this deployment has.
func ZoneRollupAggregate(ctx context.Context, scope AccessScope) AggResult[[]models.ZoneRollup] {
	cursor, err := repository.Collection(repository.ZonesCollection).Find(ctx, bson.M{})
	if err != nil {
		return Failed[[]models.ZoneRollup]("zoneRollups", err)
	}
	defer cursor.Close(ctx)

	var zones []models.Zone
	if err := cursor.All(ctx, &zones); err != nil {
		return Failed[[]models.ZoneRollup]("zoneRollups", err)
	}

	rollups := make([]models.ZoneRollup, 0, len(zones))
	for _, zone := range zones {
		centres := visibleCentres(zone.Centres, scope)

		rollup := models.ZoneRollup{
			ZoneID:      zone.ID.Hex(),
			ZoneName:    zone.Name,
			CentreCount: len(centres),
			Revenue:     BuildRevenueSummary(0, 0, 0),
		}

		if len(centres) > 0 {
			centreFilter := bson.M{"centreId": bson.M{"$in": centres}}

			leadCount, err := repository.Collection(repository.LeadsCollection).CountDocuments(ctx, centreFilter)
			if err != nil {
				return Failed[[]models.ZoneRollup]("zoneRollups", err)
			}
			rollup.LeadCount = int(leadCount)

			revenue := RevenueAggregate(ctx, centreFilter)
			if revenue.Err != nil {
				return Failed[[]models.ZoneRollup]("zoneRollups", revenue.Err)
			}
			rollup.Revenue = revenue.Value
		}

		rollups = append(rollups, rollup)
	}

	return Ok(rollups)
}

// ComposeDashboard orchestrates all dashboard sub-aggregates. Every section
// degrades independently; the names of failed sections are reported so
// callers and tests can tell degraded output from genuine zeros.
func ComposeDashboard(ctx context.Context, scope AccessScope, params DashboardParams) models.DashboardDataResponse {
	if params.TopN <= 0 {
		params.TopN = 5
	}

	leadFilter := scope.Filter()
	if dateRange := buildDateRange(params.From, params.To); dateRange != nil {
		leadFilter = cloneFilter(leadFilter)
		leadFilter["createdAt"] = dateRange
	}

	admissionFilter := admissionScopeFilter(scope)
	if dateRange := buildDateRange(params.From, params.To); dateRange != nil {
		admissionFilter["admissionDate"] = dateRange
	}

	response := models.DashboardDataResponse{}
	degraded := []string{}

	revenue := RevenueAggregate(ctx, admissionFilter)
	response.Revenue = revenue.Value
	if revenue.Err != nil {
		degraded = append(degraded, "revenue")
	}

	funnel := FunnelAggregate(ctx, leadFilter, admissionFilter)
	response.Funnel = funnel.Value
	if funnel.Err != nil {
		degraded = append(degraded, "funnel")
	}

	statuses := StatusDistribution(ctx, leadFilter)
	response.StatusDistribution = statuses.Value
	if statuses.Err != nil {
		response.StatusDistribution = ZeroFillStatusCounts(nil)
		degraded = append(degraded, "statusDistribution")
	}

	trend := MonthlyTrendAggregate(ctx, scope.Filter(), admissionScopeFilter(scope), params.TrendMonths)
	response.MonthlyTrend = trend.Value
	if trend.Err != nil {
		degraded = append(degraded, "monthlyTrend")
	}

	topCourses := TopGroupCounts(ctx, repository.AdmissionsCollection, admissionFilter, "courseName", params.TopN)
	response.TopCourses = topCourses.Value
	if topCourses.Err != nil {
		degraded = append(degraded, "topCourses")
	}

	topSources := TopGroupCounts(ctx, repository.LeadsCollection, leadFilter, "leadSource", params.TopN)
	response.TopSources = topSources.Value
	if topSources.Err != nil {
		degraded = append(degraded, "topSources")
	}

	rollups := ZoneRollupAggregate(ctx, scope)
	response.ZoneRollups = rollups.Value
	if rollups.Err != nil {
		degraded = append(degraded, "zoneRollups")
	}

	if len(degraded) > 0 {
		response.Degraded = degraded
	}
	return response
}

// admissionScopeFilter renders the scope against the admissions collection,
// which has no responsibility field.
func admissionScopeFilter(scope AccessScope) bson.M {
	if scope.Unrestricted {
		return bson.M{}
	}
	if scope.NoAccess {
		return bson.M{"_id": bson.M{"$exists": false}}
	}
	return bson.M{"centreId": bson.M{"$in": scope.CentreIn}}
}

// visibleCentres filters a zone's centres down to the scope.
func visibleCentres(centres []primitive.ObjectID, scope AccessScope) []primitive.ObjectID {
	if scope.Unrestricted {
		return centres
	}
	if scope.NoAccess {
		return nil
	}

	allowed := make(map[primitive.ObjectID]bool, len(scope.CentreIn))
	for _, id := range scope.CentreIn {
		allowed[id] = true
	}

	visible := make([]primitive.ObjectID, 0, len(centres))
	for _, id := range centres {
		if allowed[id] {
			visible = append(visible, id)
		}
	}
	return visible
}

// cloneFilter shallow-copies a filter so callers can add clauses without
// mutating a shared map.
func cloneFilter(filter bson.M) bson.M {
	clone := make(bson.M, len(filter)+1)
	for k, v := range filter {
		clone[k] = v
	}
	return clone
}
