package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/edusparsh/erp_backend/config"
	"github.com/edusparsh/erp_backend/models"
	"github.com/edusparsh/erp_backend/repository"
	"github.com/edusparsh/erp_backend/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AggResult is the outcome of one sub-aggregate. Callers compose several of
// these into a response; a failed sub-aggregate degrades to its zero value
// in the payload but stays distinguishable from genuine zero data.
type AggResult[T any] struct {
	Value T
	Err   error
}

// Ok wraps a successful sub-aggregate value.
func Ok[T any](value T) AggResult[T] {
	return AggResult[T]{Value: value}
}

// Failed wraps a failed sub-aggregate, logging it once.
func Failed[T any](name string, err error) AggResult[T] {
	utils.LogError(err, map[string]interface{}{"aggregate": name}, "sub-aggregate failed")
	var zero T
	return AggResult[T]{Value: zero, Err: err}
}

// TimeOfDayWindow restricts follow-ups to a daily hour/minute window,
// evaluated in the configured timezone.
type TimeOfDayWindow struct {
	FromHour   int
	FromMinute int
	ToHour     int
	ToMinute   int
}

// FollowUpWindowParams filter the follow-up activity aggregation.
type FollowUpWindowParams struct {
	From      *time.Time
	To        *time.Time
	TimeOfDay *TimeOfDayWindow
}

// describe echoes the applied window back so clients can tell which
// filters shaped the counts. Nil when no window was requested.
func (p FollowUpWindowParams) describe() map[string]interface{} {
	if p.From == nil && p.To == nil && p.TimeOfDay == nil {
		return nil
	}
	window := map[string]interface{}{}
	if p.From != nil {
		window["from"] = utils.StartOfDay(*p.From)
	}
	if p.To != nil {
		window["to"] = utils.EndOfDay(*p.To)
	}
	if w := p.TimeOfDay; w != nil {
		window["timeOfDay"] = fmt.Sprintf("%02d:%02d-%02d:%02d", w.FromHour, w.FromMinute, w.ToHour, w.ToMinute)
	}
	return window
}

// StatusDistribution groups leads by leadType under the given predicate.
// The result always carries exactly the three known lead types, zero-filled,
// so charts never show gaps.
func StatusDistribution(ctx context.Context, filter bson.M) AggResult[[]models.StatusCount] {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$group", Value: bson.M{"_id": "$leadType", "count": bson.M{"$sum": 1}}}},
	}

	cursor, err := repository.Collection(repository.LeadsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return Failed[[]models.StatusCount]("statusDistribution", err)
	}
	defer cursor.Close(ctx)

	var raw []struct {
		ID    string `bson:"_id"`
		Count int    `bson:"count"`
	}
	if err := cursor.All(ctx, &raw); err != nil {
		return Failed[[]models.StatusCount]("statusDistribution", err)
	}

	counts := make(map[string]int, len(raw))
	for _, r := range raw {
		counts[r.ID] = r.Count
	}

	return Ok(ZeroFillStatusCounts(counts))
}

// ZeroFillStatusCounts shapes raw group counts into the fixed lead-type
// order with missing types filled as zero.
func ZeroFillStatusCounts(counts map[string]int) []models.StatusCount {
	result := make([]models.StatusCount, 0, len(models.AllLeadTypes))
	for _, lt := range models.AllLeadTypes {
		result = append(result, models.StatusCount{
			LeadType: lt,
			Count:    counts[string(lt)],
		})
	}
	return result
}

// FollowUpActivityWindow unwinds the embedded follow-up list and counts
// follow-ups inside the date range, bucketed by outcome status. The optional
// time-of-day window is evaluated in the configured timezone rather than
// with a fixed UTC offset.
func FollowUpActivityWindow(ctx context.Context, filter bson.M, params FollowUpWindowParams) AggResult[models.FollowUpActivity] {
	cfg := config.LoadConfig()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$unwind", Value: "$followUps"}},
	}

	dateMatch := bson.M{}
	if params.From != nil {
		dateMatch["$gte"] = utils.StartOfDay(*params.From)
	}
	if params.To != nil {
		dateMatch["$lte"] = utils.EndOfDay(*params.To)
	}
	if len(dateMatch) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{"followUps.date": dateMatch}}})
	}

	if w := params.TimeOfDay; w != nil {
		// Minutes-of-day in the configured zone; the server may run in UTC.
		minuteOfDay := bson.M{"$add": []interface{}{
			bson.M{"$multiply": []interface{}{
				bson.M{"$hour": bson.M{"date": "$followUps.date", "timezone": cfg.Timezone}},
				60,
			}},
			bson.M{"$minute": bson.M{"date": "$followUps.date", "timezone": cfg.Timezone}},
		}}
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{
			"$expr": bson.M{"$and": []bson.M{
				{"$gte": []interface{}{minuteOfDay, w.FromHour*60 + w.FromMinute}},
				{"$lte": []interface{}{minuteOfDay, w.ToHour*60 + w.ToMinute}},
			}},
		}}})
	}

	pipeline = append(pipeline, bson.D{{Key: "$group", Value: bson.M{
		"_id":   bson.M{"$ifNull": []interface{}{"$followUps.status", "unknown"}},
		"count": bson.M{"$sum": 1},
	}}})

	cursor, err := repository.Collection(repository.LeadsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return Failed[models.FollowUpActivity]("followUpActivity", err)
	}
	defer cursor.Close(ctx)

	var raw []struct {
		ID    string `bson:"_id"`
		Count int    `bson:"count"`
	}
	if err := cursor.All(ctx, &raw); err != nil {
		return Failed[models.FollowUpActivity]("followUpActivity", err)
	}

	activity := models.FollowUpActivity{
		ByStatus: make(map[string]int, len(raw)),
		Window:   params.describe(),
	}
	for _, r := range raw {
		activity.ByStatus[r.ID] = r.Count
		activity.Total += r.Count
	}

	return Ok(activity)
}

// TelecallerLeaderboard groups leads by responsibility with per-status
// counts and total follow-up counts, sorted by total leads descending.
func TelecallerLeaderboard(ctx context.Context, filter bson.M) AggResult[[]models.TelecallerStats] {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$group", Value: bson.M{
			"_id":        "$leadResponsibility",
			"totalLeads": bson.M{"$sum": 1},
			"hotLeads": bson.M{"$sum": bson.M{"$cond": []interface{}{
				bson.M{"$eq": []interface{}{"$leadType", string(models.LeadTypeHOT)}}, 1, 0,
			}}},
			"coldLeads": bson.M{"$sum": bson.M{"$cond": []interface{}{
				bson.M{"$eq": []interface{}{"$leadType", string(models.LeadTypeCOLD)}}, 1, 0,
			}}},
			"negativeLeads": bson.M{"$sum": bson.M{"$cond": []interface{}{
				bson.M{"$eq": []interface{}{"$leadType", string(models.LeadTypeNEGATIVE)}}, 1, 0,
			}}},
			"followUps": bson.M{"$sum": bson.M{"$size": bson.M{"$ifNull": []interface{}{"$followUps", []interface{}{}}}}},
		}}},
		{{Key: "$sort", Value: bson.M{"totalLeads": -1}}},
	}

	cursor, err := repository.Collection(repository.LeadsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return Failed[[]models.TelecallerStats]("telecallerLeaderboard", err)
	}
	defer cursor.Close(ctx)

	var stats []models.TelecallerStats
	if err := cursor.All(ctx, &stats); err != nil {
		return Failed[[]models.TelecallerStats]("telecallerLeaderboard", err)
	}

	return Ok(stats)
}

// MonthlyCounts groups documents of a collection by calendar month of the
// given date field, in the configured timezone. Keys are YYYY-MM.
func MonthlyCounts(ctx context.Context, collection string, filter bson.M, dateField string) (map[string]int, error) {
	cfg := config.LoadConfig()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format":   "%Y-%m",
				"date":     "$" + dateField,
				"timezone": cfg.Timezone,
			}},
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := repository.Collection(collection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var raw []struct {
		ID    string `bson:"_id"`
		Count int    `bson:"count"`
	}
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(raw))
	for _, r := range raw {
		counts[r.ID] = r.Count
	}
	return counts, nil
}

// MonthlyRevenue groups admission revenue by calendar month.
func MonthlyRevenue(ctx context.Context, filter bson.M) (map[string]float64, error) {
	cfg := config.LoadConfig()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format":   "%Y-%m",
				"date":     "$admissionDate",
				"timezone": cfg.Timezone,
			}},
			"revenue": bson.M{"$sum": "$amountPaid"},
		}}},
	}

	cursor, err := repository.Collection(repository.AdmissionsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var raw []struct {
		ID      string  `bson:"_id"`
		Revenue float64 `bson:"revenue"`
	}
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, err
	}

	revenue := make(map[string]float64, len(raw))
	for _, r := range raw {
		revenue[r.ID] = r.Revenue
	}
	return revenue, nil
}

// ComposeTrend shapes per-month maps into the trend series, preserving the
// caller's month order and zero-filling months with no activity.
func ComposeTrend(monthKeys []string, leads map[string]int, admissions map[string]int, revenue map[string]float64) []models.MonthlyTrendPoint {
	points := make([]models.MonthlyTrendPoint, 0, len(monthKeys))
	for _, key := range monthKeys {
		points = append(points, models.MonthlyTrendPoint{
			Month:      key,
			Leads:      leads[key],
			Admissions: admissions[key],
			Revenue:    revenue[key],
		})
	}
	return points
}

// TopGroupCounts groups by a field and returns the top n values by count,
// descending. Documents with an empty group key are skipped.
func TopGroupCounts(ctx context.Context, collection string, filter bson.M, groupField string, n int) AggResult[[]models.ChartDataItem] {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$group", Value: bson.M{"_id": "$" + groupField, "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
	}

	cursor, err := repository.Collection(collection).Aggregate(ctx, pipeline)
	if err != nil {
		return Failed[[]models.ChartDataItem]("top:"+groupField, err)
	}
	defer cursor.Close(ctx)

	var raw []struct {
		ID    interface{} `bson:"_id"`
		Count int         `bson:"count"`
	}
	if err := cursor.All(ctx, &raw); err != nil {
		return Failed[[]models.ChartDataItem]("top:"+groupField, err)
	}

	items := make([]models.ChartDataItem, 0, len(raw))
	for _, r := range raw {
		name, _ := r.ID.(string)
		if name == "" {
			continue
		}
		items = append(items, models.ChartDataItem{Name: name, Value: r.Count})
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Value > items[j].Value })
	if len(items) > n {
		items = items[:n]
	}
	return Ok(items)
}
