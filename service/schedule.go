package service

import (
	"context"
	"time"

	"github.com/edusparsh/erp_backend/config"
	"github.com/edusparsh/erp_backend/models"
	"github.com/edusparsh/erp_backend/repository"
	"github.com/edusparsh/erp_backend/utils"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
)

// StartScheduler registers the nightly maintenance jobs and starts the cron
// runner. Returned so main can Stop it on shutdown.
func StartScheduler() *cron.Cron {
	c := cron.New()

	// 02:30 — re-presign recording URLs before they expire.
	c.AddFunc("30 2 * * *", RefreshExpiringRecordingURLs)

	// 03:00 — overdue follow-up sweep.
	c.AddFunc("0 3 * * *", SweepOverdueFollowUps)

	c.Start()
	utils.Logger.Info().Msg("scheduler started")
	return c
}

// RefreshExpiringRecordingURLs re-presigns recording URLs expiring within
// 24 hours so the frontend never hands out dead links.
func RefreshExpiringRecordingURLs() {
	storage := Recordings()
	if storage == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cutoff := time.Now().Add(24 * time.Hour)
	filter := bson.M{"recordings.urlExpiresAt": bson.M{"$lte": cutoff}}

	cursor, err := repository.Collection(repository.LeadsCollection).Find(ctx, filter)
	if err != nil {
		utils.LogError(err, nil, "recording refresh sweep query failed")
		return
	}
	defer cursor.Close(ctx)

	var leads []models.Lead
	if err := cursor.All(ctx, &leads); err != nil {
		utils.LogError(err, nil, "recording refresh sweep decode failed")
		return
	}

	refreshed := 0
	for _, lead := range leads {
		recordings := RefreshRecordingURLs(ctx, lead.Recordings)
		_, err := repository.Collection(repository.LeadsCollection).UpdateOne(
			ctx,
			bson.M{"_id": lead.ID},
			bson.M{"$set": bson.M{"recordings": recordings}},
		)
		if err != nil {
			utils.LogError(err, map[string]interface{}{"leadId": lead.ID.Hex()}, "failed to store refreshed recording urls")
			continue
		}
		refreshed++
	}

	utils.Logger.Info().Int("leads", refreshed).Msg("recording url refresh sweep done")
}

// SweepOverdueFollowUps raises a red flag against telecallers whose leads
// have a nextFollowUpDate that passed yesterday with no follow-up since.
// Red flags cap at the configured maximum; resets are an explicit admin
// action.
func SweepOverdueFollowUps() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// "Overdue" means the scheduled day has fully passed in the business
	// timezone, not in the server's.
	cutoff := utils.StartOfDay(time.Now().In(config.LoadConfig().Location()))
	filter := bson.M{
		"nextFollowUpDate":   bson.M{"$lt": cutoff},
		"isCounseled":        bson.M{"$ne": true},
		"leadResponsibility": bson.M{"$ne": ""},
		"$or": []bson.M{
			{"lastFollowUpDate": bson.M{"$exists": false}},
			{"$expr": bson.M{"$lt": []interface{}{"$lastFollowUpDate", "$nextFollowUpDate"}}},
		},
	}

	cursor, err := repository.Collection(repository.LeadsCollection).Find(ctx, filter)
	if err != nil {
		utils.LogError(err, nil, "overdue follow-up sweep query failed")
		return
	}
	defer cursor.Close(ctx)

	var leads []models.Lead
	if err := cursor.All(ctx, &leads); err != nil {
		utils.LogError(err, nil, "overdue follow-up sweep decode failed")
		return
	}

	// One flag per telecaller per sweep, however many leads slipped.
	flagged := make(map[string]bool)
	for _, lead := range leads {
		name := lead.LeadResponsibility
		if name == "" || flagged[name] {
			continue
		}
		flagged[name] = true

		_, err := repository.Collection(repository.UsersCollection).UpdateOne(
			ctx,
			bson.M{
				"name":     CaseInsensitiveExact(name),
				"role":     models.UserRoleTELECALLER,
				"redFlags": bson.M{"$lt": models.MaxRedFlags},
			},
			bson.M{
				"$inc": bson.M{"redFlags": 1},
				"$set": bson.M{"updatedAt": time.Now()},
			},
		)
		if err != nil {
			utils.LogError(err, map[string]interface{}{"telecaller": name}, "failed to raise red flag")
		}
	}

	utils.Logger.Info().
		Int("overdueLeads", len(leads)).
		Int("telecallersFlagged", len(flagged)).
		Msg("overdue follow-up sweep done")
}
