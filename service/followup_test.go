package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/edusparsh/erp_backend/models"
)

func TestBuildFollowUpAppend(t *testing.T) {
	now := time.Date(2026, 8, 10, 11, 30, 0, 0, time.UTC)
	principal := models.Principal{
		ID:   primitive.NewObjectID(),
		Name: "Priya",
		Role: models.UserRoleTELECALLER,
	}

	t.Run("defaults the date to now and stamps the author", func(t *testing.T) {
		followUp, setFields := BuildFollowUpAppend(models.AddFollowUpRequest{
			Feedback: "spoke to parent",
			Status:   "connected",
		}, principal, now)

		assert.Equal(t, now, followUp.Date)
		assert.Equal(t, "spoke to parent", followUp.Feedback)
		assert.Equal(t, "Priya", followUp.UpdatedBy)
		assert.Equal(t, principal.ID, followUp.UpdatedById)
		assert.False(t, followUp.ID.IsZero())

		assert.Equal(t, now, setFields["lastFollowUpDate"])
		assert.Equal(t, now, setFields["updatedAt"])
		assert.NotContains(t, setFields, "nextFollowUpDate")
	})

	t.Run("explicit date drives lastFollowUpDate", func(t *testing.T) {
		date := now.AddDate(0, 0, -2)
		followUp, setFields := BuildFollowUpAppend(models.AddFollowUpRequest{
			Feedback: "call back later",
			Date:     &date,
		}, principal, now)

		assert.Equal(t, date, followUp.Date)
		assert.Equal(t, date, setFields["lastFollowUpDate"])
		assert.Equal(t, now, setFields["updatedAt"], "updatedAt stays at now")
	})

	t.Run("next follow-up date propagates to the lead root", func(t *testing.T) {
		next := now.AddDate(0, 0, 3)
		followUp, setFields := BuildFollowUpAppend(models.AddFollowUpRequest{
			Feedback:         "schedule demo",
			NextFollowUpDate: &next,
		}, principal, now)

		require.NotNil(t, followUp.NextFollowUpDate)
		assert.Equal(t, next, *followUp.NextFollowUpDate)
		assert.Equal(t, next, setFields["nextFollowUpDate"])
	})

	t.Run("call duration derives from start and end", func(t *testing.T) {
		start := now
		end := now.Add(4 * time.Minute)
		followUp, _ := BuildFollowUpAppend(models.AddFollowUpRequest{
			Feedback:      "counseling call",
			CallStartTime: &start,
			CallEndTime:   &end,
		}, principal, now)

		assert.Equal(t, 240, followUp.CallDuration)
	})

	t.Run("inverted call times leave the duration at zero", func(t *testing.T) {
		start := now
		end := now.Add(-time.Minute)
		followUp, _ := BuildFollowUpAppend(models.AddFollowUpRequest{
			Feedback:      "bad clock",
			CallStartTime: &start,
			CallEndTime:   &end,
		}, principal, now)

		assert.Zero(t, followUp.CallDuration)
	})
}
