package controllers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edusparsh/erp_backend/models"
	"github.com/edusparsh/erp_backend/service"
)

func TestLeadTypeSummary(t *testing.T) {
	t.Run("counts bucket by lead type", func(t *testing.T) {
		statuses := service.Ok([]models.StatusCount{
			{LeadType: models.LeadTypeHOT, Count: 4},
			{LeadType: models.LeadTypeCOLD, Count: 7},
			{LeadType: models.LeadTypeNEGATIVE, Count: 1},
		})

		summary := leadTypeSummary(12, statuses)
		assert.Equal(t, int64(12), summary["totalLeads"])
		assert.Equal(t, 4, summary["hotLeads"])
		assert.Equal(t, 7, summary["coldLeads"])
		assert.Equal(t, 1, summary["negativeLeads"])
		assert.NotContains(t, summary, "degraded")
	})

	t.Run("failed distribution is flagged, not zeroed silently", func(t *testing.T) {
		statuses := service.AggResult[[]models.StatusCount]{Err: errors.New("aggregation timed out")}

		summary := leadTypeSummary(12, statuses)
		assert.Equal(t, 0, summary["hotLeads"])
		assert.Equal(t, []string{"statusDistribution"}, summary["degraded"])
	})
}
