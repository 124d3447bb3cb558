package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/edusparsh/erp_backend/models"
)

func TestPrepareImportRows(t *testing.T) {
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	centreID := primitive.NewObjectID()

	t.Run("valid rows become leads with defaults applied", func(t *testing.T) {
		rows := []models.BulkImportRow{
			{Name: " Rahul ", Phone: " 9876543210 ", Email: "rahul@example.com", LeadType: "HOT LEAD", CentreID: centreID.Hex()},
			{Name: "Sneha", Phone: "9876543211", LeadType: "WARM"},
		}

		leads, skipped := PrepareImportRows(rows, map[string]bool{}, map[string]bool{}, now)
		require.Len(t, leads, 2)
		assert.Empty(t, skipped)

		assert.Equal(t, "Rahul", leads[0].Name)
		assert.Equal(t, "9876543210", leads[0].Phone)
		assert.Equal(t, models.LeadTypeHOT, leads[0].LeadType)
		assert.Equal(t, centreID, leads[0].CentreID)
		assert.Equal(t, now, leads[0].CreatedAt)
		assert.NotNil(t, leads[0].FollowUps)

		// Unknown lead types default to cold.
		assert.Equal(t, models.LeadTypeCOLD, leads[1].LeadType)
	})

	t.Run("missing name or phone is skipped with a reason", func(t *testing.T) {
		rows := []models.BulkImportRow{
			{Name: "", Phone: "9876543210"},
			{Name: "Rahul", Phone: "   "},
		}

		leads, skipped := PrepareImportRows(rows, map[string]bool{}, map[string]bool{}, now)
		assert.Empty(t, leads)
		require.Len(t, skipped, 2)
		assert.Equal(t, 1, skipped[0].Row)
		assert.Equal(t, "missing name or phone", skipped[0].Reason)
		assert.Equal(t, 2, skipped[1].Row)
	})

	t.Run("duplicate phone within the batch keeps the first row", func(t *testing.T) {
		rows := []models.BulkImportRow{
			{Name: "Rahul", Phone: "9876543210"},
			{Name: "Rahul Again", Phone: "9876543210"},
		}

		leads, skipped := PrepareImportRows(rows, map[string]bool{}, map[string]bool{}, now)
		require.Len(t, leads, 1)
		assert.Equal(t, "Rahul", leads[0].Name)
		require.Len(t, skipped, 1)
		assert.Equal(t, "duplicate phone in batch", skipped[0].Reason)
	})

	t.Run("duplicate email within the batch keeps the first row", func(t *testing.T) {
		rows := []models.BulkImportRow{
			{Name: "Rahul", Phone: "9876543210", Email: "rahul@example.com"},
			{Name: "Other Rahul", Phone: "9876543299", Email: "RAHUL@example.com"},
		}

		leads, skipped := PrepareImportRows(rows, map[string]bool{}, map[string]bool{}, now)
		require.Len(t, leads, 1)
		require.Len(t, skipped, 1)
		assert.Equal(t, "duplicate email in batch", skipped[0].Reason)
	})

	t.Run("phone already in the store is skipped", func(t *testing.T) {
		rows := []models.BulkImportRow{
			{Name: "Rahul", Phone: "9876543210"},
		}

		leads, skipped := PrepareImportRows(rows, map[string]bool{"9876543210": true}, map[string]bool{}, now)
		assert.Empty(t, leads)
		require.Len(t, skipped, 1)
		assert.Equal(t, "phone already exists", skipped[0].Reason)
	})

	t.Run("email already in the store is skipped regardless of case", func(t *testing.T) {
		rows := []models.BulkImportRow{
			{Name: "Rahul", Phone: "9876543210", Email: "RAHUL@example.com"},
			{Name: "Sneha", Phone: "9876543211", Email: "sneha@example.com"},
		}

		leads, skipped := PrepareImportRows(rows, map[string]bool{}, map[string]bool{"rahul@example.com": true}, now)
		require.Len(t, leads, 1)
		assert.Equal(t, "Sneha", leads[0].Name)
		require.Len(t, skipped, 1)
		assert.Equal(t, 1, skipped[0].Row)
		assert.Equal(t, "email already exists", skipped[0].Reason)
	})
}
