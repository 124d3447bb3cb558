package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildRevenueSummary(t *testing.T) {
	t.Run("formats totals in Indian units", func(t *testing.T) {
		summary := BuildRevenueSummary(25000000, 12500000, 100)
		assert.Equal(t, "₹2.50 Cr", summary.TotalRevenueDisplay)
		assert.Equal(t, "₹1.25 Cr", summary.CollectedFeesDisplay)
		assert.Equal(t, 100, summary.AdmissionCount)
		assert.Equal(t, 250000.0, summary.AverageTicket)
		assert.Equal(t, "₹2.50 L", summary.AverageTicketDisplay)
	})

	t.Run("zero admissions does not divide by zero", func(t *testing.T) {
		summary := BuildRevenueSummary(0, 0, 0)
		assert.Zero(t, summary.AverageTicket)
		assert.Equal(t, "₹0.00", summary.AverageTicketDisplay)
	})
}

func TestAdmissionScopeFilter(t *testing.T) {
	centreA := primitive.NewObjectID()

	assert.Empty(t, admissionScopeFilter(AccessScope{Unrestricted: true}))
	assert.Equal(t,
		bson.M{"_id": bson.M{"$exists": false}},
		admissionScopeFilter(AccessScope{NoAccess: true}))
	assert.Equal(t,
		bson.M{"centreId": bson.M{"$in": []primitive.ObjectID{centreA}}},
		admissionScopeFilter(AccessScope{
			CentreIn:             []primitive.ObjectID{centreA},
			ResponsibilityEquals: "Priya",
		}),
		"admissions carry no responsibility field")
}

func TestVisibleCentres(t *testing.T) {
	centreA := primitive.NewObjectID()
	centreB := primitive.NewObjectID()
	zoneCentres := []primitive.ObjectID{centreA, centreB}

	t.Run("unrestricted sees all zone centres", func(t *testing.T) {
		assert.Equal(t, zoneCentres, visibleCentres(zoneCentres, AccessScope{Unrestricted: true}))
	})

	t.Run("no access sees none", func(t *testing.T) {
		assert.Empty(t, visibleCentres(zoneCentres, AccessScope{NoAccess: true}))
	})

	t.Run("scoped sees the intersection", func(t *testing.T) {
		scope := AccessScope{CentreIn: []primitive.ObjectID{centreB}}
		assert.Equal(t, []primitive.ObjectID{centreB}, visibleCentres(zoneCentres, scope))
	})
}

func TestCloneFilter(t *testing.T) {
	original := bson.M{"centreId": "x"}
	clone := cloneFilter(original)
	clone["createdAt"] = "y"

	assert.NotContains(t, original, "createdAt")
	assert.Equal(t, "x", clone["centreId"])
}
