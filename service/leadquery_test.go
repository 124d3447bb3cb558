package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCaseInsensitiveExact(t *testing.T) {
	m := CaseInsensitiveExact("Priya Sharma")
	assert.Equal(t, "^Priya Sharma$", m["$regex"])
	assert.Equal(t, "i", m["$options"])

	// Regex metacharacters in stored names must not widen the match.
	m = CaseInsensitiveExact("A.B (Temp)")
	assert.Equal(t, `^A\.B \(Temp\)$`, m["$regex"])
}

func TestBuildLeadFilter(t *testing.T) {
	centreA := primitive.NewObjectID()
	centreB := primitive.NewObjectID()
	centreC := primitive.NewObjectID()

	scoped := AccessScope{CentreIn: []primitive.ObjectID{centreA, centreB}}

	t.Run("no access short-circuits to the unmatchable filter", func(t *testing.T) {
		filter := BuildLeadFilter(LeadQueryParams{Search: "anything"}, AccessScope{NoAccess: true})
		assert.Equal(t, bson.M{"_id": bson.M{"$exists": false}}, filter)
	})

	t.Run("default listing hides counseled leads", func(t *testing.T) {
		filter := BuildLeadFilter(LeadQueryParams{}, AccessScope{Unrestricted: true})
		assert.Equal(t, bson.M{"$ne": true}, filter["isCounseled"])
	})

	t.Run("include counseled drops the exclusion", func(t *testing.T) {
		filter := BuildLeadFilter(LeadQueryParams{IncludeCounseled: true}, AccessScope{Unrestricted: true})
		assert.NotContains(t, filter, "isCounseled")
	})

	t.Run("counseled only flips the predicate", func(t *testing.T) {
		filter := BuildLeadFilter(LeadQueryParams{CounseledOnly: true}, AccessScope{Unrestricted: true})
		assert.Equal(t, true, filter["isCounseled"])
	})

	t.Run("search spans name email phone school", func(t *testing.T) {
		filter := BuildLeadFilter(LeadQueryParams{Search: "rahul"}, AccessScope{Unrestricted: true})
		or, ok := filter["$or"].([]bson.M)
		require.True(t, ok)
		require.Len(t, or, 4)
		fields := []string{}
		for _, clause := range or {
			for field := range clause {
				fields = append(fields, field)
			}
		}
		assert.ElementsMatch(t, []string{"name", "email", "phone", "school"}, fields)
	})

	t.Run("date range is inclusive of the whole toDate day", func(t *testing.T) {
		from := time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC)
		to := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
		filter := BuildLeadFilter(LeadQueryParams{FromDate: &from, ToDate: &to}, AccessScope{Unrestricted: true})

		created, ok := filter["createdAt"].(bson.M)
		require.True(t, ok)
		assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), created["$gte"])
		assert.Equal(t, time.Date(2026, 3, 15, 23, 59, 59, 999000000, time.UTC), created["$lte"])
	})

	t.Run("scoped caller always gets a centre restriction", func(t *testing.T) {
		filter := BuildLeadFilter(LeadQueryParams{}, scoped)
		assert.Equal(t, bson.M{"$in": []primitive.ObjectID{centreA, centreB}}, filter["centreId"])
	})

	t.Run("centre filter intersects with the scope", func(t *testing.T) {
		filter := BuildLeadFilter(LeadQueryParams{CentreIDs: []primitive.ObjectID{centreB, centreC}}, scoped)
		assert.Equal(t, bson.M{"$in": []primitive.ObjectID{centreB}}, filter["centreId"])
	})

	t.Run("empty intersection falls back to the full scope set", func(t *testing.T) {
		filter := BuildLeadFilter(LeadQueryParams{CentreIDs: []primitive.ObjectID{centreC}}, scoped)
		assert.Equal(t, bson.M{"$in": []primitive.ObjectID{centreA, centreB}}, filter["centreId"])
	})

	t.Run("centre filter passes through unchanged for admins", func(t *testing.T) {
		filter := BuildLeadFilter(LeadQueryParams{CentreIDs: []primitive.ObjectID{centreC}}, AccessScope{Unrestricted: true})
		assert.Equal(t, bson.M{"$in": []primitive.ObjectID{centreC}}, filter["centreId"])
	})

	t.Run("single telecaller filter matches case-insensitively", func(t *testing.T) {
		filter := BuildLeadFilter(LeadQueryParams{Telecallers: []string{"priya"}}, AccessScope{Unrestricted: true})
		assert.Equal(t, bson.M{"$regex": "^priya$", "$options": "i"}, filter["leadResponsibility"])
	})

	t.Run("multiple telecallers become an $or under $and", func(t *testing.T) {
		filter := BuildLeadFilter(LeadQueryParams{Telecallers: []string{"priya", "ravi"}}, AccessScope{Unrestricted: true})
		and, ok := filter["$and"].([]bson.M)
		require.True(t, ok)
		require.Len(t, and, 1)
		or, ok := and[0]["$or"].([]bson.M)
		require.True(t, ok)
		assert.Len(t, or, 2)
	})

	t.Run("telecaller scope overrides any requested responsibility", func(t *testing.T) {
		scope := AccessScope{CentreIn: []primitive.ObjectID{centreA}, ResponsibilityEquals: "Priya"}
		filter := BuildLeadFilter(LeadQueryParams{Telecallers: []string{"ravi"}}, scope)
		assert.Equal(t, bson.M{"$regex": "^Priya$", "$options": "i"}, filter["leadResponsibility"])
	})

	t.Run("telecaller scope drops a multi-name request entirely", func(t *testing.T) {
		scope := AccessScope{CentreIn: []primitive.ObjectID{centreA}, ResponsibilityEquals: "Priya"}
		filter := BuildLeadFilter(LeadQueryParams{Telecallers: []string{"ravi", "sneha"}}, scope)
		assert.Equal(t, bson.M{"$regex": "^Priya$", "$options": "i"}, filter["leadResponsibility"])
		assert.NotContains(t, filter, "$and")
	})

	t.Run("lead type and course restrict directly", func(t *testing.T) {
		course := primitive.NewObjectID()
		filter := BuildLeadFilter(LeadQueryParams{LeadType: "HOT LEAD", CourseID: course}, AccessScope{Unrestricted: true})
		assert.Equal(t, "HOT LEAD", filter["leadType"])
		assert.Equal(t, course, filter["courseId"])
	})
}
