package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/edusparsh/erp_backend/models"
)

func TestResolveAccessScope(t *testing.T) {
	centreA := primitive.NewObjectID()
	centreB := primitive.NewObjectID()

	t.Run("super admin is unrestricted", func(t *testing.T) {
		scope := ResolveAccessScope(models.Principal{Role: models.UserRoleSUPER_ADMIN})
		assert.True(t, scope.Unrestricted)
		assert.False(t, scope.NoAccess)
	})

	t.Run("admin is unrestricted even without centres", func(t *testing.T) {
		scope := ResolveAccessScope(models.Principal{Role: models.UserRoleADMIN})
		assert.True(t, scope.Unrestricted)
	})

	t.Run("non-admin with no centres gets no access", func(t *testing.T) {
		scope := ResolveAccessScope(models.Principal{Role: models.UserRoleTELECALLER, Name: "Priya"})
		assert.True(t, scope.NoAccess)
		assert.False(t, scope.Unrestricted)
	})

	t.Run("telecaller is restricted to own centres and own name", func(t *testing.T) {
		scope := ResolveAccessScope(models.Principal{
			Role:    models.UserRoleTELECALLER,
			Name:    "Priya",
			Centres: []primitive.ObjectID{centreA, centreB},
		})
		assert.False(t, scope.Unrestricted)
		assert.False(t, scope.NoAccess)
		assert.Equal(t, []primitive.ObjectID{centreA, centreB}, scope.CentreIn)
		assert.Equal(t, "Priya", scope.ResponsibilityEquals)
	})

	t.Run("coordinator is restricted to centres only", func(t *testing.T) {
		scope := ResolveAccessScope(models.Principal{
			Role:    models.UserRoleCLASS_COORDINATOR,
			Name:    "Ravi",
			Centres: []primitive.ObjectID{centreA},
		})
		assert.Equal(t, []primitive.ObjectID{centreA}, scope.CentreIn)
		assert.Empty(t, scope.ResponsibilityEquals)
	})
}

func TestAccessScopeFilter(t *testing.T) {
	centreA := primitive.NewObjectID()

	t.Run("unrestricted renders empty filter", func(t *testing.T) {
		filter := AccessScope{Unrestricted: true}.Filter()
		assert.Empty(t, filter)
	})

	t.Run("no access renders a filter no document matches", func(t *testing.T) {
		filter := AccessScope{NoAccess: true}.Filter()
		assert.Equal(t, bson.M{"_id": bson.M{"$exists": false}}, filter)
	})

	t.Run("centre scope renders an $in filter", func(t *testing.T) {
		filter := AccessScope{CentreIn: []primitive.ObjectID{centreA}}.Filter()
		assert.Equal(t, bson.M{"$in": []primitive.ObjectID{centreA}}, filter["centreId"])
		assert.NotContains(t, filter, "leadResponsibility")
	})

	t.Run("responsibility scope adds a case-insensitive name match", func(t *testing.T) {
		filter := AccessScope{
			CentreIn:             []primitive.ObjectID{centreA},
			ResponsibilityEquals: "Priya",
		}.Filter()
		assert.Equal(t, bson.M{"$regex": "^Priya$", "$options": "i"}, filter["leadResponsibility"])
	})
}

func TestAccessScopeAllowsCentre(t *testing.T) {
	centreA := primitive.NewObjectID()
	centreB := primitive.NewObjectID()

	assert.True(t, AccessScope{Unrestricted: true}.AllowsCentre(centreA))
	assert.False(t, AccessScope{NoAccess: true}.AllowsCentre(centreA))

	scoped := AccessScope{CentreIn: []primitive.ObjectID{centreA}}
	assert.True(t, scoped.AllowsCentre(centreA))
	assert.False(t, scoped.AllowsCentre(centreB))
}
