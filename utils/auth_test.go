package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/edusparsh/erp_backend/models"
)

func TestPasswordHashing(t *testing.T) {
	hash := HashPassword("admin123")
	assert.NotEqual(t, "admin123", hash)
	assert.True(t, VerifyPassword("admin123", hash))
	assert.False(t, VerifyPassword("admin124", hash))
}

func TestTokenRoundTrip(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID()}

	token, err := GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), id)

	_, err = ParseToken(token + "tampered")
	assert.Error(t, err)

	_, err = ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestAuthorize(t *testing.T) {
	exportCap := models.CoarseCapability("Export Data")
	editCap := models.GranularCapability("leads", "manage", "edit")

	t.Run("super admin passes everything", func(t *testing.T) {
		p := models.Principal{Role: models.UserRoleSUPER_ADMIN}
		assert.True(t, Authorize(p, exportCap))
		assert.True(t, Authorize(p, editCap))
	})

	t.Run("admin passes everything", func(t *testing.T) {
		p := models.Principal{Role: models.UserRoleADMIN}
		assert.True(t, Authorize(p, exportCap))
		assert.True(t, Authorize(p, editCap))
	})

	t.Run("coarse permission matches by name", func(t *testing.T) {
		p := models.Principal{
			Role:        models.UserRoleTELECALLER,
			Permissions: []string{"Export Data"},
		}
		assert.True(t, Authorize(p, exportCap))
		assert.False(t, Authorize(p, models.CoarseCapability("Bulk Import")))
	})

	t.Run("granular permission needs the exact triple", func(t *testing.T) {
		p := models.Principal{
			Role: models.UserRoleTELECALLER,
			GranularPermissions: models.GranularPermissions{
				"leads": {"manage": {"edit": true, "create": false}},
			},
		}
		assert.True(t, Authorize(p, editCap))
		assert.False(t, Authorize(p, models.GranularCapability("leads", "manage", "create")))
		assert.False(t, Authorize(p, models.GranularCapability("leads", "reports", "edit")))
		assert.False(t, Authorize(p, models.GranularCapability("users", "manage", "edit")))
	})

	t.Run("no permissions denies", func(t *testing.T) {
		p := models.Principal{Role: models.UserRoleRM}
		assert.False(t, Authorize(p, exportCap))
		assert.False(t, Authorize(p, editCap))
	})
}
