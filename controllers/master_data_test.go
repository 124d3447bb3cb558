package controllers

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestDuplicateFilter(t *testing.T) {
	entity := MasterEntity{Collection: "batches", Resource: "batch", RequiredField: "name"}

	pattern := func(t *testing.T, value string) *regexp.Regexp {
		t.Helper()
		filter := entity.duplicateFilter(value)
		clause, ok := filter["name"].(bson.M)
		require.True(t, ok)
		re, err := regexp.Compile("(?i)" + clause["$regex"].(string))
		require.NoError(t, err)
		return re
	}

	t.Run("dots match literally", func(t *testing.T) {
		re := pattern(t, "A.C")
		assert.True(t, re.MatchString("a.c"))
		assert.False(t, re.MatchString("ABC"))
	})

	t.Run("unbalanced parens still build a valid pattern", func(t *testing.T) {
		re := pattern(t, "Advanced (Batch")
		assert.True(t, re.MatchString("advanced (batch"))
		assert.False(t, re.MatchString("Advanced Batch"))
	})

	t.Run("exact match only", func(t *testing.T) {
		re := pattern(t, "Maths")
		assert.True(t, re.MatchString("MATHS"))
		assert.False(t, re.MatchString("Maths Advanced"))
	})
}
