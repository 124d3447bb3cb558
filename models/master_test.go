package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestZoneDeletable(t *testing.T) {
	assert.True(t, Zone{}.Deletable())
	assert.True(t, Zone{Centres: []primitive.ObjectID{}}.Deletable())
	assert.False(t, Zone{Centres: []primitive.ObjectID{primitive.NewObjectID()}}.Deletable())
}
