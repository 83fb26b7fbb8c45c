package ident

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestResolveNativeShapedID(t *testing.T) {
	keys := Resolve("65A1B2C3D4E5F60718293A4B")
	require.Len(t, keys, 2)

	assert.Equal(t, Native, keys[0].Kind())
	oid, ok := keys[0].ObjectID()
	require.True(t, ok)
	assert.Equal(t, "65a1b2c3d4e5f60718293a4b", oid.Hex())
	assert.Equal(t, "65a1b2c3d4e5f60718293a4b", keys[0].String())

	assert.Equal(t, Legacy, keys[1].Kind())
	assert.Equal(t, "65A1B2C3D4E5F60718293A4B", keys[1].String())
	assert.Equal(t, "65A1B2C3D4E5F60718293A4B", keys[1].Value())
}

func TestResolveLegacyID(t *testing.T) {
	keys := Resolve("summer-2019")
	require.Len(t, keys, 1)
	assert.Equal(t, Legacy, keys[0].Kind())

	_, ok := keys[0].ObjectID()
	assert.False(t, ok)
}

func TestNew(t *testing.T) {
	a, b := New(), New()
	assert.Equal(t, Native, a.Kind())
	assert.NotEqual(t, a.String(), b.String())
	assert.True(t, primitive.IsValidObjectID(a.String()))
	assert.IsType(t, primitive.ObjectID{}, a.Value())
}
