// File: /models/types_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDSetMembership(t *testing.T) {
	var s IDSet

	s = s.Add("a")
	s = s.Add("b")
	s = s.Add("a") // duplicate add must not grow the set
	assert.Len(t, s, 2)
	assert.True(t, s.Contains("a"))

	s = s.Remove("a")
	s = s.Remove("a") // removing again is a no-op
	assert.False(t, s.Contains("a"))
	assert.True(t, s.Contains("b"))
}

func TestIDSetNilScanYieldsEmptySet(t *testing.T) {
	var s IDSet
	require.NoError(t, s.Scan(nil))
	assert.NotNil(t, s)
	assert.Empty(t, s)
}

func TestIDSetDatabaseRoundtrip(t *testing.T) {
	original := IDSet{"u1", "u2"}

	value, err := original.Value()
	require.NoError(t, err)

	var restored IDSet
	require.NoError(t, restored.Scan(value))
	assert.Equal(t, original, restored)
}

func TestIDSetNilMarshalsAsEmptyArray(t *testing.T) {
	var s IDSet

	data, err := s.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))

	value, err := s.Value()
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(value.([]byte)))
}

func TestUserNormalize(t *testing.T) {
	u := &User{ID: "u1"}
	u.Normalize()

	assert.NotNil(t, u.Following)
	assert.NotNil(t, u.Followers)
	assert.NotNil(t, u.Friends)
	assert.NotNil(t, u.SentFriendRequests)
	assert.NotNil(t, u.ReceivedFriendRequests)
}
