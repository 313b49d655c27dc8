// File: /services/relationship_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"friendloop-api/models"
)

// memStore is an in-memory UserStore. Loads return deep copies so a mutation
// only becomes visible once saved, like the real document store.
type memStore struct {
	users    map[string]*models.User
	failSave map[string]error
}

func newMemStore(users ...*models.User) *memStore {
	s := &memStore{
		users:    make(map[string]*models.User),
		failSave: make(map[string]error),
	}
	for _, u := range users {
		s.users[u.ID] = cloneUser(u)
	}
	return s
}

func cloneUser(u *models.User) *models.User {
	clone := *u
	clone.Following = append(models.IDSet{}, u.Following...)
	clone.Followers = append(models.IDSet{}, u.Followers...)
	clone.Friends = append(models.IDSet{}, u.Friends...)
	clone.SentFriendRequests = append(models.IDSet{}, u.SentFriendRequests...)
	clone.ReceivedFriendRequests = append(models.IDSet{}, u.ReceivedFriendRequests...)
	return &clone
}

func (s *memStore) FindByID(id string) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, NotFoundError("user not found")
	}
	clone := cloneUser(u)
	clone.Normalize()
	return clone, nil
}

func (s *memStore) Save(user *models.User) error {
	if err := s.failSave[user.ID]; err != nil {
		return err
	}
	s.users[user.ID] = cloneUser(user)
	return nil
}

func (s *memStore) mustGet(t *testing.T, id string) *models.User {
	t.Helper()
	u, err := s.FindByID(id)
	require.NoError(t, err)
	return u
}

func testUser(id string) *models.User {
	return &models.User{
		ID:       id,
		Username: "user_" + id,
		Email:    id + "@example.com",
		Password: "hashed",
	}
}

func newTestService(users ...*models.User) (*RelationshipService, *memStore) {
	store := newMemStore(users...)
	return NewRelationshipService(store), store
}

func TestFollow(t *testing.T) {
	svc, store := newTestService(testUser("a"), testUser("b"))

	require.NoError(t, svc.Follow("a", "b"))

	a := store.mustGet(t, "a")
	b := store.mustGet(t, "b")
	assert.True(t, a.Following.Contains("b"))
	assert.True(t, b.Followers.Contains("a"))
	assert.False(t, b.Following.Contains("a"))
}

func TestFollowSelf(t *testing.T) {
	svc, _ := newTestService(testUser("a"))

	err := svc.Follow("a", "a")
	require.Error(t, err)
	assert.Equal(t, KindInvalidOperation, KindOf(err))
}

func TestFollowMissingUser(t *testing.T) {
	svc, _ := newTestService(testUser("a"))

	err := svc.Follow("a", "ghost")
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))

	err = svc.Follow("ghost", "a")
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestFollowTwice(t *testing.T) {
	svc, _ := newTestService(testUser("a"), testUser("b"))

	require.NoError(t, svc.Follow("a", "b"))

	err := svc.Follow("a", "b")
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestUnfollowIdempotent(t *testing.T) {
	svc, store := newTestService(testUser("a"), testUser("b"))

	require.NoError(t, svc.Follow("a", "b"))
	require.NoError(t, svc.Unfollow("a", "b"))

	a := store.mustGet(t, "a")
	b := store.mustGet(t, "b")
	assert.False(t, a.Following.Contains("b"))
	assert.False(t, b.Followers.Contains("a"))

	// Removing an absent edge is a no-op, not an error.
	require.NoError(t, svc.Unfollow("a", "b"))
}

func TestSendFriendRequest(t *testing.T) {
	svc, store := newTestService(testUser("a"), testUser("b"))

	require.NoError(t, svc.SendFriendRequest("a", "b"))

	a := store.mustGet(t, "a")
	b := store.mustGet(t, "b")
	assert.True(t, a.SentFriendRequests.Contains("b"))
	assert.True(t, b.ReceivedFriendRequests.Contains("a"))
	assert.False(t, a.Friends.Contains("b"))
}

func TestSendFriendRequestSelf(t *testing.T) {
	svc, _ := newTestService(testUser("a"))

	err := svc.SendFriendRequest("a", "a")
	require.Error(t, err)
	assert.Equal(t, KindInvalidOperation, KindOf(err))
}

func TestSendFriendRequestAlreadySent(t *testing.T) {
	svc, _ := newTestService(testUser("a"), testUser("b"))

	require.NoError(t, svc.SendFriendRequest("a", "b"))

	err := svc.SendFriendRequest("a", "b")
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestSendFriendRequestAlreadyFriends(t *testing.T) {
	svc, _ := newTestService(testUser("a"), testUser("b"))

	require.NoError(t, svc.SendFriendRequest("a", "b"))
	require.NoError(t, svc.AcceptFriendRequest("b", "a"))

	err := svc.SendFriendRequest("a", "b")
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestMutualRequestAutoAccepts(t *testing.T) {
	svc, store := newTestService(testUser("a"), testUser("b"))

	require.NoError(t, svc.SendFriendRequest("a", "b"))
	require.NoError(t, svc.SendFriendRequest("b", "a"))

	a := store.mustGet(t, "a")
	b := store.mustGet(t, "b")
	assert.True(t, a.Friends.Contains("b"))
	assert.True(t, b.Friends.Contains("a"))
	assert.Empty(t, a.SentFriendRequests)
	assert.Empty(t, a.ReceivedFriendRequests)
	assert.Empty(t, b.SentFriendRequests)
	assert.Empty(t, b.ReceivedFriendRequests)
}

func TestAcceptFriendRequest(t *testing.T) {
	svc, store := newTestService(testUser("a"), testUser("b"))

	require.NoError(t, svc.SendFriendRequest("a", "b"))
	require.NoError(t, svc.AcceptFriendRequest("b", "a"))

	a := store.mustGet(t, "a")
	b := store.mustGet(t, "b")
	assert.True(t, a.Friends.Contains("b"))
	assert.True(t, b.Friends.Contains("a"))
	assert.Empty(t, a.SentFriendRequests)
	assert.Empty(t, a.ReceivedFriendRequests)
	assert.Empty(t, b.SentFriendRequests)
	assert.Empty(t, b.ReceivedFriendRequests)
}

func TestAcceptWithoutPendingRequest(t *testing.T) {
	svc, _ := newTestService(testUser("a"), testUser("b"))

	err := svc.AcceptFriendRequest("b", "a")
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestRejectFriendRequest(t *testing.T) {
	svc, store := newTestService(testUser("a"), testUser("b"))

	require.NoError(t, svc.SendFriendRequest("a", "b"))
	require.NoError(t, svc.RejectFriendRequest("b", "a"))

	a := store.mustGet(t, "a")
	b := store.mustGet(t, "b")
	assert.Empty(t, a.SentFriendRequests)
	assert.Empty(t, b.ReceivedFriendRequests)
	assert.False(t, a.Friends.Contains("b"))

	// Rejecting again is a no-op.
	require.NoError(t, svc.RejectFriendRequest("b", "a"))
}

func TestCancelFriendRequest(t *testing.T) {
	svc, store := newTestService(testUser("a"), testUser("b"))

	require.NoError(t, svc.SendFriendRequest("a", "b"))
	require.NoError(t, svc.CancelFriendRequest("a", "b"))

	a := store.mustGet(t, "a")
	b := store.mustGet(t, "b")
	assert.Empty(t, a.SentFriendRequests)
	assert.Empty(t, b.ReceivedFriendRequests)

	require.NoError(t, svc.CancelFriendRequest("a", "b"))
}

func TestRemoveFriend(t *testing.T) {
	svc, store := newTestService(testUser("a"), testUser("b"))

	require.NoError(t, svc.SendFriendRequest("a", "b"))
	require.NoError(t, svc.AcceptFriendRequest("b", "a"))
	require.NoError(t, svc.RemoveFriend("a", "b"))

	a := store.mustGet(t, "a")
	b := store.mustGet(t, "b")
	assert.False(t, a.Friends.Contains("b"))
	assert.False(t, b.Friends.Contains("a"))

	require.NoError(t, svc.RemoveFriend("a", "b"))
}

func TestFollowIndependentOfFriendship(t *testing.T) {
	svc, store := newTestService(testUser("a"), testUser("b"))

	require.NoError(t, svc.Follow("a", "b"))
	require.NoError(t, svc.SendFriendRequest("a", "b"))
	require.NoError(t, svc.AcceptFriendRequest("b", "a"))
	require.NoError(t, svc.RemoveFriend("a", "b"))

	a := store.mustGet(t, "a")
	assert.True(t, a.Following.Contains("b"), "follow edge must survive friendship changes")
}

func TestFriendshipSymmetryAfterEveryStep(t *testing.T) {
	svc, store := newTestService(testUser("a"), testUser("b"))

	steps := []func() error{
		func() error { return svc.SendFriendRequest("a", "b") },
		func() error { return svc.AcceptFriendRequest("b", "a") },
		func() error { return svc.RemoveFriend("b", "a") },
		func() error { return svc.SendFriendRequest("b", "a") },
		func() error { return svc.SendFriendRequest("a", "b") }, // mutual, auto-accepts
	}

	for i, step := range steps {
		require.NoError(t, step(), "step %d", i)

		a := store.mustGet(t, "a")
		b := store.mustGet(t, "b")
		assert.Equal(t, a.Friends.Contains("b"), b.Friends.Contains("a"),
			"friendship must be symmetric after step %d", i)
	}
}

func TestLegacyRecordNormalizedOnLoad(t *testing.T) {
	legacy := &models.User{ID: "old", Username: "old_user", Email: "old@example.com"}
	svc, store := newTestService(legacy, testUser("b"))

	// A record with nil sets must behave as if the sets were empty.
	require.NoError(t, svc.Follow("old", "b"))

	old := store.mustGet(t, "old")
	assert.True(t, old.Following.Contains("b"))
	assert.Empty(t, old.Friends)
}

func TestPartialFollowWriteRepaired(t *testing.T) {
	svc, store := newTestService(testUser("a"), testUser("b"))

	// Second write fails: the follow edge ends up one-sided.
	store.failSave["b"] = UnavailableError("storage down", nil)
	err := svc.Follow("a", "b")
	require.Error(t, err)

	assert.True(t, store.mustGet(t, "a").Following.Contains("b"))
	assert.False(t, store.mustGet(t, "b").Followers.Contains("a"))

	delete(store.failSave, "b")

	repaired, err := svc.RepairPair("a", "b")
	require.NoError(t, err)
	assert.True(t, repaired)
	assert.True(t, store.mustGet(t, "b").Followers.Contains("a"))
}

func TestRepairPairDropsOneSidedFriendship(t *testing.T) {
	a := testUser("a")
	a.Friends = models.IDSet{"b"}
	svc, store := newTestService(a, testUser("b"))

	repaired, err := svc.RepairPair("a", "b")
	require.NoError(t, err)
	assert.True(t, repaired)

	assert.False(t, store.mustGet(t, "a").Friends.Contains("b"))
	assert.False(t, store.mustGet(t, "b").Friends.Contains("a"))
}

func TestRepairPairPrunesStaleFollower(t *testing.T) {
	b := testUser("b")
	b.Followers = models.IDSet{"a"}
	svc, store := newTestService(testUser("a"), b)

	repaired, err := svc.RepairPair("a", "b")
	require.NoError(t, err)
	assert.True(t, repaired)
	assert.False(t, store.mustGet(t, "b").Followers.Contains("a"))
}

func TestRepairPairPrunesPendingEdgesBetweenFriends(t *testing.T) {
	a := testUser("a")
	b := testUser("b")
	a.Friends = models.IDSet{"b"}
	b.Friends = models.IDSet{"a"}
	a.SentFriendRequests = models.IDSet{"b"}
	b.ReceivedFriendRequests = models.IDSet{"a"}
	svc, store := newTestService(a, b)

	repaired, err := svc.RepairPair("a", "b")
	require.NoError(t, err)
	assert.True(t, repaired)

	assert.Empty(t, store.mustGet(t, "a").SentFriendRequests)
	assert.Empty(t, store.mustGet(t, "b").ReceivedFriendRequests)
	assert.True(t, store.mustGet(t, "a").Friends.Contains("b"))
}

func TestRepairPairNoopOnConsistentRecords(t *testing.T) {
	svc, _ := newTestService(testUser("a"), testUser("b"))

	require.NoError(t, svc.Follow("a", "b"))
	require.NoError(t, svc.SendFriendRequest("a", "b"))

	repaired, err := svc.RepairPair("a", "b")
	require.NoError(t, err)
	assert.False(t, repaired)
}
