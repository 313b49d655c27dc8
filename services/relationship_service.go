// File: /services/relationship_service.go
package services

import (
	"friendloop-api/models"
)

// UserStore is the persistence boundary for user records. Implementations
// must provide per-record atomicity only; there is no multi-record
// transaction, and FindByID must return a KindNotFound error for absent ids.
type UserStore interface {
	FindByID(id string) (*models.User, error)
	Save(user *models.User) error
}

// RelationshipService mutates the social graph two records at a time.
// Every operation loads both records fresh, validates, then persists the
// actor's record followed by the target's record as two independent writes.
// The ordered-pair convention makes the actor-owned sets (following,
// sentFriendRequests) authoritative: a crash between the two writes leaves a
// one-sided edge that RepairPair can reconcile.
type RelationshipService struct {
	users UserStore
}

func NewRelationshipService(users UserStore) *RelationshipService {
	return &RelationshipService{users: users}
}

func (s *RelationshipService) loadPair(actorID, targetID string) (*models.User, *models.User, error) {
	actor, err := s.users.FindByID(actorID)
	if err != nil {
		return nil, nil, err
	}
	target, err := s.users.FindByID(targetID)
	if err != nil {
		return nil, nil, err
	}
	return actor, target, nil
}

// Follow adds the directed follow edge actor -> target.
func (s *RelationshipService) Follow(actorID, targetID string) error {
	if actorID == targetID {
		return InvalidOperationError("cannot follow yourself")
	}

	actor, target, err := s.loadPair(actorID, targetID)
	if err != nil {
		return err
	}

	if actor.Following.Contains(targetID) {
		return ConflictError("already following this user")
	}

	actor.Following = actor.Following.Add(targetID)
	if err := s.users.Save(actor); err != nil {
		return err
	}

	target.Followers = target.Followers.Add(actorID)
	return s.users.Save(target)
}

// Unfollow removes the follow edge in both views. Removing an edge that does
// not exist is a no-op, not an error.
func (s *RelationshipService) Unfollow(actorID, targetID string) error {
	actor, target, err := s.loadPair(actorID, targetID)
	if err != nil {
		return err
	}

	actor.Following = actor.Following.Remove(targetID)
	if err := s.users.Save(actor); err != nil {
		return err
	}

	target.Followers = target.Followers.Remove(actorID)
	return s.users.Save(target)
}

// SendFriendRequest records a pending request from actor to target. If the
// target has already requested the actor, the two pending requests collapse
// into an immediate friendship instead of a duplicate pending edge.
func (s *RelationshipService) SendFriendRequest(actorID, targetID string) error {
	if actorID == targetID {
		return InvalidOperationError("cannot send a friend request to yourself")
	}

	actor, target, err := s.loadPair(actorID, targetID)
	if err != nil {
		return err
	}

	if actor.Friends.Contains(targetID) {
		return ConflictError("already friends with this user")
	}
	if actor.SentFriendRequests.Contains(targetID) {
		return ConflictError("friend request already sent")
	}

	// Mutual request: the target's outgoing request is already pending on
	// the actor, so accept it rather than queueing a second request.
	if actor.ReceivedFriendRequests.Contains(targetID) {
		return s.AcceptFriendRequest(actorID, targetID)
	}

	actor.SentFriendRequests = actor.SentFriendRequests.Add(targetID)
	if err := s.users.Save(actor); err != nil {
		return err
	}

	target.ReceivedFriendRequests = target.ReceivedFriendRequests.Add(actorID)
	return s.users.Save(target)
}

// AcceptFriendRequest turns sender's pending request into a friendship.
func (s *RelationshipService) AcceptFriendRequest(actorID, senderID string) error {
	actor, sender, err := s.loadPair(actorID, senderID)
	if err != nil {
		return err
	}

	if !actor.ReceivedFriendRequests.Contains(senderID) {
		return ConflictError("friend request not found")
	}

	actor.ReceivedFriendRequests = actor.ReceivedFriendRequests.Remove(senderID)
	actor.Friends = actor.Friends.Add(senderID)
	if err := s.users.Save(actor); err != nil {
		return err
	}

	sender.SentFriendRequests = sender.SentFriendRequests.Remove(actorID)
	sender.Friends = sender.Friends.Add(actorID)
	return s.users.Save(sender)
}

// RejectFriendRequest drops sender's pending request. Idempotent.
func (s *RelationshipService) RejectFriendRequest(actorID, senderID string) error {
	actor, sender, err := s.loadPair(actorID, senderID)
	if err != nil {
		return err
	}

	actor.ReceivedFriendRequests = actor.ReceivedFriendRequests.Remove(senderID)
	if err := s.users.Save(actor); err != nil {
		return err
	}

	sender.SentFriendRequests = sender.SentFriendRequests.Remove(actorID)
	return s.users.Save(sender)
}

// CancelFriendRequest withdraws the actor's own pending request. Idempotent.
func (s *RelationshipService) CancelFriendRequest(actorID, targetID string) error {
	actor, target, err := s.loadPair(actorID, targetID)
	if err != nil {
		return err
	}

	actor.SentFriendRequests = actor.SentFriendRequests.Remove(targetID)
	if err := s.users.Save(actor); err != nil {
		return err
	}

	target.ReceivedFriendRequests = target.ReceivedFriendRequests.Remove(actorID)
	return s.users.Save(target)
}

// RemoveFriend removes the symmetric friend edge. Idempotent.
func (s *RelationshipService) RemoveFriend(actorID, friendID string) error {
	actor, friend, err := s.loadPair(actorID, friendID)
	if err != nil {
		return err
	}

	actor.Friends = actor.Friends.Remove(friendID)
	if err := s.users.Save(actor); err != nil {
		return err
	}

	friend.Friends = friend.Friends.Remove(actorID)
	return s.users.Save(friend)
}

// RepairPair reconciles one-sided edges between two records, the repair half
// of the write-actor-then-target saga. The actor-owned sets are
// authoritative: followers and receivedFriendRequests are completed or
// pruned to match the opposite record's following and sentFriendRequests.
// Friendship needs both sides, so a one-sided friend edge is dropped, and a
// confirmed friendship prunes any leftover pending requests between the two.
// It reports whether either record was changed.
func (s *RelationshipService) RepairPair(aID, bID string) (bool, error) {
	a, b, err := s.loadPair(aID, bID)
	if err != nil {
		return false, err
	}

	changedA, changedB := false, false

	repairDirected := func(owner, other *models.User, ownerChanged, otherChanged *bool) {
		// following -> followers
		if owner.Following.Contains(other.ID) && !other.Followers.Contains(owner.ID) {
			other.Followers = other.Followers.Add(owner.ID)
			*otherChanged = true
		}
		if !owner.Following.Contains(other.ID) && other.Followers.Contains(owner.ID) {
			other.Followers = other.Followers.Remove(owner.ID)
			*otherChanged = true
		}
		// sent -> received
		if owner.SentFriendRequests.Contains(other.ID) && !other.ReceivedFriendRequests.Contains(owner.ID) {
			other.ReceivedFriendRequests = other.ReceivedFriendRequests.Add(owner.ID)
			*otherChanged = true
		}
		if !owner.SentFriendRequests.Contains(other.ID) && other.ReceivedFriendRequests.Contains(owner.ID) {
			other.ReceivedFriendRequests = other.ReceivedFriendRequests.Remove(owner.ID)
			*otherChanged = true
		}
	}

	repairDirected(a, b, &changedA, &changedB)
	repairDirected(b, a, &changedB, &changedA)

	// One-sided friendship is dropped rather than completed: a half-removed
	// friendship stays removed, a half-added one is recoverable by
	// re-requesting.
	if a.Friends.Contains(bID) != b.Friends.Contains(aID) {
		if a.Friends.Contains(bID) {
			a.Friends = a.Friends.Remove(bID)
			changedA = true
		} else {
			b.Friends = b.Friends.Remove(aID)
			changedB = true
		}
	}

	if a.Friends.Contains(bID) && b.Friends.Contains(aID) {
		prune := func(user *models.User, otherID string, changed *bool) {
			if user.SentFriendRequests.Contains(otherID) {
				user.SentFriendRequests = user.SentFriendRequests.Remove(otherID)
				*changed = true
			}
			if user.ReceivedFriendRequests.Contains(otherID) {
				user.ReceivedFriendRequests = user.ReceivedFriendRequests.Remove(otherID)
				*changed = true
			}
		}
		prune(a, bID, &changedA)
		prune(b, aID, &changedB)
	}

	if changedA {
		if err := s.users.Save(a); err != nil {
			return false, err
		}
	}
	if changedB {
		if err := s.users.Save(b); err != nil {
			return changedA, err
		}
	}

	return changedA || changedB, nil
}

// Friends returns the ids of the user's confirmed friends.
func (s *RelationshipService) Friends(userID string) (models.IDSet, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	return user.Friends, nil
}
