package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vistream/vistream/pkg/constants"
)

func TestToggleTransition(t *testing.T) {
	cases := []struct {
		name      string
		current   string
		requested string
		want      ToggleAction
	}{
		{"no reaction, like", "", constants.ReactionLike, ActionCreate},
		{"no reaction, dislike", "", constants.ReactionDislike, ActionCreate},
		{"like repeated", constants.ReactionLike, constants.ReactionLike, ActionDelete},
		{"dislike repeated", constants.ReactionDislike, constants.ReactionDislike, ActionDelete},
		{"like then dislike", constants.ReactionLike, constants.ReactionDislike, ActionSwitch},
		{"dislike then like", constants.ReactionDislike, constants.ReactionLike, ActionSwitch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ToggleTransition(tc.current, tc.requested))
		})
	}
}

func TestReactionAfter(t *testing.T) {
	t.Run("repeating removes", func(t *testing.T) {
		assert.Equal(t, "", reactionAfter(constants.ReactionLike, constants.ReactionLike))
		assert.Equal(t, "", reactionAfter(constants.ReactionDislike, constants.ReactionDislike))
	})
	t.Run("switching keeps the requested kind", func(t *testing.T) {
		assert.Equal(t, constants.ReactionDislike, reactionAfter(constants.ReactionLike, constants.ReactionDislike))
		assert.Equal(t, constants.ReactionLike, reactionAfter(constants.ReactionDislike, constants.ReactionLike))
	})
	t.Run("fresh reaction sticks", func(t *testing.T) {
		assert.Equal(t, constants.ReactionLike, reactionAfter("", constants.ReactionLike))
	})
}

// A toggle applied twice always returns to the starting state, whatever
// the starting state was.
func TestTogglePairIsIdempotent(t *testing.T) {
	states := []string{"", constants.ReactionLike, constants.ReactionDislike}
	requests := []string{constants.ReactionLike, constants.ReactionDislike}
	for _, start := range states {
		for _, req := range requests {
			after := reactionAfter(start, req)
			restored := reactionAfter(after, req)
			if start == "" {
				assert.Equal(t, "", restored, "start=%q req=%q", start, req)
			} else if start == req {
				// Removing and re-adding lands back on the request.
				assert.Equal(t, req, restored)
			}
		}
	}
}

// Both toggle paths serialize on a mutex keyed by the (target, user)
// pair, so two requests from the same user contend while requests for
// different pairs stay independent.
func TestEngagementLockKeys(t *testing.T) {
	assert.Equal(t, "reaction:7:9", reactionLockKey(7, 9))
	assert.Equal(t, "commentlike:7:9", commentLikeLockKey(7, 9))

	t.Run("same pair shares a key", func(t *testing.T) {
		assert.Equal(t, commentLikeLockKey(3, 4), commentLikeLockKey(3, 4))
	})
	t.Run("pairs do not collide", func(t *testing.T) {
		assert.NotEqual(t, commentLikeLockKey(1, 2), commentLikeLockKey(2, 1))
		assert.NotEqual(t, commentLikeLockKey(1, 2), commentLikeLockKey(1, 3))
		// A comment like and a video reaction on the same ids must not
		// block each other.
		assert.NotEqual(t, reactionLockKey(1, 2), commentLikeLockKey(1, 2))
	})
}

// The user never ends up holding both reactions: whatever happens, the
// resulting state is one of none, like or dislike.
func TestToggleStateSpace(t *testing.T) {
	valid := map[string]bool{"": true, constants.ReactionLike: true, constants.ReactionDislike: true}
	for _, start := range []string{"", constants.ReactionLike, constants.ReactionDislike} {
		for _, req := range []string{constants.ReactionLike, constants.ReactionDislike} {
			assert.True(t, valid[reactionAfter(start, req)])
		}
	}
}
