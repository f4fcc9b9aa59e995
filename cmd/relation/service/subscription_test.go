package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vistream/vistream/pkg/errno"
)

func errCodeOf(t *testing.T, err error) int64 {
	t.Helper()
	require.Error(t, err)
	return errno.ConvertErr(err).ErrCode
}

func TestSubscribeOutcome(t *testing.T) {
	cases := []struct {
		name         string
		subscriberId int64
		channelId    int64
		subscribed   bool
		wantCode     int64
	}{
		{"fresh subscribe proceeds", 1, 2, false, 0},
		{"repeated subscribe conflicts", 1, 2, true, errno.ConflictErrCode},
		{"self subscribe rejected", 5, 5, false, errno.InvalidOperationCode},
		{"self subscribe rejected even when ledger has the pair", 5, 5, true, errno.InvalidOperationCode},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := subscribeOutcome(tc.subscriberId, tc.channelId, tc.subscribed)
			if tc.wantCode == 0 {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tc.wantCode, errCodeOf(t, err))
		})
	}
}

func TestUnsubscribeOutcome(t *testing.T) {
	t.Run("removed row succeeds", func(t *testing.T) {
		assert.NoError(t, unsubscribeOutcome(1))
	})
	t.Run("nothing removed is not found", func(t *testing.T) {
		assert.Equal(t, int64(errno.NotFoundErrCode), errCodeOf(t, unsubscribeOutcome(0)))
	})
}

// Walks the full subscribe/unsubscribe cycle against a simulated ledger:
// subscribing twice conflicts, unsubscribing twice falls through to not
// found, and the cycle restarts cleanly.
func TestSubscriptionStateMachine(t *testing.T) {
	const (
		subscriber = int64(1)
		channel    = int64(2)
	)
	subscribed := false

	// First subscribe inserts the pair.
	require.NoError(t, subscribeOutcome(subscriber, channel, subscribed))
	subscribed = true

	// Subscribing again is a conflict, not a no-op.
	assert.Equal(t, int64(errno.ConflictErrCode), errCodeOf(t, subscribeOutcome(subscriber, channel, subscribed)))

	// Unsubscribe deletes exactly one ledger row.
	require.NoError(t, unsubscribeOutcome(1))
	subscribed = false

	// A second unsubscribe deletes nothing.
	assert.Equal(t, int64(errno.NotFoundErrCode), errCodeOf(t, unsubscribeOutcome(0)))

	// The pair can be re-created after the cycle.
	assert.NoError(t, subscribeOutcome(subscriber, channel, subscribed))
}
