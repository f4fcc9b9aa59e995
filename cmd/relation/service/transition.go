package service

import "github.com/vistream/vistream/pkg/errno"

// subscribeOutcome decides a subscribe request from the current ledger
// state. A nil result means the pair should be inserted. Subscribing to
// your own channel fails the same way whatever the ledger says.
func subscribeOutcome(subscriberId, channelId int64, subscribed bool) error {
	if subscriberId == channelId {
		return errno.InvalidOperationErr.WithMessage("cannot subscribe to your own channel")
	}
	if subscribed {
		return errno.ConflictErr.WithMessage("already subscribed")
	}
	return nil
}

// unsubscribeOutcome maps the number of ledger rows the delete removed
// onto the operation result.
func unsubscribeOutcome(removed int64) error {
	if removed == 0 {
		return errno.NotFoundErr.WithMessage("not subscribed")
	}
	return nil
}
