package service

// ToggleAction is the effect a reaction request has on the caller's
// existing reaction row.
type ToggleAction int

const (
	// ActionCreate inserts a new reaction row.
	ActionCreate ToggleAction = iota
	// ActionDelete removes the existing row; the request repeated the
	// current reaction, which toggles it off.
	ActionDelete
	// ActionSwitch rewrites the row to the other reaction kind.
	ActionSwitch
)

// ToggleTransition decides what a reaction request does given the
// caller's current reaction ("" when none). A user holds at most one
// reaction per video, so switching never needs a separate remove step.
func ToggleTransition(current, requested string) ToggleAction {
	switch {
	case current == "":
		return ActionCreate
	case current == requested:
		return ActionDelete
	default:
		return ActionSwitch
	}
}

// reactionAfter is the reaction the user ends up with.
func reactionAfter(current, requested string) string {
	if ToggleTransition(current, requested) == ActionDelete {
		return ""
	}
	return requested
}
