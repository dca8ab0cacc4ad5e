// internal/streaks/streak.go

package streaks

import (
	"cloud.google.com/go/civil"
)

// State is a user's consecutive-day activity record.
// LastActivityDate is nil until the first completed day.
type State struct {
	UserID           int64       `json:"userId"`
	CurrentStreak    int         `json:"currentStreak"`
	LongestStreak    int         `json:"longestStreak"`
	LastActivityDate *civil.Date `json:"lastActivityDate"`
}

// Advance returns the state after activity on today.
//
// Activity on the same day leaves the state unchanged, activity on the day
// after extends the streak, and anything else (a gap, or a date before the
// last activity) restarts it at 1. LongestStreak never decreases.
func Advance(state *State, today civil.Date) State {
	d := today
	if state == nil || state.LastActivityDate == nil {
		var userID int64
		if state != nil {
			userID = state.UserID
		}
		return State{UserID: userID, CurrentStreak: 1, LongestStreak: max(1, longestOf(state)), LastActivityDate: &d}
	}

	last := *state.LastActivityDate
	next := *state
	switch today.DaysSince(last) {
	case 0:
		next.LastActivityDate = &last
		return next
	case 1:
		next.CurrentStreak = state.CurrentStreak + 1
	default:
		next.CurrentStreak = 1
	}
	next.LongestStreak = max(state.LongestStreak, next.CurrentStreak)
	next.LastActivityDate = &d
	return next
}

func longestOf(s *State) int {
	if s == nil {
		return 0
	}
	return s.LongestStreak
}
