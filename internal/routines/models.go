// internal/routines/models.go

package routines

import (
	"time"

	"cloud.google.com/go/civil"

	"github.com/rikacare/rika-backend/internal/streaks"
)

const (
	TypeMorning = "morning"
	TypeEvening = "evening"
	TypeWeekly  = "weekly"
	TypeDaily   = "daily"
)

// Routine is a logged skincare or haircare session. A completed routine on
// a calendar day marks the day as done for the streak.
type Routine struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"userId"`
	Type        string     `json:"type"`
	Products    []string   `json:"products"`
	Completed   bool       `json:"completed"`
	Notes       string     `json:"notes,omitempty"`
	CompletedOn civil.Date `json:"date"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type CreateRoutineRequest struct {
	Type      string   `json:"type" validate:"required,oneof=morning evening weekly daily"`
	Products  []string `json:"products" validate:"max=50,dive,required,max=255"`
	Completed bool     `json:"completed"`
	Notes     string   `json:"notes" validate:"max=1000"`
}

// Completion is the outcome of CompleteDay
type Completion struct {
	Message          string         `json:"message"`
	Streak           *streaks.State `json:"streak"`
	Milestone        *string        `json:"milestone"`
	AlreadyCompleted bool           `json:"alreadyCompleted"`
	PointsAwarded    int            `json:"pointsAwarded"`
}
