// internal/points/models.go

package points

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// ActionRedeem marks history entries written by reward redemption
const ActionRedeem = "REDEEM"

// Entry is one signed change to a balance
type Entry struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	Points     int       `json:"points"`
	Timestamp  time.Time `json:"timestamp"`
	RewardID   int64     `json:"rewardId,omitempty"`
	RewardName string    `json:"rewardName,omitempty"`
	PointsUsed int       `json:"pointsUsed,omitempty"`
}

// History is stored as a JSONB array, oldest first
type History []Entry

func (h History) Value() (driver.Value, error) {
	if h == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(h)
}

func (h *History) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*h = History{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("points: unsupported history type")
	}
	out := History{}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*h = out
	return nil
}

// Sum adds up the signed points of every entry
func (h History) Sum() int {
	total := 0
	for _, e := range h {
		total += e.Points
	}
	return total
}

// Account is a user's balance and the history that produced it.
// TotalPoints always equals History.Sum().
type Account struct {
	UserID      int64   `json:"-"`
	TotalPoints int     `json:"totalPoints"`
	History     History `json:"history"`
}

type AddResult struct {
	TotalPoints int `json:"totalPoints"`
	Added       int `json:"added"`
}

type AddPointsRequest struct {
	Action string `json:"action" validate:"required,max=120"`
	Points int    `json:"points" validate:"gt=0"`
}
