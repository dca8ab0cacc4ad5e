// internal/rewards/models.go

package rewards

import "time"

type Type string

const (
	TypeDiscount     Type = "DISCOUNT"
	TypeFreeSample   Type = "FREE_SAMPLE"
	TypeConsultation Type = "CONSULTATION"
	TypeDigital      Type = "DIGITAL"
)

type Reward struct {
	ID             int64     `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Description    string    `json:"description" db:"description"`
	RequiredPoints int       `json:"requiredPoints" db:"required_points"`
	Type           Type      `json:"type" db:"type"`
	IsActive       bool      `json:"isActive" db:"is_active"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

type CreateRewardRequest struct {
	Name           string `json:"name" validate:"required,max=120"`
	Description    string `json:"description"`
	RequiredPoints int    `json:"requiredPoints" validate:"gt=0"`
	Type           Type   `json:"type" validate:"required,oneof=DISCOUNT FREE_SAMPLE CONSULTATION DIGITAL"`
}

type RedeemRequest struct {
	RewardID int64 `json:"rewardId"`
}

// RedeemResult is returned after a successful redemption
type RedeemResult struct {
	TotalPoints int    `json:"totalPoints"`
	Redeemed    bool   `json:"redeemed"`
	RewardName  string `json:"reward"`
}
