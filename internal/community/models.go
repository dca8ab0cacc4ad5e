// internal/community/models.go

package community

import (
	"encoding/json"
	"time"
)

const (
	VisibilityPublic = "PUBLIC"

	MaxContentLength = 280
	MaxImages        = 5
	DefaultFeedLimit = 20
	MaxFeedLimit     = 100
	FollowersPreview = 50
)

// Author is the public identity shown next to a post
type Author struct {
	Name     string `json:"name"`
	Initials string `json:"initials"`
}

type Post struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"userId"`
	Content         string          `json:"content"`
	RoutineSnapshot json.RawMessage `json:"routineSnapshot,omitempty"`
	Images          []string        `json:"images"`
	Visibility      string          `json:"visibility"`
	CreatedAt       time.Time       `json:"createdAt"`

	// Joined fields
	LikeCount int    `json:"likeCount"`
	UserLiked bool   `json:"userLiked"`
	User      Author `json:"user"`
}

type CreatePostRequest struct {
	Content         string          `json:"content" validate:"required,max=280"`
	RoutineSnapshot json.RawMessage `json:"routineSnapshot,omitempty"`
	Images          []string        `json:"images" validate:"max=5,dive,url"`
}

type LikeResult struct {
	Liked     bool   `json:"liked"`
	LikeCount int    `json:"likeCount"`
	Action    string `json:"action"`
}

type FollowResult struct {
	Following      bool `json:"following"`
	FollowersCount int  `json:"followersCount"`
}

type Followers struct {
	Count     int     `json:"count"`
	Followers []int64 `json:"followers"`
}

// Influencer program states
const (
	StatusEligible = "eligible"
	StatusPending  = "pending"
)

type InfluencerStatus struct {
	Status     string    `json:"status"`
	Tier       string    `json:"tier"`
	Commission float64   `json:"commission,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Eligibility struct {
	Eligible    bool     `json:"eligible"`
	Requirement string   `json:"requirement,omitempty"`
	Remaining   int      `json:"remaining,omitempty"`
	Tier        string   `json:"tier,omitempty"`
	Commission  string   `json:"commission,omitempty"`
	Benefits    []string `json:"benefits,omitempty"`
}

type InfluencerOverview struct {
	FollowersCount int               `json:"followersCount"`
	Status         *InfluencerStatus `json:"status"`
	Eligibility    Eligibility       `json:"eligibility"`
}
