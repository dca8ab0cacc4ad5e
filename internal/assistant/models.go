// internal/assistant/models.go

package assistant

// Turn is one prior message in the conversation
type Turn struct {
	Role    string `json:"role" validate:"oneof=user assistant"`
	Content string `json:"content" validate:"max=2000"`
}

// ChatRequest carries the client's history so it can round-trip it; replies are
// computed from the message and the user's current state.
type ChatRequest struct {
	Message string `json:"message" validate:"required,max=1000"`
	History []Turn `json:"history" validate:"max=50,dive"`
}

type Reply struct {
	Reply              string   `json:"reply"`
	SuggestedFollowUps []string `json:"suggestedFollowUps"`
	Intent             Intent   `json:"intent"`
}

// Suggestion is a recommended product reduced to what the replies mention
type Suggestion struct {
	Name           string `json:"name"`
	Brand          string `json:"brand"`
	Category       string `json:"category"`
	WhyRecommended string `json:"whyRecommended"`
}

// UserContext is everything the responder knows about the caller
type UserContext struct {
	Name           string
	SkinType       string
	SkinConcerns   []string
	HairType       string
	HairConcerns   []string
	Sensitivities  []string
	CompletedToday bool
	TotalPoints    int
	Streak         int
	Top            []Suggestion
	SimilarSkin    int
	SimilarHair    int
}

func (uc *UserContext) firstOf(category string) *Suggestion {
	for i := range uc.Top {
		if uc.Top[i].Category == category {
			return &uc.Top[i]
		}
	}
	return nil
}
