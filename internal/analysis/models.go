// internal/analysis/models.go

package analysis

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Kind is what was analyzed
type Kind string

const (
	KindSkin Kind = "skin"
	KindHair Kind = "hair"
)

// MethodQuiz is the only supported method; answers come from the user
const MethodQuiz = "quiz"

// Outcome tells the client which half of Result to render
type Outcome string

const (
	OutcomeRecommendations Outcome = "recommendations"
	OutcomeReferral        Outcome = "professional_referral"
)

// Referral replaces recommendations when the answers need a professional
type Referral struct {
	Specialist string `json:"specialist"`
	Message    string `json:"message"`
	Urgency    string `json:"urgency"`
}

type ConcernAdvice struct {
	Concern  string   `json:"concern"`
	Advice   string   `json:"advice"`
	Products []string `json:"products"`
}

// Result is stored as JSONB. Skin results fill the skin fields, hair results the hair fields.
type Result struct {
	Outcome  Outcome   `json:"outcome"`
	Referral *Referral `json:"referral,omitempty"`

	SkinType         string          `json:"skinType,omitempty"`
	SafeIngredients  []string        `json:"safeIngredients,omitempty"`
	AvoidIngredients []string        `json:"avoidIngredients,omitempty"`
	BasicRoutine     []string        `json:"basicRoutine,omitempty"`
	CareTips         []string        `json:"careTips,omitempty"`
	Concerns         []ConcernAdvice `json:"concerns,omitempty"`

	HairType            string   `json:"hairType,omitempty"`
	HairTexture         string   `json:"hairTexture,omitempty"`
	CareRoutine         []string `json:"careRoutine,omitempty"`
	RecommendedProducts []string `json:"recommendedProducts,omitempty"`
	TextureSpecific     []string `json:"textureSpecific,omitempty"`
	SafetyNote          string   `json:"safetyNote,omitempty"`
	ProfessionalAdvice  string   `json:"professionalAdvice,omitempty"`

	Disclaimer string `json:"disclaimer"`
}

func (r Result) Value() (driver.Value, error) {
	return json.Marshal(r)
}

func (r *Result) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("analysis: unsupported result type")
	}
	return json.Unmarshal(data, r)
}

// Analysis is one stored quiz run
type Analysis struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"-" db:"user_id"`
	Kind      Kind      `json:"type" db:"type"`
	Method    string    `json:"method" db:"method"`
	Result    Result    `json:"result" db:"result"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// SkinQuizRequest falls back to the profile's skin type and concerns when they are omitted
type SkinQuizRequest struct {
	Method    string   `json:"method" validate:"omitempty,oneof=quiz"`
	SkinType  string   `json:"skinType" validate:"omitempty,oneof=dry oily combination sensitive normal"`
	Concerns  []string `json:"concerns" validate:"max=10,dive,oneof=acne aging dark_spots dryness oiliness sensitivity large_pores"`
	Symptoms  []string `json:"symptoms" validate:"max=10,dive,max=200"`
	Age       int      `json:"age" validate:"omitempty,gte=1,lte=120"`
	Allergies []string `json:"allergies" validate:"max=30,dive,required,max=80"`
}

type HairQuizRequest struct {
	HairType    string   `json:"hairType" validate:"omitempty,oneof=straight wavy curly coily"`
	HairTexture string   `json:"hairTexture" validate:"omitempty,oneof=fine medium thick"`
	Concerns    []string `json:"concerns" validate:"max=10,dive,oneof=frizz damage dryness breakage thinning dandruff"`
}

type IngredientCheckRequest struct {
	Ingredients []string `json:"ingredients" validate:"required,min=1,max=100,dive,required,max=120"`
	Age         int      `json:"age" validate:"omitempty,gte=1,lte=120"`
}

type IngredientNote struct {
	Ingredient string `json:"ingredient"`
	Note       string `json:"note"`
}

// SafetyReport sorts a product's ingredients by how carefully they should be used
type SafetyReport struct {
	Safe            []string         `json:"safe"`
	Caution         []IngredientNote `json:"caution"`
	Avoid           []IngredientNote `json:"avoid"`
	Recommendations []string         `json:"recommendations"`
}
