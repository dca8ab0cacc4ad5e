// internal/analysis/expert.go

package analysis

import (
	"strings"
)

const (
	skinDisclaimer = "These are general skincare suggestions. Individual results may vary. Consult a dermatologist for persistent issues."
	hairDisclaimer = "This hair analysis provides general care guidance. For significant hair loss, scalp conditions, or other hair-related medical concerns, consult a trichologist or dermatologist."

	hairSafetyNote         = "Avoid harsh chemicals, excessive heat, and tight styling that may cause damage."
	hairProfessionalAdvice = "For significant hair concerns, consult a trichologist or dermatologist."

	minUnreferredAge  = 13
	maxAllergiesNoRef = 3
)

type skinCare struct {
	ingredients []string
	avoid       []string
	routine     []string
	tips        []string
}

var skinCareByType = map[string]skinCare{
	"dry": {
		ingredients: []string{"hyaluronic acid", "ceramides", "glycerin", "squalane", "niacinamide"},
		avoid:       []string{"alcohol", "strong fragrances", "harsh sulfates"},
		routine:     []string{"gentle cream cleanser", "hydrating toner", "rich moisturizer", "sunscreen"},
		tips:        []string{"Use lukewarm water", "Pat dry, don't rub", "Apply moisturizer on damp skin"},
	},
	"oily": {
		ingredients: []string{"salicylic acid", "niacinamide", "zinc", "clay", "retinol"},
		avoid:       []string{"over-cleansing", "harsh scrubs", "heavy oils"},
		routine:     []string{"gel cleanser", "BHA toner", "lightweight moisturizer", "oil-free sunscreen"},
		tips:        []string{"Don't skip moisturizer", "Use clay masks 1-2x weekly", "Blot excess oil, don't wash"},
	},
	"sensitive": {
		ingredients: []string{"aloe vera", "chamomile", "oat extract", "zinc oxide", "ceramides"},
		avoid:       []string{"fragrances", "essential oils", "alcohol", "harsh acids", "retinoids"},
		routine:     []string{"gentle cleanser", "fragrance-free moisturizer", "mineral sunscreen"},
		tips:        []string{"Patch test everything", "Introduce one product at a time", "Use minimal ingredients"},
	},
	"combination": {
		ingredients: []string{"niacinamide", "hyaluronic acid", "gentle BHA", "lightweight oils"},
		avoid:       []string{"one-size-fits-all products", "over-treating oily areas"},
		routine:     []string{"gentle cleanser", "targeted treatments", "different moisturizers for different areas"},
		tips:        []string{"Treat T-zone and cheeks differently", "Use lighter products in summer", "Don't over-complicate"},
	},
	"normal": {
		ingredients: []string{"vitamin C", "retinol", "hyaluronic acid", "peptides"},
		avoid:       []string{"over-exfoliating", "too many active ingredients"},
		routine:     []string{"gentle cleanser", "antioxidant serum", "moisturizer", "broad-spectrum SPF"},
		tips:        []string{"Maintain consistency", "Focus on prevention", "Listen to your skin's needs"},
	},
}

var concernAdvice = map[string]ConcernAdvice{
	"acne": {
		Advice:   "Gentle salicylic acid products and a consistent routine without over-cleansing. Consider OTC benzoyl peroxide for moderate breakouts and see a dermatologist for severe acne.",
		Products: []string{"salicylic acid cleansers", "benzoyl peroxide spot treatments", "non-comedogenic moisturizers"},
	},
	"dryness": {
		Advice:   "Hyaluronic acid serums, ceramide moisturizers, avoid hot water",
		Products: []string{"gentle cream cleansers", "hydrating toners", "occlusive moisturizers"},
	},
	"sensitivity": {
		Advice:   "Minimal ingredient products, patch testing, fragrance-free formulas",
		Products: []string{"mineral sunscreens", "oat-based cleansers", "ceramide moisturizers"},
	},
	"aging": {
		Advice:   "Consistent sunscreen use, gentle retinol introduction, antioxidants",
		Products: []string{"vitamin C serums", "peptide creams", "broad-spectrum SPF"},
	},
	"dark_spots": {
		Advice:   "Vitamin C, gentle exfoliation, religious sunscreen use",
		Products: []string{"niacinamide serums", "kojic acid treatments", "SPF 30+ daily"},
	},
	"oiliness": {
		Advice:   "Lightweight oil-free hydration and weekly clay masks; blot instead of washing more often",
		Products: []string{"gel cleansers", "niacinamide serums", "oil-free moisturizers"},
	},
	"large_pores": {
		Advice:   "Regular gentle BHA exfoliation and daily sunscreen to keep pores clear",
		Products: []string{"BHA toners", "clay masks", "niacinamide serums"},
	},
}

var defaultConcernAdvice = ConcernAdvice{
	Advice:   "Maintain gentle, consistent routine and consult professional if persistent",
	Products: []string{"gentle cleansers", "basic moisturizers", "sunscreen"},
}

// medicalFlags are symptom fragments that always route to a dermatologist
var medicalFlags = []string{
	"persistent redness",
	"mole",
	"growth",
	"cyst",
	"rash",
	"hair loss",
	"bleeding",
	"open sore",
}

type hairCare struct {
	care     []string
	products []string
}

var hairCareByType = map[string]hairCare{
	"straight": {
		care:     []string{"lightweight products", "avoid heavy oils", "gentle brushing"},
		products: []string{"volumizing shampoos", "light conditioners", "heat protectants"},
	},
	"wavy": {
		care:     []string{"scrunch don't brush when wet", "use microfiber towels", "avoid sulfates"},
		products: []string{"curl-enhancing creams", "leave-in conditioners", "diffuser drying"},
	},
	"curly": {
		care:     []string{"co-washing method", "wide-tooth comb only", "plopping technique"},
		products: []string{"curl creams", "deep conditioners", "gel for hold"},
	},
	"coily": {
		care:     []string{"protective styling", "deep conditioning weekly", "gentle detangling"},
		products: []string{"heavy creams", "natural oils", "leave-in treatments"},
	},
}

var hairTextureCare = map[string][]string{
	"fine":   {"lightweight products", "avoid over-conditioning", "gentle handling"},
	"medium": {"balanced products", "regular conditioning", "moderate styling"},
	"thick":  {"rich products", "deep conditioning", "stronger styling products"},
}

var cautionIngredients = map[string]string{
	"retinol":          "Start slowly, use at night, increase sun protection",
	"salicylic acid":   "May cause dryness, start with low concentration",
	"glycolic acid":    "Can increase sun sensitivity, use sunscreen",
	"benzoyl peroxide": "May bleach fabrics, can cause dryness",
	"essential oils":   "Potential allergens, patch test recommended",
}

var avoidIngredients = map[string]string{
	"hydroquinone":             "Requires professional supervision",
	"tretinoin":                "Prescription only, professional guidance needed",
	"high concentration acids": "Professional treatment recommended",
}

// skinAnswers is a quiz after profile fallbacks have been applied
type skinAnswers struct {
	skinType  string
	concerns  []string
	symptoms  []string
	age       int
	allergies []string
}

// referralFor returns nil when the answers can be handled with general advice.
// Medical symptoms win over age, which wins over allergies.
func referralFor(a skinAnswers) *Referral {
	for _, s := range a.symptoms {
		s = strings.ToLower(s)
		for _, flag := range medicalFlags {
			if strings.Contains(s, flag) {
				return &Referral{
					Specialist: "dermatologist",
					Message:    "Based on your concerns, we recommend consulting a dermatologist for proper evaluation.",
					Urgency:    "moderate",
				}
			}
		}
	}
	if a.age > 0 && a.age < minUnreferredAge {
		return &Referral{
			Specialist: "pediatric_dermatologist",
			Message:    "For users under 13, please consult with a pediatric dermatologist for skincare guidance.",
			Urgency:    "low",
		}
	}
	if len(a.allergies) > maxAllergiesNoRef {
		return &Referral{
			Specialist: "allergist",
			Message:    "With multiple known allergies, an allergist consultation would be beneficial for safe product selection.",
			Urgency:    "moderate",
		}
	}
	return nil
}

func skinResult(a skinAnswers) Result {
	if ref := referralFor(a); ref != nil {
		return Result{Outcome: OutcomeReferral, Referral: ref, Disclaimer: skinDisclaimer}
	}

	care, ok := skinCareByType[a.skinType]
	if !ok {
		care = skinCareByType["normal"]
	}
	concerns := make([]ConcernAdvice, 0, len(a.concerns))
	for _, c := range a.concerns {
		advice, ok := concernAdvice[c]
		if !ok {
			advice = defaultConcernAdvice
		}
		advice.Concern = c
		concerns = append(concerns, advice)
	}

	return Result{
		Outcome:          OutcomeRecommendations,
		SkinType:         a.skinType,
		SafeIngredients:  care.ingredients,
		AvoidIngredients: care.avoid,
		BasicRoutine:     care.routine,
		CareTips:         care.tips,
		Concerns:         concerns,
		Disclaimer:       skinDisclaimer,
	}
}

func hairResult(hairType, texture string) Result {
	care, ok := hairCareByType[hairType]
	if !ok {
		care = hairCare{
			care:     []string{"gentle care", "regular conditioning"},
			products: []string{"mild shampoo", "basic conditioner"},
		}
	}
	textureCare, ok := hairTextureCare[texture]
	if !ok {
		textureCare = []string{"gentle care"}
	}

	return Result{
		Outcome:             OutcomeRecommendations,
		HairType:            hairType,
		HairTexture:         texture,
		CareRoutine:         care.care,
		RecommendedProducts: care.products,
		TextureSpecific:     textureCare,
		SafetyNote:          hairSafetyNote,
		ProfessionalAdvice:  hairProfessionalAdvice,
		Disclaimer:          hairDisclaimer,
	}
}

// checkIngredients sorts ingredients into safe, caution and avoid.
// Anything matching one of the user's sensitivities is moved to avoid.
func checkIngredients(ingredients, sensitivities []string, skinType string, age int) *SafetyReport {
	report := &SafetyReport{
		Safe:            []string{},
		Caution:         []IngredientNote{},
		Avoid:           []IngredientNote{},
		Recommendations: []string{},
	}

	for _, ing := range ingredients {
		lower := strings.ToLower(strings.TrimSpace(ing))
		if s := matchSensitivity(lower, sensitivities); s != "" {
			report.Avoid = append(report.Avoid, IngredientNote{Ingredient: ing, Note: "You avoid " + s})
			continue
		}
		if note, ok := avoidIngredients[lower]; ok {
			report.Avoid = append(report.Avoid, IngredientNote{Ingredient: ing, Note: note})
			continue
		}
		if note, ok := cautionIngredients[lower]; ok {
			report.Caution = append(report.Caution, IngredientNote{Ingredient: ing, Note: note})
			continue
		}
		report.Safe = append(report.Safe, ing)
	}

	if skinType == "sensitive" {
		report.Recommendations = append(report.Recommendations, "With sensitive skin, introduce new ingredients one at a time")
	}
	if age > 0 && age < 25 {
		report.Recommendations = append(report.Recommendations, "Focus on gentle, preventive care rather than anti-aging actives")
	}
	return report
}

func matchSensitivity(ingredient string, sensitivities []string) string {
	for _, s := range sensitivities {
		if s != "" && strings.Contains(ingredient, strings.ToLower(s)) {
			return s
		}
	}
	return ""
}
