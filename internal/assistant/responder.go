// internal/assistant/responder.go

package assistant

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/rikacare/rika-backend/internal/catalog"
)

type Intent string

const (
	IntentGreeting       Intent = "greeting"
	IntentRecommendation Intent = "recommendation"
	IntentSkin           Intent = "skin"
	IntentHair           Intent = "hair"
	IntentRoutine        Intent = "routine"
	IntentPoints         Intent = "points"
	IntentIngredients    Intent = "ingredients"
	IntentGeneral        Intent = "general"
)

var greetingWords = map[string]bool{"hello": true, "hi": true, "hey": true}

// intentKeywords is checked in order after greetings; the first match wins
var intentKeywords = []struct {
	intent   Intent
	keywords []string
}{
	{IntentRecommendation, []string{"recommend", "product", "suggest"}},
	{IntentSkin, []string{"skin", "face", "acne", "dry"}},
	{IntentHair, []string{"hair", "scalp", "frizz", "curl"}},
	{IntentRoutine, []string{"routine", "progress", "streak"}},
	{IntentPoints, []string{"point", "reward", "earn"}},
	{IntentIngredients, []string{"ingredient", "avoid", "sensitive"}},
}

// Classify maps a message to the intent that answers it.
// Greetings match whole words so "this" or "which" are not read as "hi".
func Classify(message string) Intent {
	msg := strings.ToLower(message)

	words := strings.FieldsFunc(msg, func(r rune) bool { return !unicode.IsLetter(r) })
	for _, w := range words {
		if greetingWords[w] {
			return IntentGreeting
		}
	}
	for _, ik := range intentKeywords {
		for _, kw := range ik.keywords {
			if strings.Contains(msg, kw) {
				return ik.intent
			}
		}
	}
	return IntentGeneral
}

// Respond builds the reply for message from the caller's context. It is pure.
func Respond(message string, uc *UserContext) Reply {
	intent := Classify(message)
	var b strings.Builder
	var followUps []string

	switch intent {
	case IntentGreeting:
		fmt.Fprintf(&b, "Hi %s! I'm your Rika Care assistant. I'm here to help with your skincare and haircare journey. ", uc.Name)
		if uc.SkinType != "" {
			fmt.Fprintf(&b, "I see you have %s skin. ", uc.SkinType)
		}
		b.WriteString("What would you like to know about today?")
		followUps = []string{"What products do you recommend for me?", "How is my routine going?", "Tell me about my skin type"}

	case IntentRecommendation:
		if len(uc.Top) > 0 {
			top := uc.Top[0]
			fmt.Fprintf(&b, "Based on your %s skin profile, I'd recommend trying %s by %s. ", orDefault(uc.SkinType, "unique"), top.Name, top.Brand)
			fmt.Fprintf(&b, "%s. ", strings.TrimSuffix(top.WhyRecommended, "."))
			if uc.SimilarSkin > 0 && uc.SkinType != "" {
				fmt.Fprintf(&b, "Many Rika Care users with %s skin like you have found this helpful.", uc.SkinType)
			}
		} else {
			b.WriteString("I'd love to give you personalized recommendations! Complete your beauty profile first so I can suggest products that match your skin and specific concerns.")
		}
		followUps = []string{"Tell me more about this product", "What about hair products?", "How do I use this?"}

	case IntentSkin:
		if uc.SkinType != "" {
			fmt.Fprintf(&b, "For your %s skin, ", uc.SkinType)
			if len(uc.SkinConcerns) > 0 {
				fmt.Fprintf(&b, "I understand you're dealing with %s. ", humanList(uc.SkinConcerns, " and "))
			}
			b.WriteString("Focus on gentle, consistent routines. ")
			if len(uc.Sensitivities) > 0 {
				fmt.Fprintf(&b, "Since you avoid %s, look for products that are free from these ingredients. ", strings.Join(uc.Sensitivities, ", "))
			}
			if p := uc.firstOf(string(catalog.CategorySkin)); p != nil {
				fmt.Fprintf(&b, "I'd suggest checking out %s, it's formulated for your skin type.", p.Name)
			}
		} else {
			b.WriteString("I'd love to help with your skincare! First, let me learn about your skin type and concerns through your beauty profile. This helps me give you the most relevant advice.")
		}
		followUps = []string{"What ingredients should I avoid?", "How often should I use products?", "Tell me about my routine"}

	case IntentHair:
		if uc.HairType != "" {
			fmt.Fprintf(&b, "With your %s hair, ", uc.HairType)
			if len(uc.HairConcerns) > 0 {
				fmt.Fprintf(&b, "I see you're concerned about %s. ", humanList(uc.HairConcerns, " and "))
			}
			b.WriteString("The key is using products designed for your hair texture. ")
			if p := uc.firstOf(string(catalog.CategoryHair)); p != nil {
				fmt.Fprintf(&b, "%s could be perfect for you: %s. ", p.Name, strings.ToLower(strings.TrimSuffix(p.WhyRecommended, ".")))
			}
			if uc.SimilarHair > 0 {
				fmt.Fprintf(&b, "Many users with %s hair in our community have seen great results with consistent care.", uc.HairType)
			}
		} else {
			b.WriteString("Hair care is so personal! Tell me about your hair type and concerns in your profile, and I can give you much more targeted advice.")
		}
		followUps = []string{"What hair products do you recommend?", "How do I reduce frizz?", "Tell me about sulfate-free options"}

	case IntentRoutine:
		b.WriteString("You're doing great with your beauty journey! ")
		if uc.CompletedToday {
			b.WriteString("I see you've completed your routine today, that's fantastic! ")
		}
		if uc.Streak > 0 {
			fmt.Fprintf(&b, "Your %d-day streak shows real commitment. ", uc.Streak)
		}
		if uc.TotalPoints > 0 {
			fmt.Fprintf(&b, "You've earned %d points so far, which shows how engaged you are with your self-care. ", uc.TotalPoints)
		}
		b.WriteString("Consistency is key in skincare and haircare: small daily steps lead to the best results.")
		followUps = []string{"How can I improve my routine?", "What products should I add?", "Tell me about my points"}

	case IntentPoints:
		fmt.Fprintf(&b, "You currently have %d points! You earn points by completing routines, engaging with the community, and maintaining streaks. ", uc.TotalPoints)
		if uc.Streak > 0 {
			fmt.Fprintf(&b, "Your current %d-day streak is helping you earn bonus points. ", uc.Streak)
		}
		b.WriteString("Points can be redeemed for discounts, free samples, and exclusive consultations in our rewards store.")
		followUps = []string{"How do I earn more points?", "What rewards are available?", "Tell me about streaks"}

	case IntentIngredients:
		if len(uc.Sensitivities) > 0 {
			fmt.Fprintf(&b, "I see you avoid %s. This is smart for maintaining healthy skin! ", strings.Join(uc.Sensitivities, ", "))
			b.WriteString("Always check ingredient lists, and look for products specifically labeled as free from these ingredients. ")
		} else {
			b.WriteString("Ingredient awareness is so important! Common ingredients to watch for include fragrances, sulfates, and parabens if you have sensitive skin. ")
		}
		b.WriteString("Rika Care's clean beauty filters can help you find products that match your preferences.")
		followUps = []string{"What are clean beauty products?", "How do I read ingredient lists?", "Show me fragrance-free options"}

	default:
		b.WriteString("I'm here to help with your skincare and haircare questions! ")
		var known []string
		if uc.SkinType != "" {
			known = append(known, uc.SkinType+" skin")
		}
		if uc.HairType != "" {
			known = append(known, uc.HairType+" hair")
		}
		if len(known) > 0 {
			fmt.Fprintf(&b, "I know about your %s, so feel free to ask specific questions. ", strings.Join(known, " and "))
		}
		b.WriteString("What would you like to know about?")
		followUps = []string{"Recommend products for me", "Help with my routine", "Tell me about ingredients", "How do I earn points?"}
	}

	return Reply{
		Reply:              strings.TrimSpace(b.String()),
		SuggestedFollowUps: followUps,
		Intent:             intent,
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// humanList turns enum values like dark_spots into words
func humanList(values []string, sep string) string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ReplaceAll(v, "_", " ")
	}
	return strings.Join(out, sep)
}
