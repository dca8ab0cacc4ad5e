package assistant

import (
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := map[string]Intent{
		"Hello!":                          IntentGreeting,
		"hey, recommend something":        IntentGreeting,
		"Which product is best?":          IntentRecommendation,
		"this cream makes my face oily":   IntentSkin,
		"my curls are frizzy":             IntentHair,
		"how is my streak":                IntentRoutine,
		"how many points do I have":       IntentPoints,
		"what should I avoid?":            IntentIngredients,
		"thanks":                          IntentGeneral,
		"":                                IntentGeneral,
		"I'm so dry and my hair is flat":  IntentSkin,
		"philosophy of the third chapter": IntentGeneral,
	}
	for msg, want := range tests {
		if got := Classify(msg); got != want {
			t.Errorf("Classify(%q) = %s, want %s", msg, got, want)
		}
	}
}

func TestRespondGreetingUsesName(t *testing.T) {
	r := Respond("hi", &UserContext{Name: "Ada", SkinType: "dry"})
	if !strings.HasPrefix(r.Reply, "Hi Ada!") || !strings.Contains(r.Reply, "dry skin") {
		t.Fatalf("reply = %q", r.Reply)
	}
	if len(r.SuggestedFollowUps) != 3 {
		t.Fatalf("follow ups = %v", r.SuggestedFollowUps)
	}
}

func TestRespondRecommendation(t *testing.T) {
	uc := &UserContext{
		Name:        "Ada",
		SkinType:    "oily",
		SimilarSkin: 4,
		Top: []Suggestion{
			{Name: "Clarifying Salicylic Gel", Brand: "Neutrogena", Category: "skin", WhyRecommended: "Great choice - perfect for oily skin"},
		},
	}
	r := Respond("any product ideas?", uc)
	for _, want := range []string{"Clarifying Salicylic Gel by Neutrogena", "perfect for oily skin.", "Many Rika Care users with oily skin"} {
		if !strings.Contains(r.Reply, want) {
			t.Fatalf("reply %q missing %q", r.Reply, want)
		}
	}

	uc.SimilarSkin = 0
	if r := Respond("suggest something", uc); strings.Contains(r.Reply, "Many Rika Care users") {
		t.Fatalf("community line without similar users: %q", r.Reply)
	}

	empty := Respond("recommend", &UserContext{Name: "there"})
	if !strings.Contains(empty.Reply, "Complete your beauty profile") {
		t.Fatalf("reply = %q", empty.Reply)
	}
}

func TestRespondHairPicksHairProduct(t *testing.T) {
	uc := &UserContext{
		HairType:     "curly",
		HairConcerns: []string{"frizz"},
		Top: []Suggestion{
			{Name: "Barrier Cream", Category: "skin", WhyRecommended: "Great choice"},
			{Name: "Curl Shampoo", Category: "hair", WhyRecommended: "Great choice - Sulfate-Free"},
		},
	}
	r := Respond("help my scalp", uc)
	if !strings.Contains(r.Reply, "Curl Shampoo could be perfect for you: great choice - sulfate-free.") {
		t.Fatalf("reply = %q", r.Reply)
	}
	if strings.Contains(r.Reply, "Barrier Cream") {
		t.Fatalf("skin product in hair reply: %q", r.Reply)
	}
}

func TestRespondRoutineMentionsProgress(t *testing.T) {
	r := Respond("how's my progress", &UserContext{CompletedToday: true, Streak: 6, TotalPoints: 30})
	for _, want := range []string{"completed your routine today", "6-day streak", "earned 30 points"} {
		if !strings.Contains(r.Reply, want) {
			t.Fatalf("reply %q missing %q", r.Reply, want)
		}
	}

	quiet := Respond("routine", &UserContext{})
	if strings.Contains(quiet.Reply, "streak") || strings.Contains(quiet.Reply, "points") {
		t.Fatalf("zero state should not mention streak or points: %q", quiet.Reply)
	}
}

func TestRespondSkinJoinsConcerns(t *testing.T) {
	r := Respond("my skin", &UserContext{SkinType: "combination", SkinConcerns: []string{"acne", "dark_spots"}, Sensitivities: []string{"fragrance", "parabens"}})
	if !strings.Contains(r.Reply, "dealing with acne and dark spots") {
		t.Fatalf("reply = %q", r.Reply)
	}
	if !strings.Contains(r.Reply, "avoid fragrance, parabens") {
		t.Fatalf("reply = %q", r.Reply)
	}
}

func TestRespondDefaultListsKnownTypes(t *testing.T) {
	r := Respond("thanks", &UserContext{SkinType: "dry", HairType: "wavy"})
	if !strings.Contains(r.Reply, "your dry skin and wavy hair") {
		t.Fatalf("reply = %q", r.Reply)
	}
	if r.Intent != IntentGeneral || len(r.SuggestedFollowUps) != 4 {
		t.Fatalf("reply = %+v", r)
	}
	if r.Reply != strings.TrimSpace(r.Reply) {
		t.Fatal("reply not trimmed")
	}
}
