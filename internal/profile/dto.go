// internal/profile/dto.go

package profile

// UpdateProfileRequest replaces the beauty profile. Nil pointers leave the field unchanged.
type UpdateProfileRequest struct {
	DisplayName             *string  `json:"displayName" validate:"omitempty,min=1,max=120"`
	SkinType                *string  `json:"skinType" validate:"omitempty,oneof=dry oily combination sensitive normal"`
	SkinConcerns            []string `json:"skinConcerns" validate:"omitempty,max=7,dive,oneof=acne aging dark_spots dryness oiliness sensitivity large_pores"`
	HairType                *string  `json:"hairType" validate:"omitempty,oneof=straight wavy curly coily"`
	HairConcerns            []string `json:"hairConcerns" validate:"omitempty,max=6,dive,oneof=frizz damage dryness breakage thinning dandruff"`
	IngredientSensitivities []string `json:"ingredientSensitivities" validate:"omitempty,max=30,dive,min=2,max=60"`
	CleanBeautyPreference   *bool    `json:"cleanBeautyPreference"`
}

// LanguageRequest updates the preferred language
type LanguageRequest struct {
	Language string `json:"language" validate:"required,oneof=en es fr de pt it"`
}
