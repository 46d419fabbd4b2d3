package dto

import "github.com/pratyush0898/OnlyCodes/internal/models"

// Preferences is the For You configuration of a user
type Preferences struct {
	PreferredTags      []string `json:"preferred_tags"`
	PreferredLanguages []string `json:"preferred_languages"`
}

// UpdatePreferencesRequest changes only the lists that are present
type UpdatePreferencesRequest struct {
	PreferredTags      *[]string `json:"preferred_tags,omitempty"`
	PreferredLanguages *[]string `json:"preferred_languages,omitempty"`
}

// ToPreferences never returns nil slices, so an absent row renders as []
func ToPreferences(p *models.UserPreference) Preferences {
	out := Preferences{PreferredTags: []string{}, PreferredLanguages: []string{}}
	if p == nil {
		return out
	}
	if p.PreferredTags != nil {
		out.PreferredTags = p.PreferredTags
	}
	if p.PreferredLanguages != nil {
		out.PreferredLanguages = p.PreferredLanguages
	}
	return out
}
