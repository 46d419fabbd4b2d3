package repository

import "gorm.io/gorm"

// Repositories is the data-access surface handed to the HTTP layer
type Repositories struct {
	Posts       PostRepository
	Social      SocialGraphRepository
	Engagement  EngagementRepository
	Preferences PreferenceRepository
	Profiles    ProfileRepository
	Tags        TagRepository
}

// New builds every repository over one connection
func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Posts:       NewPostRepository(db),
		Social:      NewSocialGraphRepository(db),
		Engagement:  NewEngagementRepository(db),
		Preferences: NewPreferenceRepository(db),
		Profiles:    NewProfileRepository(db),
		Tags:        NewTagRepository(db),
	}
}
