package domain

import (
	"context"
	"time"
)

// UserProfile is the read-only view of a user maintained by the identity provider.
type UserProfile struct {
	ID              string
	DisplayName     string
	Username        string
	Email           string
	ProfileImageURL string
	City            string
	Country         string
}

// Public strips fields that must not leave the service in event responses.
func (u *UserProfile) Public() *PublicUserProfile {
	if u == nil {
		return nil
	}
	return &PublicUserProfile{
		ID:              u.ID,
		DisplayName:     u.DisplayName,
		Username:        u.Username,
		ProfileImageURL: u.ProfileImageURL,
		City:            u.City,
		Country:         u.Country,
	}
}

// PublicUserProfile is the owner information embedded in event details.
// swagger:model PublicUserProfile
type PublicUserProfile struct {
	ID              string `json:"id"`
	DisplayName     string `json:"display_name"`
	Username        string `json:"username"`
	ProfileImageURL string `json:"profile_image_url"`
	City            string `json:"city"`
	Country         string `json:"country"`
}

// TokenIssuer issues tokens (e.g. JWT) for a user. Only used by local tooling; production tokens
// come from the identity provider.
type TokenIssuer interface {
	Issue(userID string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// UserRepository reads user profiles.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*UserProfile, error)
}
