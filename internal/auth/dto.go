package auth

import "github.com/taketwocare/solecare-backend/pkg/db/models"

// LoginInput carries the login form.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshInput carries the expired access token plus its refresh token.
type RefreshInput struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenPair is an access JWT and the refresh token that keeps it renewable.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginResult is what a successful login or refresh hands back.
type LoginResult struct {
	User   *models.User `json:"user,omitempty"`
	Tokens TokenPair    `json:"tokens"`
}
