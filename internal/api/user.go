package api

import (
	"context"

	"github.com/sweetnest/storefront/internal/models"
)

// UserAPI wrappers for the /users resource group (auth + profile)
type UserAPI struct {
	client *Client
}

// NewUserAPI creates the user resource wrapper
func NewUserAPI(client *Client) *UserAPI {
	return &UserAPI{client: client}
}

// AuthResponse the login/register response body
type AuthResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// RegisterRequest the registration body
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
}

// Login exchanges credentials for a user and bearer token
func (a *UserAPI) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	body := map[string]string{"email": email, "password": password}
	if err := a.client.Post(ctx, "/users/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and signs it in
func (a *UserAPI) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := a.client.Post(ctx, "/users/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Profile fetches the signed-in user's profile
func (a *UserAPI) Profile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := a.client.Get(ctx, "/users/profile", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile patches profile fields and returns the updated user
func (a *UserAPI) UpdateProfile(ctx context.Context, partial models.User) (*models.User, error) {
	var user models.User
	if err := a.client.Put(ctx, "/users/profile", partial, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateAvatar sets the profile picture to an already-uploaded image URL
func (a *UserAPI) UpdateAvatar(ctx context.Context, avatarURL string) (*models.User, error) {
	var user models.User
	body := map[string]string{"avatar": avatarURL}
	if err := a.client.Put(ctx, "/users/avatar", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
