package dto

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type UpdateProfileRequest struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}
