package provider

import "context"

type IIdentityProvider interface {
	VerifyToken(ctx context.Context, accessToken string) (string, error)
	UpdateProfile(ctx context.Context, userID string, name string) (map[string]any, error)
}
