package firebase

import (
	"context"

	"github.com/google/uuid"

	"github.com/fexraizen/lister-sub001/pkg/errors"
)

// DevIdentityClient stands in for Firebase Auth during local development:
// the bearer token is the user ID itself. Never wire this in production.
type DevIdentityClient struct{}

func NewDevIdentityClient() *DevIdentityClient {
	return &DevIdentityClient{}
}

func (d *DevIdentityClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	return uuid.New().String(), nil
}

func (d *DevIdentityClient) VerifyToken(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", errors.Unauthorized("Invalid or expired token", nil)
	}
	return token, nil
}
