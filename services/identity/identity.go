package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
)

// ErrNoIdentity means the request carries no usable doctor identity.
var ErrNoIdentity = errors.New("no doctor identity on request")

// Resolver yields the current doctor's user id for a request. It is not an
// authentication layer: it only decides whose schedule and appointments are in scope.
type Resolver interface {
	ResolveDoctorUserID(ctx context.Context, r *http.Request) (string, error)
}

// StaticResolver always returns the configured doctor user id.
type StaticResolver struct {
	DoctorUserID string
}

func (s StaticResolver) ResolveDoctorUserID(context.Context, *http.Request) (string, error) {
	if s.DoctorUserID == "" {
		return "", ErrNoIdentity
	}
	return s.DoctorUserID, nil
}

// TokenVerifier is the part of the Firebase auth client used here.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseResolver reads the uid from a Firebase ID token in the Authorization header.
type FirebaseResolver struct {
	Verifier TokenVerifier
}

func (f FirebaseResolver) ResolveDoctorUserID(ctx context.Context, r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	token = strings.TrimSpace(token)
	if !ok || token == "" {
		return "", ErrNoIdentity
	}
	verified, err := f.Verifier.VerifyIDToken(ctx, token)
	if err != nil {
		return "", fmt.Errorf("failed to verify ID token: %w", err)
	}
	if verified.UID == "" {
		return "", ErrNoIdentity
	}
	return verified.UID, nil
}
