package auth

import (
	"context"

	fbauth "firebase.google.com/go/v4/auth"
)

// FirebaseVerifier verifies Firebase Authentication ID tokens.
type FirebaseVerifier struct {
	client *fbauth.Client
}

func NewFirebaseVerifier(client *fbauth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

func (v *FirebaseVerifier) VerifyIDToken(ctx context.Context, token string) (Identity, error) {
	tok, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return Identity{}, err
	}
	id := Identity{UID: tok.UID}
	if email, ok := tok.Claims["email"].(string); ok {
		id.Email = email
	}
	return id, nil
}
