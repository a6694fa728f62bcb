package services

import (
	"context"

	"github.com/rooluDev/goboard/apperr"
)

// PasswordGate authorizes mutating operations against the shared post
// password. Read paths never consult it.
type PasswordGate struct {
	gw Gateway
}

// NewPasswordGate returns a gate backed by the given gateway.
func NewPasswordGate(gw Gateway) *PasswordGate {
	return &PasswordGate{gw: gw}
}

// Authorize returns nil when plaintext matches the stored hash for the post.
// A mismatch yields an authentication error; a missing post surfaces as
// not-found from the gateway.
func (g *PasswordGate) Authorize(ctx context.Context, postID int64, plaintext string) error {
	ok, err := g.gw.VerifyPassword(ctx, postID, plaintext)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.New(apperr.KindAuthentication, "password does not match")
	}
	return nil
}
