package middleware

import (
	"context"
	"encoding/hex"
	"net/http"

	"github.com/inkwell-gg/backend/pkg/discord"
	"github.com/inkwell-gg/backend/pkg/errorx"
	"github.com/inkwell-gg/backend/pkg/xcontext"
)

// VerifySignature rejects requests whose interaction signature does not
// match the configured bot public key. Skipped when no key is configured,
// which keeps local development simple.
func VerifySignature(ctx context.Context, r *http.Request) (context.Context, error) {
	publicKey := xcontext.Configs(ctx).Discord.PublicKey
	if publicKey == "" {
		return ctx, nil
	}

	key, err := hex.DecodeString(publicKey)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Invalid bot public key: %v", err)
		return nil, errorx.Unknown
	}

	if err := discord.Verify(r, key); err != nil {
		return nil, errorx.New(errorx.PermissionDenied, "Invalid request signature")
	}

	return ctx, nil
}

// WithUserID attributes the request to the invoking chat user.
func WithUserID(ctx context.Context, r *http.Request) (context.Context, error) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		return nil, errorx.New(errorx.PermissionDenied, "Missing user id")
	}

	return xcontext.WithRequestUserID(ctx, userID), nil
}
