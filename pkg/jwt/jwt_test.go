package jwt

import (
	"context"
	"testing"

	"vidtube.com/config"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
)

func newTokenService(t *testing.T) *TokenService {
	t.Helper()
	tokens, err := New(config.Jwt{Secret: "test-secret", AccessExpireMin: 15, RefreshExpireMin: 60})
	if err != nil {
		t.Fatalf("init jwt: %v", err)
	}
	return tokens
}

func TestGenerateTokenPair(t *testing.T) {
	tokens := newTokenService(t)

	access1, refresh1, err := tokens.GenerateTokenPair("65f0c8a1b2c3d4e5f6a7b8c9")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if access1 == "" || refresh1 == "" {
		t.Fatal("expected both tokens issued")
	}
	if access1 == refresh1 {
		t.Error("access and refresh token must differ")
	}

	// Issued back to back, almost certainly inside the same signing
	// second: each token must still be unique or rotation cannot
	// invalidate the previous pair.
	access2, refresh2, err := tokens.GenerateTokenPair("65f0c8a1b2c3d4e5f6a7b8c9")
	if err != nil {
		t.Fatalf("generate again: %v", err)
	}
	if refresh2 == refresh1 {
		t.Error("re-issued refresh token must not repeat the previous one")
	}
	if access2 == access1 {
		t.Error("re-issued access token must not repeat the previous one")
	}
}

func TestTokenTypeSeparation(t *testing.T) {
	tokens := newTokenService(t)

	h := server.Default()
	h.GET("/access-only", tokens.MiddlewareFunc(), func(ctx context.Context, c *app.RequestContext) {
		userId, _ := UserIdFromContext(ctx, c)
		c.String(200, userId)
	})
	h.GET("/refresh-only", tokens.RefreshMiddlewareFunc(), func(ctx context.Context, c *app.RequestContext) {
		c.String(200, "ok")
	})

	access, refresh, err := tokens.GenerateTokenPair("65f0c8a1b2c3d4e5f6a7b8c9")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	get := func(path, token string) int {
		w := ut.PerformRequest(h.Engine, "GET", path, nil,
			ut.Header{Key: "Authorization", Value: "Bearer " + token})
		return w.Result().StatusCode()
	}

	t.Run("AccessTokenOnAccessRoute", func(t *testing.T) {
		if code := get("/access-only", access); code != 200 {
			t.Errorf("expected 200, got %d", code)
		}
	})

	t.Run("RefreshTokenRejectedOnAccessRoute", func(t *testing.T) {
		if code := get("/access-only", refresh); code != 401 {
			t.Errorf("a refresh token must not open access routes, got %d", code)
		}
	})

	t.Run("AccessTokenRejectedOnRefreshRoute", func(t *testing.T) {
		if code := get("/refresh-only", access); code != 401 {
			t.Errorf("an access token must not pass the refresh guard, got %d", code)
		}
	})

	t.Run("GarbageRejected", func(t *testing.T) {
		if code := get("/access-only", "not-a-token"); code != 401 {
			t.Errorf("expected 401, got %d", code)
		}
	})
}
