package jwt

import (
	"context"
	"strings"
	"time"

	"vidtube.com/config"
	"vidtube.com/pkg/errno"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/google/uuid"
	"github.com/hertz-contrib/jwt"
)

const IdentityKey = "user_id"

// tokenTypeKey discriminates access from refresh tokens so the two
// middlewares never accept each other's tokens despite sharing a secret.
const (
	tokenTypeKey     = "token_type"
	accessTokenType  = "access"
	refreshTokenType = "refresh"
)

// TokenService carries the access and refresh token middlewares. Both sign
// with the same secret but different lifetimes; the refresh middleware only
// guards the token-rotation route.
type TokenService struct {
	access  *jwt.HertzJWTMiddleware
	refresh *jwt.HertzJWTMiddleware
}

func New(conf config.Jwt) (*TokenService, error) {
	access, err := newMiddleware(conf.Secret, accessTokenType, time.Duration(conf.AccessExpireMin)*time.Minute)
	if err != nil {
		return nil, err
	}
	refresh, err := newMiddleware(conf.Secret, refreshTokenType, time.Duration(conf.RefreshExpireMin)*time.Minute)
	if err != nil {
		return nil, err
	}
	return &TokenService{access: access, refresh: refresh}, nil
}

func newMiddleware(secret, tokenType string, timeout time.Duration) (*jwt.HertzJWTMiddleware, error) {
	return jwt.New(&jwt.HertzJWTMiddleware{
		Realm:       "vidtube",
		Key:         []byte(secret),
		Timeout:     timeout,
		IdentityKey: IdentityKey,
		PayloadFunc: func(data interface{}) jwt.MapClaims {
			// jti makes every issued token unique even inside one
			// signing second, so rotation always yields a new token.
			claims := jwt.MapClaims{
				tokenTypeKey: tokenType,
				"jti":        uuid.NewString(),
			}
			if userId, ok := data.(string); ok {
				claims[IdentityKey] = userId
			}
			return claims
		},
		IdentityHandler: func(ctx context.Context, c *app.RequestContext) interface{} {
			claims := jwt.ExtractClaims(ctx, c)
			return claims[IdentityKey]
		},
		Authorizator: func(data interface{}, ctx context.Context, c *app.RequestContext) bool {
			claims := jwt.ExtractClaims(ctx, c)
			return data != nil && claims[tokenTypeKey] == tokenType
		},
		Unauthorized: func(ctx context.Context, c *app.RequestContext, code int, message string) {
			c.JSON(errno.AuthFailedCode, map[string]interface{}{
				"statusCode": errno.AuthFailedCode,
				"message":    message,
				"success":    false,
			})
		},
		TokenLookup:   "header: Authorization",
		TokenHeadName: "Bearer",
	})
}

// MiddlewareFunc guards routes with the access token.
func (s *TokenService) MiddlewareFunc() app.HandlerFunc {
	return s.access.MiddlewareFunc()
}

// RefreshMiddlewareFunc guards the rotation route with the refresh token.
func (s *TokenService) RefreshMiddlewareFunc() app.HandlerFunc {
	return s.refresh.MiddlewareFunc()
}

// GenerateTokenPair issues a fresh access and refresh token for the user.
func (s *TokenService) GenerateTokenPair(userId string) (string, string, error) {
	accessToken, _, err := s.access.TokenGenerator(userId)
	if err != nil {
		return "", "", err
	}
	refreshToken, _, err := s.refresh.TokenGenerator(userId)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// UserIdFromContext returns the authenticated user id placed into the
// request context by the jwt middleware.
func UserIdFromContext(ctx context.Context, c *app.RequestContext) (string, bool) {
	claims := jwt.ExtractClaims(ctx, c)
	userId, ok := claims[IdentityKey].(string)
	return userId, ok && userId != ""
}

// BearerToken returns the raw token presented in the Authorization header.
func BearerToken(c *app.RequestContext) string {
	auth := string(c.GetHeader("Authorization"))
	const prefix = "Bearer "
	if strings.HasPrefix(auth, prefix) {
		return auth[len(prefix):]
	}
	return ""
}
