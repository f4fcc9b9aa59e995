package jwt

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/jwt"

	"github.com/vistream/vistream/config"
	"github.com/vistream/vistream/pkg/errno"
)

const IdentityKey = "user_id"

var AuthMiddleware *jwt.HertzJWTMiddleware

// Authenticator checks login credentials and returns the value embedded
// into the token payload (the user id). The user service supplies it so
// this package stays free of storage concerns.
type Authenticator func(ctx context.Context, c *app.RequestContext) (interface{}, error)

func Init(authenticator Authenticator) error {
	var err error
	AuthMiddleware, err = jwt.New(&jwt.HertzJWTMiddleware{
		Realm:         "vistream",
		Key:           []byte(config.ConfigInfo.Jwt.Secret),
		Timeout:       time.Duration(config.ConfigInfo.Jwt.ExpireHours) * time.Hour,
		MaxRefresh:    time.Duration(config.ConfigInfo.Jwt.ExpireHours) * time.Hour,
		IdentityKey:   IdentityKey,
		TokenLookup:   "header: Authorization, query: token",
		TokenHeadName: "Bearer",
		Authenticator: authenticator,
		PayloadFunc: func(data interface{}) jwt.MapClaims {
			if uid, ok := data.(int64); ok {
				return jwt.MapClaims{IdentityKey: uid}
			}
			return jwt.MapClaims{}
		},
		IdentityHandler: func(ctx context.Context, c *app.RequestContext) interface{} {
			claims := jwt.ExtractClaims(ctx, c)
			uid, ok := claims[IdentityKey].(float64)
			if !ok {
				return int64(0)
			}
			return int64(uid)
		},
		LoginResponse: func(ctx context.Context, c *app.RequestContext, code int, token string, expire time.Time) {
			c.JSON(consts.StatusOK, map[string]interface{}{
				"code":    errno.SuccessCode,
				"message": "login success",
				"data": map[string]interface{}{
					"token":     token,
					"expire_at": expire.Format(time.RFC3339),
				},
			})
		},
		Unauthorized: func(ctx context.Context, c *app.RequestContext, code int, message string) {
			c.JSON(consts.StatusUnauthorized, map[string]interface{}{
				"code":    errno.AuthorizationErrCode,
				"message": message,
			})
		},
	})
	return err
}

// GetUserID returns the authenticated user id, or 0 when the request
// carries no valid identity.
func GetUserID(ctx context.Context, c *app.RequestContext) int64 {
	identity, exists := c.Get(IdentityKey)
	if exists {
		if uid, ok := identity.(int64); ok {
			return uid
		}
	}
	claims := jwt.ExtractClaims(ctx, c)
	if uid, ok := claims[IdentityKey].(float64); ok {
		return int64(uid)
	}
	return 0
}

// OptionalAuth resolves the identity when a token is present but never
// rejects the request. Public listings use it to widen visibility for
// owners.
func OptionalAuth() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if AuthMiddleware != nil {
			if claims, err := AuthMiddleware.GetClaimsFromJWT(ctx, c); err == nil {
				if uid, ok := claims[IdentityKey].(float64); ok {
					c.Set(IdentityKey, int64(uid))
				}
			}
		}
		c.Next(ctx)
	}
}
