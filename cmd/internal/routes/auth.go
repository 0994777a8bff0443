package routes

import (
	"crypto/subtle"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"vantay/cmd/internal/config"
	"vantay/cmd/internal/utils"
	"vantay/cmd/internal/utils/apierror"
)

// BearerAuth checks "Authorization: Bearer <token>" against apiKey. In
// static mode the token is the key itself; in jwt mode it is an HS256 token
// signed with the key whose uid claim becomes the caller identity.
func BearerAuth(mode, apiKey string) echo.MiddlewareFunc {
	if apiKey == "" {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				return errorJSON(c, apierror.APIKeyNotSetError)
			}
		}
	}

	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		KeyLookup:  "header:" + echo.HeaderAuthorization,
		AuthScheme: "Bearer",
		Validator: func(key string, c echo.Context) (bool, error) {
			key = strings.TrimSpace(key)
			if mode == config.AuthModeJWT {
				claims, err := utils.ParseToken(key, apiKey)
				if err != nil {
					return false, nil
				}
				utils.SetTokenDataCtx(c, &utils.TokenData{UserID: claims.UserID})
				return true, nil
			}

			if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
				return false, nil
			}
			utils.SetTokenDataCtx(c, &utils.TokenData{})
			return true, nil
		},
		ErrorHandler: func(err error, c echo.Context) error {
			return errorJSON(c, apierror.InvalidAuthTokenError)
		},
	})
}
