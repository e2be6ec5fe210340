package echoapi

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/rohitfewfer/attendance/core"
)

// adminMiddleware guards the timetable editor with basic auth when an admin password is configured.
func adminMiddleware(conf *core.Config) []echo.MiddlewareFunc {
	if conf.Admin.Password == "" {
		return nil
	}
	return []echo.MiddlewareFunc{
		middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
			Realm: conf.AppName + " admin",
			Validator: func(username, password string, _ echo.Context) (bool, error) {
				userOK := subtle.ConstantTimeCompare([]byte(username), []byte(conf.Admin.User)) == 1
				passOK := subtle.ConstantTimeCompare([]byte(password), []byte(conf.Admin.Password)) == 1
				return userOK && passOK, nil
			},
		}),
	}
}
