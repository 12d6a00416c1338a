package middleware

// identity.go defines helper functions shared across middleware files. It
// provides an operatorID extraction function that pulls the subject stored in
// the Echo context by JWTAuth. When no token is present, "guest" is returned
// so cache and rate-limit keys stay well formed for unauthenticated routes.

import (
	"github.com/labstack/echo/v4"
)

// operatorID extracts the operator identifier from context. It returns
// "guest" when no operator is authenticated or the claim is missing.
func operatorID(c echo.Context) string {
	if v, ok := c.Get("operator_id").(string); ok && v != "" {
		return v
	}
	return "guest"
}
