package handler // handler defines http handlers

import (
	"github.com/go-playground/validator/v10" // struct tag driven request validation
	"github.com/labstack/echo/v4"            // echo defines request context types

	"github.com/prajnahall/studyhall-admin/internal/booking"
)

// validate is the shared validator instance used by all handlers.  A single
// instance caches struct metadata across requests.
var validate = validator.New()

// currentOperator builds the audit identity from the JWT claims stored in
// context by the auth middleware.  Ledger rows and documents are stamped
// with these values.
func currentOperator(c echo.Context) booking.Operator {
	op := booking.Operator{Name: "unknown", HallCode: ""}
	if v, ok := c.Get("operator_name").(string); ok && v != "" {
		op.Name = v
	}
	if v, ok := c.Get("hall_code").(string); ok && v != "" {
		op.HallCode = v
	}
	return op
}

// bindAndValidate decodes the JSON body into dst and runs struct validation.
// The returned string is a client-facing message; empty means the request
// passed.
func bindAndValidate(c echo.Context, dst any) string {
	if err := c.Bind(dst); err != nil {
		return "invalid body"
	}
	if err := validate.Struct(dst); err != nil {
		return err.Error()
	}
	return ""
}
