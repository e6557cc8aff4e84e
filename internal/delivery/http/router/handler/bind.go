// Package handler contains the HTTP handlers of the storefront API.
package handler

import (
	domainerrors "storefront/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// trimmer is implemented by requests that clean up their fields before validation.
type trimmer interface {
	trim()
}

// bindAndValidate decodes the request body into req and checks its validate tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("malformed request body"), err.Error())
	}
	if t, ok := req.(trimmer); ok {
		t.trim()
	}
	if err := c.Validate(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
