// Package handler implements the HTTP endpoints. Every response uses the
// same envelope: {"success": bool, "data"/"message"/"errors"/"count": ...}.
package handler

import "github.com/labstack/echo/v4"

func ok(c echo.Context, status int, data any) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}

// okList always serializes an empty slice as [] and includes a count field.
func okList[T any](c echo.Context, status int, items []T) error {
	if items == nil {
		items = []T{}
	}
	return c.JSON(status, echo.Map{"success": true, "count": len(items), "data": items})
}

func okMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"success": true, "message": message})
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"success": false, "message": message})
}

// failFields reports validation problems per field.
func failFields(c echo.Context, status int, message string, fields map[string]string) error {
	return c.JSON(status, echo.Map{"success": false, "message": message, "errors": fields})
}
