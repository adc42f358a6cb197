package handler // handler defines http handlers

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

// pathID parses a numeric :id path parameter. The second return is
// false when the parameter is missing, malformed or zero.
func pathID(c echo.Context, name string) (uint64, bool) {
    id, err := strconv.ParseUint(c.Param(name), 10, 64)
    if err != nil || id == 0 {
        return 0, false
    }
    return id, true
}

// queryID parses an optional numeric query parameter. It returns 0 when
// the parameter is absent and false only when a present value is
// malformed.
func queryID(c echo.Context, name string) (uint64, bool) {
    raw := c.QueryParam(name)
    if raw == "" {
        return 0, true
    }
    id, err := strconv.ParseUint(raw, 10, 64)
    if err != nil || id == 0 {
        return 0, false
    }
    return id, true
}
