package controllers

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
)

var errInvalidBody = errors.New("Invalid JSON body")

// decodeObject reads the request body into dst. Anything but a JSON object
// is rejected.
func decodeObject(c *gin.Context, dst interface{}) error {
	raw, err := c.GetRawData()
	if err != nil {
		return errInvalidBody
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return errInvalidBody
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errInvalidBody
	}
	return nil
}

func isTruthy(v string) bool {
	switch v {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
