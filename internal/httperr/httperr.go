package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func Abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func TooManyRequests(c *gin.Context, code, message string) {
	Abort(c, http.StatusTooManyRequests, code, message)
}

type mapping struct {
	status  int
	message string
}

var byCode = map[string]mapping{
	"invalid_id":               {http.StatusBadRequest, "Invalid ID."},
	"invalid_request":          {http.StatusBadRequest, "Invalid request."},
	"invalid_role":             {http.StatusBadRequest, "Invalid role."},
	"invalid_date_or_time":     {http.StatusBadRequest, "Invalid date or time."},
	"invalid_status":           {http.StatusBadRequest, "Invalid status."},
	"email_already_registered": {http.StatusBadRequest, "Email already registered."},
	"cannot_delete_self":       {http.StatusBadRequest, "You cannot delete your own account."},
	"invalid_file_type":        {http.StatusBadRequest, "Invalid file type. Allowed: PDF, JPG, PNG."},
	"file_too_large":           {http.StatusBadRequest, "File too large."},
	"invalid_credentials":      {http.StatusUnauthorized, "Incorrect email or password."},
	"role_mismatch":            {http.StatusUnauthorized, "Role mismatch."},
	"invalid_token":            {http.StatusUnauthorized, "Could not validate credentials."},
	"forbidden":                {http.StatusForbidden, "Insufficient permissions."},
	"appointment_not_found":    {http.StatusNotFound, "Appointment not found."},
	"user_not_found":           {http.StatusNotFound, "User not found."},
	"feature_disabled":         {http.StatusNotFound, "Feature not enabled."},
}

// FromError writes the envelope for err. Business errors map through the
// code table; anything else is logged and reported as internal_error.
func FromError(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		if m, ok := byCode[be.Code]; ok {
			Write(c, m.status, be.Code, m.message)
			return
		}
		BadRequest(c, be.Code, be.Code)
		return
	}

	log.Error().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("path", c.FullPath()).
		Msg("unhandled error")

	Internal(c, "internal_error", "Internal server error.")
}

// StatusFor reports the status FromError would use for err.
func StatusFor(err error) int {
	var be BusinessError
	if errors.As(err, &be) {
		if m, ok := byCode[be.Code]; ok {
			return m.status
		}
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
