package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestIsBusinessWrapped(t *testing.T) {
	err := fmt.Errorf("lookup: %w", ErrBusiness("user_not_found"))

	if !IsBusiness(err, "user_not_found") {
		t.Fatal("wrapped business error not detected")
	}
	if IsBusiness(err, "appointment_not_found") {
		t.Fatal("wrong code matched")
	}
	if IsBusiness(errors.New("user_not_found"), "user_not_found") {
		t.Fatal("plain error must not match")
	}
}

func TestFromError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid id", ErrInvalidID, http.StatusBadRequest, "invalid_id"},
		{"credentials", ErrBusiness("invalid_credentials"), http.StatusUnauthorized, "invalid_credentials"},
		{"role mismatch", ErrBusiness("role_mismatch"), http.StatusUnauthorized, "role_mismatch"},
		{"forbidden", ErrForbidden, http.StatusForbidden, "forbidden"},
		{"not found", fmt.Errorf("x: %w", ErrBusiness("appointment_not_found")), http.StatusNotFound, "appointment_not_found"},
		{"unknown code", ErrBusiness("something_odd"), http.StatusBadRequest, "something_odd"},
		{"unexpected", errors.New("mongo down"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			FromError(c, tt.err)

			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d", w.Code, tt.status)
			}
			if StatusFor(tt.err) != tt.status {
				t.Fatalf("StatusFor = %d, want %d", StatusFor(tt.err), tt.status)
			}

			var body HTTPError
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body.Code != tt.code {
				t.Fatalf("code = %q, want %q", body.Code, tt.code)
			}
		})
	}
}
