package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franciscosanchezn/gin-momo-api/internal/models"
	"github.com/franciscosanchezn/gin-momo-api/internal/services"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"not found", fmt.Errorf("%w: order", services.ErrNotFound), http.StatusNotFound, models.ErrNotFound, "Order not found"},
		{"wrapped twice", fmt.Errorf("load: %w", fmt.Errorf("%w: menu item", services.ErrNotFound)), http.StatusNotFound, models.ErrNotFound, "Menu item not found"},
		{"invalid", fmt.Errorf("%w: cart is empty", services.ErrInvalidRequest), http.StatusBadRequest, models.ErrBadRequest, "Cart is empty"},
		{"forbidden", fmt.Errorf("%w: access denied", services.ErrForbidden), http.StatusForbidden, models.ErrForbidden, "Access denied"},
		{"conflict", fmt.Errorf("%w: email is already registered", services.ErrConflict), http.StatusConflict, models.ErrConflict, "Email is already registered"},
		{"bare sentinel", services.ErrUnauthorized, http.StatusUnauthorized, models.ErrUnauthorized, services.ErrUnauthorized.Error()},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, models.ErrInternalServer, "Failed to fetch orders"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, tt.err, "Failed to fetch orders")

			assert.Equal(t, tt.status, w.Code)
			var body models.APIError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.message, body.Message)
			assert.NotContains(t, w.Body.String(), "connection reset")
		})
	}
}

func TestParamID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for raw, want := range map[string]bool{"12": true, "0": false, "-3": false, "abc": false} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: raw}}

		_, ok := paramID(c, "id")
		assert.Equal(t, want, ok, raw)
		if !want {
			assert.Equal(t, http.StatusBadRequest, w.Code)
		}
	}
}
