package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/franciscosanchezn/gin-momo-api/internal/models"
)

func TestCheck(t *testing.T) {
	admin := &Actor{UserID: 1, Role: models.RoleAdmin}
	customer := &Actor{UserID: 2, Role: models.RoleCustomer}

	testCases := []struct {
		name     string
		actor    *Actor
		req      Requirement
		expected Outcome
	}{
		{"nil actor is unauthenticated", nil, Authenticated, Unauthenticated},
		{"zero user id is unauthenticated", &Actor{Role: models.RoleAdmin}, Admin, Unauthenticated},
		{"customer is authenticated", customer, Authenticated, Allowed},
		{"customer is not admin", customer, Admin, Forbidden},
		{"admin passes admin", admin, Admin, Allowed},
		{"owner passes ownership", customer, Owner(2), Allowed},
		{"other user fails ownership", customer, Owner(3), Forbidden},
		{"admin passes any ownership", admin, Owner(3), Allowed},
		{"nil requirement only needs identity", customer, nil, Allowed},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Check(tt.actor, tt.req))
		})
	}
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "allowed", Allowed.String())
	assert.Equal(t, "forbidden", Forbidden.String())
	assert.Equal(t, "unauthenticated", Unauthenticated.String())
}
