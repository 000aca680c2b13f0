package authenticator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClaimsDisplayName(t *testing.T) {
	tests := []struct {
		name   string
		claims Claims
		want   string
	}{
		{"nickname wins", Claims{"sub": "auth|1", "nickname": "sj", "name": "Sarah Johnson"}, "sj"},
		{"name when no nickname", Claims{"sub": "auth|1", "name": "Sarah Johnson", "email": "sj@example.com"}, "Sarah Johnson"},
		{"email when no name", Claims{"sub": "auth|1", "nickname": "", "email": "sj@example.com"}, "sj@example.com"},
		{"subject as last resort", Claims{"sub": "auth|1"}, "auth|1"},
		{"empty claims", Claims{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.claims.DisplayName())
		})
	}
}

func TestOpenIDConfigValidate(t *testing.T) {
	cfg := OpenIDConfig{Domain: "login.example.com", ClientID: "id", ClientSecret: "secret", CallbackURL: "http://localhost:8080/callback"}
	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.Enabled())

	cfg.ClientSecret = ""
	assert.EqualError(t, cfg.Validate(), "client secret is required")

	assert.False(t, OpenIDConfig{}.Enabled())
	_, err := NewOpenIDProvider(context.Background(), OpenIDConfig{})
	assert.EqualError(t, err, "domain is required")
}
