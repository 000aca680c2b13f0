package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/blogem/ehs-records/authenticator"
)

// AuthFlags configures sessions and login
type AuthFlags struct {
	Enabled       bool
	SecureCookies bool
	OpenID        authenticator.OpenIDConfig
}

func NewAuthFlags() *AuthFlags {
	return &AuthFlags{
		Enabled:       envBool("EHS_AUTH_ENABLED", false),
		SecureCookies: envBool("USE_HTTPS", false),
		OpenID: authenticator.OpenIDConfig{
			Domain:       envString("OIDC_DOMAIN", ""),
			ClientID:     envString("OIDC_CLIENT_ID", ""),
			ClientSecret: envString("OIDC_CLIENT_SECRET", ""),
			CallbackURL:  envString("OIDC_CALLBACK_URL", ""),
		},
	}
}

func (f *AuthFlags) BindFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&f.Enabled, "auth", f.Enabled, "Require a logged in user for API routes")
	fs.BoolVar(&f.SecureCookies, "secure-cookies", f.SecureCookies, "Only send the session cookie over HTTPS")
	fs.StringVar(&f.OpenID.Domain, "oidc-domain", f.OpenID.Domain, "OpenID Connect issuer domain, empty disables OIDC login")
	fs.StringVar(&f.OpenID.ClientID, "oidc-client-id", f.OpenID.ClientID, "OpenID Connect client ID")
	fs.StringVar(&f.OpenID.CallbackURL, "oidc-callback-url", f.OpenID.CallbackURL, "OpenID Connect redirect URL")
}

// Validate rejects a half configured OpenID Connect client
func (f *AuthFlags) Validate() error {
	if !f.OpenID.Enabled() {
		return nil
	}
	if err := f.OpenID.Validate(); err != nil {
		return errors.Wrap(err, "invalid OpenID Connect configuration")
	}
	return nil
}
