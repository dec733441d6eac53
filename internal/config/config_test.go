package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:           "8080",
		JWTSecret:      "secret",
		JWTIssuer:      "opencourses",
		JWTAudience:    "opencourses-web",
		AccessTokenTTL: 7200,
	}
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_MissingTokenSettings(t *testing.T) {
	cfg := validConfig()
	cfg.JWTSecret = ""
	cfg.JWTAudience = "   "

	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "JWT_SECRET_KEY")
	require.Contains(t, err.Error(), "JWT_AUDIENCE")
	require.NotContains(t, err.Error(), "JWT_ISSUER")
}

func TestValidate_NonPositiveTTL(t *testing.T) {
	cfg := validConfig()
	cfg.AccessTokenTTL = 0
	require.Error(t, cfg.Validate())
}

func TestOrigins_SplitsAndTrims(t *testing.T) {
	cfg := validConfig()
	cfg.AllowedOrigins = "http://localhost:3000, http://localhost:5173 ,"
	require.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.Origins())
}
