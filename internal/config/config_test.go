package config

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationJSON(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{`"1h30m"`, 90 * time.Minute},
		{`"24h"`, 24 * time.Hour},
		{`60000000000`, time.Minute},
	}
	for _, test := range tests {
		var d Duration
		require.NoError(t, json.Unmarshal([]byte(test.input), &d))
		assert.Equal(t, test.want, d.Duration)
	}

	b, err := json.Marshal(Duration{time.Hour})
	require.NoError(t, err)
	assert.Equal(t, `"1h0m0s"`, string(b))
}

func TestReadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"mode": "production",
		"addr": ":9090",
		"jwt": {"token_lifetime": "720h"}
	}`), 0600))

	config := Default()
	require.NoError(t, ReadConfig(path, &config))
	assert.True(t, config.Production())
	assert.Equal(t, ":9090", config.Addr)
	assert.Equal(t, 720*time.Hour, config.Jwt.TokenLifetime.Duration)
}

func TestReadConfigMissingFile(t *testing.T) {
	config := Default()
	assert.Error(t, ReadConfig(filepath.Join(t.TempDir(), "nope.json"), &config))
	assert.True(t, config.Development())
	assert.Equal(t, ":8080", config.Addr)
}

func testJWT(t *testing.T) *JWT {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return &JWT{
		privateKey:    key,
		publicKey:     &key.PublicKey,
		signingMethod: jwt.GetSigningMethod("RS256"),
		tokenLifetime: time.Hour,
	}
}

func TestCookiesRoundTrip(t *testing.T) {
	cookies := NewCookies(Default(), testJWT(t))
	require.True(t, cookies.Enabled())

	w := httptest.NewRecorder()
	require.NoError(t, cookies.Issue(w, NewPlayerClaims(7, "gopher")))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}

	claims, err := cookies.ParsePlayerClaims(r)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.PlayerId)
	assert.Equal(t, "gopher", claims.Username)
}

func TestCookiesDisabled(t *testing.T) {
	cookies := NewCookies(Default(), nil)
	assert.False(t, cookies.Enabled())

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := cookies.ParsePlayerClaims(r)
	assert.Error(t, err)
}
