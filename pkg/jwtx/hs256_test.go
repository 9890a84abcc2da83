package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/iic/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var (
	secretA = []byte("0123456789abcdef0123456789abcdef")
	secretB = []byte("fedcba9876543210fedcba9876543210")
)

func TestNewSignerHS256_RejectsShortSecret(t *testing.T) {
	_, err := jwtx.NewSignerHS256("access", nil)
	require.Error(t, err)

	_, err = jwtx.NewSignerHS256("access", []byte("short"))
	require.Error(t, err)

	s, err := jwtx.NewSignerHS256("access", secretA)
	require.NoError(t, err)
	require.Equal(t, "HS256", s.Alg())
	require.Equal(t, "access", s.KID())
}

func TestHS256_SignVerify(t *testing.T) {
	signer, err := jwtx.NewSignerHS256("access", secretA)
	require.NoError(t, err)

	claims := jwtx.NewAccessClaims("client-1", "a@b.c", "Ann", "iic-auth", time.Minute, time.Now())
	tok, err := signer.Sign(claims)
	require.NoError(t, err)
	require.Len(t, strings.Split(tok, "."), 3)

	v := jwtx.NewVerifierHS256(secretA, jwtx.VerifyOptions{Issuer: "iic-auth", TokenType: jwtx.TypeAccess})
	got, err := v.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "client-1", got.Subject)
	require.Equal(t, "a@b.c", got.Email)
	require.Equal(t, claims.ID, got.ID)
}

func TestHS256_WrongSecret(t *testing.T) {
	signer, err := jwtx.NewSignerHS256("access", secretA)
	require.NoError(t, err)

	tok, err := signer.Sign(jwtx.NewRefreshClaims("client-1", "", time.Minute, time.Now()))
	require.NoError(t, err)

	_, err = jwtx.NewVerifierHS256(secretB, jwtx.VerifyOptions{}).Verify(tok)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestHS256_Expired(t *testing.T) {
	signer, err := jwtx.NewSignerHS256("refresh", secretA)
	require.NoError(t, err)

	tok, err := signer.Sign(jwtx.NewRefreshClaims("client-1", "", time.Minute, time.Now().Add(-time.Hour)))
	require.NoError(t, err)

	_, err = jwtx.NewVerifierHS256(secretA, jwtx.VerifyOptions{}).Verify(tok)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestHS256_NotYetValid(t *testing.T) {
	signer, err := jwtx.NewSignerHS256("refresh", secretA)
	require.NoError(t, err)

	tok, err := signer.Sign(jwtx.NewRefreshClaims("client-1", "", time.Hour, time.Now().Add(10*time.Second)))
	require.NoError(t, err)

	_, err = jwtx.NewVerifierHS256(secretA, jwtx.VerifyOptions{}).Verify(tok)
	require.ErrorIs(t, err, jwtx.ErrNotYetValid)

	// Clock skew within the leeway is tolerated.
	_, err = jwtx.NewVerifierHS256(secretA, jwtx.VerifyOptions{Leeway: 30 * time.Second}).Verify(tok)
	require.NoError(t, err)
}

func TestHS256_TypeMismatch(t *testing.T) {
	signer, err := jwtx.NewSignerHS256("shared", secretA)
	require.NoError(t, err)

	tok, err := signer.Sign(jwtx.NewAccessClaims("client-1", "", "", "", time.Minute, time.Now()))
	require.NoError(t, err)

	_, err = jwtx.NewVerifierHS256(secretA, jwtx.VerifyOptions{TokenType: jwtx.TypeRefresh}).Verify(tok)
	require.ErrorIs(t, err, jwtx.ErrTokenType)
}

func TestHS256_IssuerMismatch(t *testing.T) {
	signer, err := jwtx.NewSignerHS256("access", secretA)
	require.NoError(t, err)

	tok, err := signer.Sign(jwtx.NewAccessClaims("client-1", "", "", "other", time.Minute, time.Now()))
	require.NoError(t, err)

	_, err = jwtx.NewVerifierHS256(secretA, jwtx.VerifyOptions{Issuer: "iic-auth"}).Verify(tok)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}

func TestHS256_Malformed(t *testing.T) {
	v := jwtx.NewVerifierHS256(secretA, jwtx.VerifyOptions{})
	for _, tok := range []string{"", "abc", "a.b.c"} {
		_, err := v.Verify(tok)
		require.Error(t, err)
	}
}
