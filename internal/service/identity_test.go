package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerpath/admin-backend/internal/apperrors"
)

const testSecret = "test-secret"

func newTestJWTVerifier(now time.Time) *JWTVerifier {
	v := NewJWTVerifier(testSecret, time.Hour)
	v.now = func() time.Time { return now }
	return v
}

func TestJWTVerifier_IssueAndVerify(t *testing.T) {
	now := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	v := newTestJWTVerifier(now)

	token, err := v.Issue("admin-1", "admin@example.com")
	require.NoError(t, err)

	id, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, &Identity{UID: "admin-1", Email: "admin@example.com"}, id)
}

func TestJWTVerifier_Rejections(t *testing.T) {
	now := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	v := newTestJWTVerifier(now)

	sign := func(method jwt.SigningMethod, claims jwt.Claims, key any) string {
		t.Helper()
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	valid := func(sub string) jwt.RegisteredClaims {
		return jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}
	}

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"empty", "", apperrors.ErrTokenRequired},
		{"garbage", "not-a-jwt", apperrors.ErrTokenInvalid},
		{"wrong secret", sign(jwt.SigningMethodHS256, valid("u1"), []byte("other")), apperrors.ErrTokenInvalid},
		{"wrong algorithm", sign(jwt.SigningMethodHS384, valid("u1"), []byte(testSecret)), apperrors.ErrTokenInvalid},
		{"missing subject", sign(jwt.SigningMethodHS256, valid(""), []byte(testSecret)), apperrors.ErrTokenInvalid},
		{"missing expiry", sign(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "u1"}, []byte(testSecret)), apperrors.ErrTokenInvalid},
		{"expired", sign(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
		}, []byte(testSecret)), apperrors.ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := v.Verify(context.Background(), tt.token)
			assert.Nil(t, id)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
		})
	}
}

func TestJWTVerifier_IssuedTokenExpires(t *testing.T) {
	issuedAt := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	v := newTestJWTVerifier(issuedAt)

	token, err := v.Issue("u1", "")
	require.NoError(t, err)

	v.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	_, err = v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

type fakeFirebaseClient struct {
	token         *auth.Token
	err           error
	revokeChecked bool
}

func (f *fakeFirebaseClient) VerifyIDToken(_ context.Context, _ string) (*auth.Token, error) {
	return f.token, f.err
}

func (f *fakeFirebaseClient) VerifyIDTokenAndCheckRevoked(_ context.Context, _ string) (*auth.Token, error) {
	f.revokeChecked = true
	return f.token, f.err
}

func TestFirebaseVerifier_Verify(t *testing.T) {
	client := &fakeFirebaseClient{token: &auth.Token{
		UID:    "fb-uid",
		Claims: map[string]interface{}{"email": "a@example.com"},
	}}
	v := &FirebaseVerifier{client: client}

	id, err := v.Verify(context.Background(), "id-token")
	require.NoError(t, err)
	assert.Equal(t, &Identity{UID: "fb-uid", Email: "a@example.com"}, id)
	assert.False(t, client.revokeChecked)

	v.checkRevoked = true
	_, err = v.Verify(context.Background(), "id-token")
	require.NoError(t, err)
	assert.True(t, client.revokeChecked)
}

func TestFirebaseVerifier_Errors(t *testing.T) {
	v := &FirebaseVerifier{client: &fakeFirebaseClient{err: errors.New("signature mismatch")}}

	_, err := v.Verify(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrTokenRequired)

	_, err = v.Verify(context.Background(), "id-token")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	assert.Contains(t, err.Error(), "signature mismatch")
}
