package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/careerpath/admin-backend/internal/apperrors"
)

// Identity is the subject of a verified bearer token.
type Identity struct {
	UID   string
	Email string
}

// IdentityVerifier turns a bearer token into an Identity. Expired tokens fail
// with apperrors.ErrTokenExpired, every other rejection with ErrTokenInvalid.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// ─── Firebase ───────────────────────────────────────────────────────

// firebaseTokenVerifier is the part of *auth.Client the verifier uses.
type firebaseTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
	VerifyIDTokenAndCheckRevoked(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseVerifier verifies Firebase Authentication ID tokens.
type FirebaseVerifier struct {
	client       firebaseTokenVerifier
	checkRevoked bool
}

// NewFirebaseVerifier creates a FirebaseVerifier. With checkRevoked set every
// verification also asks Firebase whether the session was revoked.
func NewFirebaseVerifier(client *auth.Client, checkRevoked bool) *FirebaseVerifier {
	return &FirebaseVerifier{client: client, checkRevoked: checkRevoked}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, apperrors.ErrTokenRequired
	}

	var (
		decoded *auth.Token
		err     error
	)
	if v.checkRevoked {
		decoded, err = v.client.VerifyIDTokenAndCheckRevoked(ctx, token)
	} else {
		decoded, err = v.client.VerifyIDToken(ctx, token)
	}
	if err != nil {
		if auth.IsIDTokenExpired(err) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTokenInvalid, err)
	}

	email, _ := decoded.Claims["email"].(string)
	return &Identity{UID: decoded.UID, Email: email}, nil
}

// ─── HS256 JWT ──────────────────────────────────────────────────────

// devClaims is the token layout issued by JWTVerifier.Issue.
type devClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// JWTVerifier verifies HS256 tokens signed with a shared secret. It stands in
// for Firebase in local development and tests.
type JWTVerifier struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewJWTVerifier creates a JWTVerifier. expiry applies to tokens it issues.
func NewJWTVerifier(secret string, expiry time.Duration) *JWTVerifier {
	return &JWTVerifier{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}
}

func (v *JWTVerifier) Verify(_ context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, apperrors.ErrTokenRequired
	}

	claims := &devClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTokenInvalid, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", apperrors.ErrTokenInvalid)
	}

	return &Identity{UID: claims.Subject, Email: claims.Email}, nil
}

// Issue signs a token for uid that this verifier accepts.
func (v *JWTVerifier) Issue(uid, email string) (string, error) {
	now := v.now()
	claims := devClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(v.expiry)),
		},
		Email: email,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
