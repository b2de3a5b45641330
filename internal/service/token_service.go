package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/music-school-api/internal/models"
	appErrors "github.com/noah-isme/music-school-api/pkg/errors"
)

// TokenConfig defines signing parameters for access tokens.
type TokenConfig struct {
	Secret string
	Expiry time.Duration
	Issuer string
}

// TokenService mints and verifies HS256 bearer tokens. The secret is fixed at
// construction.
type TokenService struct {
	validator *validator.Validate
	logger    *zap.Logger
	config    TokenConfig
	now       func() time.Time
}

// NewTokenService constructs a TokenService. A non-positive expiry means one hour.
func NewTokenService(validate *validator.Validate, logger *zap.Logger, config TokenConfig) *TokenService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.Expiry <= 0 {
		config.Expiry = time.Hour
	}
	return &TokenService{validator: validate, logger: logger, config: config, now: time.Now}
}

// Issue signs a token for the given identity.
func (s *TokenService) Issue(ctx context.Context, req models.TokenRequest) (*models.TokenResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid token payload")
	}

	issuedAt := s.now().UTC()
	expiresAt := issuedAt.Add(s.config.Expiry)
	claims := &models.JWTClaims{
		Email: req.Email,
		Name:  req.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   req.Email,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to sign token")
	}

	return &models.TokenResponse{
		Token:     signed,
		ExpiresIn: int64(s.config.Expiry.Seconds()),
		ExpiresAt: expiresAt,
	}, nil
}

// Verify validates signature, issuer and expiry and returns the decoded
// claims. Tokens without exp are rejected. Every failure is reported as the
// same Unauthenticated error.
func (s *TokenService) Verify(tokenString string) (*models.JWTClaims, error) {
	if tokenString == "" {
		return nil, appErrors.ErrUnauthenticated
	}

	opts := []jwt.ParserOption{jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired()}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}, opts...)
	if err != nil {
		s.logger.Debug("token rejected", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthenticated.Code, appErrors.ErrUnauthenticated.Status, appErrors.ErrUnauthenticated.Message)
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid || claims.Email == "" {
		return nil, appErrors.Wrap(errors.New("token carries no identity"), appErrors.ErrUnauthenticated.Code, appErrors.ErrUnauthenticated.Status, appErrors.ErrUnauthenticated.Message)
	}

	return claims, nil
}
