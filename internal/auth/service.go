package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/shopfloor/internal/users"
	pkgAuth "github.com/angelmondragon/shopfloor/pkg/auth"
	"github.com/angelmondragon/shopfloor/pkg/auth/session"
	"github.com/angelmondragon/shopfloor/pkg/config"
	"github.com/angelmondragon/shopfloor/pkg/db/models"
	pkgerrors "github.com/angelmondragon/shopfloor/pkg/errors"
	"github.com/angelmondragon/shopfloor/pkg/logger"
	"github.com/angelmondragon/shopfloor/pkg/metrics"
	"github.com/angelmondragon/shopfloor/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const invalidCredentialsMessage = "invalid credentials"

// Service opens, rotates and closes operator sessions.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, accessToken string) error
	Refresh(ctx context.Context, accessToken, refreshToken string) (*TokenPair, error)
}

type userRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	SessionManager sessionManager
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
	Metrics        *metrics.AuthMetrics
	Logger         *logger.Logger
}

type service struct {
	users       userRepository
	session     sessionManager
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	metrics     *metrics.AuthMetrics
	logg        *logger.Logger
	now         func() time.Time
}

// NewService constructs a login service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		users:       params.UserRepo,
		session:     params.SessionManager,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
		metrics:     params.Metrics,
		logg:        logg,
		now:         func() time.Time { return time.Now().UTC() },
	}, nil
}

// Login checks the credentials and opens a session. A failed attempt leaves
// the session store untouched.
func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.authenticate(ctx, req.Username, req.Password)
	if err != nil {
		s.metrics.IncLogin(false)
		return nil, err
	}

	now := s.now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update last login")
	}
	user.LastLoginAt = &now
	s.maybeRehash(ctx, user, req.Password)

	accessID := session.NewAccessID()
	accessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, now, pkgAuth.AccessTokenPayload{
		UserID:   user.ID,
		Username: user.Username,
		JTI:      accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	refreshToken, err := s.session.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store refresh token")
	}

	s.metrics.IncLogin(true)
	s.logg.Info(s.logg.WithUserID(ctx, user.ID.String()), "user logged in")
	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         users.FromModel(user),
	}, nil
}

// Logout revokes the session behind accessToken. Expired tokens are accepted
// and revoking an already closed session succeeds.
func (s *service) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.parseForSession(accessToken)
	if err != nil {
		return err
	}
	if err := s.session.Revoke(ctx, claims.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

// Refresh swaps the session behind accessToken for a new one when
// refreshToken matches. Sessions of removed users are closed instead.
func (s *service) Refresh(ctx context.Context, accessToken, refreshToken string) (*TokenPair, error) {
	claims, err := s.parseForSession(accessToken)
	if err != nil {
		return nil, err
	}

	exists, err := s.users.Exists(ctx, claims.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}
	if !exists {
		if err := s.session.Revoke(ctx, claims.ID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
		}
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account unavailable")
	}

	newAccessID, newRefreshToken, err := s.session.Rotate(ctx, claims.ID, refreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotate session")
	}

	token, err := pkgAuth.MintAccessToken(s.jwtCfg, s.now(), pkgAuth.AccessTokenPayload{
		UserID:   claims.UserID,
		Username: claims.Username,
		JTI:      newAccessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	return &TokenPair{AccessToken: token, RefreshToken: newRefreshToken}, nil
}

func (s *service) authenticate(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}

	valid, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return user, nil
}

// maybeRehash upgrades hashes made with older argon parameters. Failures are
// logged only; the login already succeeded.
func (s *service) maybeRehash(ctx context.Context, user *models.User, password string) {
	if !security.NeedsRehash(user.PasswordHash, s.passwordCfg) {
		return
	}
	hash, err := security.HashPassword(password, s.passwordCfg)
	if err == nil {
		err = s.users.UpdatePasswordHash(ctx, user.ID, hash)
	}
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "password rehash failed")
		return
	}
	user.PasswordHash = hash
}

func (s *service) parseForSession(accessToken string) (*pkgAuth.AccessTokenClaims, error) {
	if accessToken == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	claims, err := pkgAuth.ParseAccessTokenAllowExpired(s.jwtCfg, accessToken)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}
	if claims.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id")
	}
	return claims, nil
}
