package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/shopfloor/pkg/config"
	"github.com/angelmondragon/shopfloor/pkg/db"
	"github.com/angelmondragon/shopfloor/pkg/db/models"
	pkgerrors "github.com/angelmondragon/shopfloor/pkg/errors"
	"github.com/angelmondragon/shopfloor/pkg/logger"
	"github.com/angelmondragon/shopfloor/pkg/security"
	"github.com/angelmondragon/shopfloor/pkg/validation"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin"
)

// Service manages operator accounts.
type Service interface {
	List(ctx context.Context) ([]UserDTO, error)
	Create(ctx context.Context, input CreateUserInput) (*UserDTO, error)
	Delete(ctx context.Context, callerID, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	EnsureAdmin(ctx context.Context) (bool, error)
}

type service struct {
	repo        *Repository
	dbClient    *db.Client
	passwordCfg config.PasswordConfig
	logg        *logger.Logger
}

// NewService constructs a users service.
func NewService(repo *Repository, dbClient *db.Client, passwordCfg config.PasswordConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{repo: repo, dbClient: dbClient, passwordCfg: passwordCfg, logg: logg}, nil
}

func (s *service) List(ctx context.Context) ([]UserDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list users")
	}
	out := make([]UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	input.Username = strings.TrimSpace(input.Username)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.repo.Create(ctx, &models.User{Username: input.Username, PasswordHash: hash})
	if err != nil {
		if db.IsUniqueViolation(err, UsernameIndex) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "username already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert user")
	}

	s.logg.Info(s.logg.WithField(ctx, "username", user.Username), "user created")
	return FromModel(user), nil
}

// Delete removes id. callerID is the signed-in user, who may not delete
// their own account.
func (s *service) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	if callerID == id {
		return pkgerrors.New(pkgerrors.CodeConflict, "cannot delete the signed-in user")
	}
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete user")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	s.logg.Info(s.logg.WithField(ctx, "deleted_user_id", id.String()), "user deleted")
	return nil
}

// Exists reports whether the account behind a session still exists.
func (s *service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	ok, err := s.repo.Exists(ctx, id)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: lookup user")
	}
	return ok, nil
}

// EnsureAdmin creates the default admin account when no users exist and
// reports whether it did.
func (s *service) EnsureAdmin(ctx context.Context) (bool, error) {
	hash, err := security.HashPassword(DefaultAdminPassword, s.passwordCfg)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	created := false
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		count, err := repo.Count(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count users")
		}
		if count > 0 {
			return nil
		}
		if _, err := repo.Create(ctx, &models.User{Username: DefaultAdminUsername, PasswordHash: hash}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: seed admin")
		}
		created = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if created {
		s.logg.Warn(ctx, "created default admin account; change its password")
	}
	return created, nil
}
