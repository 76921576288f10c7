package user

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	usererrors "github.com/juandiego305/Gestion-candidatos/internal/user/errors"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_user_email":
				return usererrors.ErrEmailAlreadyInUse
			case "uq_user_username":
				return usererrors.ErrUsernameAlreadyInUse
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_user_email") {
		return usererrors.ErrEmailAlreadyInUse
	}
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_user_username") {
		return usererrors.ErrUsernameAlreadyInUse
	}

	return err
}
