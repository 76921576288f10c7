package company

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	companyerrors "github.com/juandiego305/Gestion-candidatos/internal/company/errors"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return companyerrors.ErrCompanyNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_company_nit" {
			return companyerrors.ErrNITAlreadyRegistered
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_company_nit") {
		return companyerrors.ErrNITAlreadyRegistered
	}

	return err
}
