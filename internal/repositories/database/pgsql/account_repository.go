package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tallyledger/tally_ledger_app/internal/apperrors"
	"github.com/tallyledger/tally_ledger_app/internal/core/domain"
	portsrepo "github.com/tallyledger/tally_ledger_app/internal/core/ports/repositories"
	"github.com/tallyledger/tally_ledger_app/internal/models"
	"github.com/tallyledger/tally_ledger_app/internal/utils/mapping"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, code, name, account_type, normal_side, is_active, created_at, created_by`

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.NormalSide,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	return m, err
}

// SaveAccount inserts a new account. A partial unique index keeps codes
// unique among active accounts only, so a deactivated account frees its code.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)

	query := `
		INSERT INTO chart_of_accounts (account_id, code, name, account_type, normal_side, is_active, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.Code,
		modelAcc.Name,
		modelAcc.AccountType,
		modelAcc.NormalSide,
		modelAcc.IsActive,
		modelAcc.CreatedAt,
		modelAcc.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return apperrors.NewDuplicateAccountCode(modelAcc.Code)
		}
		return apperrors.NewInternal("failed to save account "+modelAcc.AccountID, err)
	}
	return nil
}

// FindAccountByCode resolves an active account by its exact code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM chart_of_accounts WHERE code = $1 AND is_active = TRUE;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.New(apperrors.KindNotFound, "account not found: "+code)
		}
		return nil, apperrors.NewInternal("failed to find account by code "+code, err)
	}

	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// FindAccountsByCodes resolves several active accounts keyed by code. Codes
// without an active account are absent from the map.
func (r *PgxAccountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	if len(codes) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM chart_of_accounts WHERE code = ANY($1) AND is_active = TRUE;`
	rows, err := r.Pool.Query(ctx, query, codes)
	if err != nil {
		return nil, apperrors.NewInternal("failed to find accounts by codes", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(codes))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewInternal("failed to scan account row", err)
		}
		accounts[m.Code] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternal("failed to iterate account rows", err)
	}
	return accounts, nil
}

// FindAccountByID retrieves an account regardless of active state.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM chart_of_accounts WHERE account_id = $1;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.New(apperrors.KindNotFound, "account not found: "+accountID)
		}
		return nil, apperrors.NewInternal("failed to find account by id "+accountID, err)
	}

	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// ListAccounts returns the chart of accounts ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM chart_of_accounts WHERE is_active = TRUE OR $1 ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query, includeInactive)
	if err != nil {
		return nil, apperrors.NewInternal("failed to list accounts", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewInternal("failed to scan account row", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternal("failed to iterate account rows", err)
	}
	return accounts, nil
}

// DeactivateAccount flips the active flag off.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string) error {
	query := `UPDATE chart_of_accounts SET is_active = FALSE WHERE account_id = $1;`

	tag, err := r.Pool.Exec(ctx, query, accountID)
	if err != nil {
		return apperrors.NewInternal("failed to deactivate account "+accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.KindNotFound, "account not found: "+accountID)
	}
	return nil
}
