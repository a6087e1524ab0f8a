package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/zdziszkee/bank-registry/internal/database"
	model "github.com/zdziszkee/bank-registry/internal/models"
)

var (
	ErrNotFound  = errors.New("bank not found")
	ErrDuplicate = errors.New("swift code already exists")
)

// SQLSTATE raised by Postgres on a unique index violation.
const uniqueViolation = "23505"

const bankColumns = "id, swift_code, name, address, city, country, country_code, phone_number, email, website, bank_type, active, created_at, updated_at"

// BankRepository defines the storage operations the registry depends on
type BankRepository interface {
	ExistsBySwiftCode(ctx context.Context, code string) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Bank, error)
	FindBySwiftCode(ctx context.Context, code string) (*model.Bank, error)
	FindAll(ctx context.Context) ([]model.Bank, error)
	FindByCountry(ctx context.Context, country string) ([]model.Bank, error)
	FindByCountryCode(ctx context.Context, countryCode string) ([]model.Bank, error)
	FindByNameContaining(ctx context.Context, name string) ([]model.Bank, error)
	FindActive(ctx context.Context) ([]model.Bank, error)
	Save(ctx context.Context, bank *model.Bank) (*model.Bank, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// SQLBankRepository implements BankRepository on database/sql for Postgres and Trino
type SQLBankRepository struct {
	db     *sql.DB
	driver string
	table  string
}

// NewSQLBankRepository creates a repository bound to the database's driver dialect
func NewSQLBankRepository(db *database.Database) BankRepository {
	return &SQLBankRepository{
		db:     db.DB,
		driver: db.Config.Driver,
		table:  db.QualifiedTableName(),
	}
}

// ExistsBySwiftCode reports whether any record holds the given SWIFT code
func (r *SQLBankRepository) ExistsBySwiftCode(ctx context.Context, code string) (bool, error) {
	query := r.bind(fmt.Sprintf("SELECT 1 FROM %s WHERE swift_code = ? LIMIT 1", r.table))
	var exists int
	err := r.db.QueryRowContext(ctx, query, code).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s check exists failed: %w", r.driver, err)
	}
	return true, nil
}

// FindByID returns ErrNotFound when no record has the id
func (r *SQLBankRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Bank, error) {
	return r.findOne(ctx, "id", id.String())
}

// FindBySwiftCode matches the code exactly as given
func (r *SQLBankRepository) FindBySwiftCode(ctx context.Context, code string) (*model.Bank, error) {
	return r.findOne(ctx, "swift_code", code)
}

func (r *SQLBankRepository) FindAll(ctx context.Context) ([]model.Bank, error) {
	return r.findMany(ctx, "", nil)
}

func (r *SQLBankRepository) FindByCountry(ctx context.Context, country string) ([]model.Bank, error) {
	return r.findMany(ctx, "WHERE country = ?", []any{country})
}

func (r *SQLBankRepository) FindByCountryCode(ctx context.Context, countryCode string) ([]model.Bank, error) {
	return r.findMany(ctx, "WHERE country_code = ?", []any{countryCode})
}

// FindByNameContaining performs a case-insensitive substring match on the name
func (r *SQLBankRepository) FindByNameContaining(ctx context.Context, name string) ([]model.Bank, error) {
	return r.findMany(ctx, "WHERE LOWER(name) LIKE ?", []any{"%" + strings.ToLower(name) + "%"})
}

func (r *SQLBankRepository) FindActive(ctx context.Context) ([]model.Bank, error) {
	return r.findMany(ctx, "WHERE active = true", nil)
}

// Save inserts a bank without an id (assigning a new one) and updates it otherwise.
// A nil Active is stored as true.
func (r *SQLBankRepository) Save(ctx context.Context, bank *model.Bank) (*model.Bank, error) {
	saved := *bank
	if saved.Active == nil {
		saved.Active = model.BoolPtr(true)
	}

	if saved.ID == uuid.Nil {
		saved.ID = uuid.New()
		if err := r.insert(ctx, &saved); err != nil {
			return nil, err
		}
		return &saved, nil
	}

	if err := r.update(ctx, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeleteByID removes the record permanently
func (r *SQLBankRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	query := r.bind(fmt.Sprintf("DELETE FROM %s WHERE id = ?", r.table))
	result, err := r.db.ExecContext(ctx, query, id.String())
	if err != nil {
		return fmt.Errorf("%s delete failed: %w", r.driver, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLBankRepository) Count(ctx context.Context) (int64, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", r.table)
	var count int64
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s count failed: %w", r.driver, err)
	}
	return count, nil
}

// Helper methods

func (r *SQLBankRepository) insert(ctx context.Context, bank *model.Bank) error {
	query := r.bind(fmt.Sprintf("INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", r.table, bankColumns))
	_, err := r.db.ExecContext(ctx, query,
		bank.ID.String(),
		bank.SwiftCode,
		bank.Name,
		nullable(bank.Address),
		nullable(bank.City),
		nullable(bank.Country),
		nullable(bank.CountryCode),
		nullable(bank.PhoneNumber),
		nullable(bank.Email),
		nullable(bank.Website),
		nullableType(bank.BankType),
		*bank.Active,
		bank.CreatedAt,
		bank.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("%s insert failed: %w", r.driver, err)
	}
	return nil
}

func (r *SQLBankRepository) update(ctx context.Context, bank *model.Bank) error {
	query := r.bind(fmt.Sprintf("UPDATE %s SET swift_code = ?, name = ?, address = ?, city = ?, country = ?, country_code = ?, phone_number = ?, email = ?, website = ?, bank_type = ?, active = ?, created_at = ?, updated_at = ? WHERE id = ?", r.table))
	result, err := r.db.ExecContext(ctx, query,
		bank.SwiftCode,
		bank.Name,
		nullable(bank.Address),
		nullable(bank.City),
		nullable(bank.Country),
		nullable(bank.CountryCode),
		nullable(bank.PhoneNumber),
		nullable(bank.Email),
		nullable(bank.Website),
		nullableType(bank.BankType),
		*bank.Active,
		bank.CreatedAt,
		bank.UpdatedAt,
		bank.ID.String(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("%s update failed: %w", r.driver, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLBankRepository) findOne(ctx context.Context, column string, value any) (*model.Bank, error) {
	query := r.bind(fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?", bankColumns, r.table, column))
	bank, err := scanBank(r.db.QueryRowContext(ctx, query, value))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s query failed: %w", r.driver, err)
	}
	return bank, nil
}

func (r *SQLBankRepository) findMany(ctx context.Context, where string, args []any) ([]model.Bank, error) {
	clauses := []string{fmt.Sprintf("SELECT %s FROM %s", bankColumns, r.table)}
	if where != "" {
		clauses = append(clauses, where)
	}
	query := r.bind(strings.Join(append(clauses, "ORDER BY name"), " "))
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s query failed: %w", r.driver, err)
	}
	defer rows.Close()

	banks := make([]model.Bank, 0)
	for rows.Next() {
		bank, err := scanBank(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan failed: %w", r.driver, err)
		}
		banks = append(banks, *bank)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s query failed: %w", r.driver, err)
	}
	return banks, nil
}

// bind rewrites ? placeholders to $n for Postgres.
func (r *SQLBankRepository) bind(query string) string {
	if r.driver != database.DriverPostgres {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			sb.WriteString("$" + strconv.Itoa(n))
			continue
		}
		sb.WriteRune(ch)
	}
	return sb.String()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func nullable(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableType(value *model.BankType) any {
	if value == nil {
		return nil
	}
	return string(*value)
}

func scanBank(scanner interface {
	Scan(dest ...any) error
}) (*model.Bank, error) {
	var (
		bank                                  model.Bank
		id                                    string
		address, city, country, countryCode   sql.NullString
		phoneNumber, email, website, bankType sql.NullString
		active                                sql.NullBool
		createdAt, updatedAt                  time.Time
	)

	err := scanner.Scan(
		&id,
		&bank.SwiftCode,
		&bank.Name,
		&address,
		&city,
		&country,
		&countryCode,
		&phoneNumber,
		&email,
		&website,
		&bankType,
		&active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid bank id %q: %w", id, err)
	}
	bank.ID = parsed
	bank.Address = fromNull(address)
	bank.City = fromNull(city)
	bank.Country = fromNull(country)
	bank.CountryCode = fromNull(countryCode)
	bank.PhoneNumber = fromNull(phoneNumber)
	bank.Email = fromNull(email)
	bank.Website = fromNull(website)
	if bankType.Valid {
		t := model.BankType(bankType.String)
		bank.BankType = &t
	}
	if active.Valid {
		bank.Active = model.BoolPtr(active.Bool)
	}
	bank.CreatedAt = createdAt
	bank.UpdatedAt = updatedAt

	return &bank, nil
}

func fromNull(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	v := value.String
	return &v
}
