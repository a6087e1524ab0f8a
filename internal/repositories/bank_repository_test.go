package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zdziszkee/bank-registry/internal/database"
	"github.com/zdziszkee/bank-registry/internal/models"
	repo "github.com/zdziszkee/bank-registry/internal/repositories"
)

func TestRepositories(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Repositories Suite")
}

var bankColumns = []string{"id", "swift_code", "name", "address", "city", "country", "country_code", "phone_number", "email", "website", "bank_type", "active", "created_at", "updated_at"}

var _ = Describe("SQLBankRepository", func() {
	var (
		mockDB     *sql.DB
		mock       sqlmock.Sqlmock
		repository repo.BankRepository
		ctx        context.Context
		tableName  = `bank_catalog\.registry\.banks`
		bankID     uuid.UUID
		createdAt  time.Time
	)

	BeforeEach(func() {
		var err error
		mockDB, mock, err = sqlmock.New()
		Expect(err).NotTo(HaveOccurred())

		db := &database.Database{DB: mockDB, Config: database.Config{
			Driver:  database.DriverTrino,
			Catalog: "bank_catalog",
			Schema:  "registry",
		}}
		repository = repo.NewSQLBankRepository(db)
		ctx = context.Background()
		bankID = uuid.MustParse("5b0e7b8e-2f4a-4c55-9a57-0d1f4a6f1c01")
		createdAt = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	})

	AfterEach(func() {
		Expect(mock.ExpectationsWereMet()).To(Succeed())
		mockDB.Close()
	})

	santanderRow := func() *sqlmock.Rows {
		return sqlmock.NewRows(bankColumns).AddRow(
			bankID.String(), "SANDESMMXXX", "Banco Santander", "Paseo de la Castellana 83-85", "Madrid", "Spain", "ES",
			nil, nil, "https://www.santander.es", "COMMERCIAL", true, createdAt, createdAt,
		)
	}

	Describe("ExistsBySwiftCode", func() {
		It("should report an existing code", func() {
			mock.ExpectQuery(`SELECT 1 FROM ` + tableName + ` WHERE swift_code = \? LIMIT 1`).
				WithArgs("BBVAESMM").
				WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

			exists, err := repository.ExistsBySwiftCode(ctx, "BBVAESMM")
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())
		})

		It("should report a missing code", func() {
			mock.ExpectQuery(`SELECT 1 FROM ` + tableName + ` WHERE swift_code = \? LIMIT 1`).
				WithArgs("BBVAESMM").
				WillReturnError(sql.ErrNoRows)

			exists, err := repository.ExistsBySwiftCode(ctx, "BBVAESMM")
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})

		It("should wrap database errors", func() {
			mock.ExpectQuery(`SELECT 1 FROM ` + tableName).
				WillReturnError(errors.New("database connection error"))

			_, err := repository.ExistsBySwiftCode(ctx, "BBVAESMM")
			Expect(err).To(MatchError(ContainSubstring("trino check exists failed")))
		})
	})

	Describe("FindByID", func() {
		It("should map every column", func() {
			mock.ExpectQuery(`SELECT id, swift_code, .* FROM ` + tableName + ` WHERE id = \?`).
				WithArgs(bankID.String()).
				WillReturnRows(santanderRow())

			bank, err := repository.FindByID(ctx, bankID)
			Expect(err).NotTo(HaveOccurred())
			Expect(bank.ID).To(Equal(bankID))
			Expect(bank.SwiftCode).To(Equal("SANDESMMXXX"))
			Expect(*bank.City).To(Equal("Madrid"))
			Expect(bank.PhoneNumber).To(BeNil())
			Expect(bank.Email).To(BeNil())
			Expect(*bank.BankType).To(Equal(models.Commercial))
			Expect(bank.IsOperational()).To(BeTrue())
			Expect(bank.CreatedAt).To(Equal(createdAt))
		})

		It("should return ErrNotFound for a missing id", func() {
			mock.ExpectQuery(`SELECT .* FROM ` + tableName + ` WHERE id = \?`).
				WithArgs(bankID.String()).
				WillReturnError(sql.ErrNoRows)

			bank, err := repository.FindByID(ctx, bankID)
			Expect(err).To(Equal(repo.ErrNotFound))
			Expect(bank).To(BeNil())
		})

		It("should wrap database errors", func() {
			mock.ExpectQuery(`SELECT .* FROM ` + tableName + ` WHERE id = \?`).
				WillReturnError(errors.New("database error"))

			_, err := repository.FindByID(ctx, bankID)
			Expect(err).To(MatchError(ContainSubstring("trino query failed")))
		})
	})

	Describe("FindBySwiftCode", func() {
		It("should query the code exactly as given", func() {
			mock.ExpectQuery(`SELECT .* FROM ` + tableName + ` WHERE swift_code = \?`).
				WithArgs("sandesmmxxx").
				WillReturnError(sql.ErrNoRows)

			_, err := repository.FindBySwiftCode(ctx, "sandesmmxxx")
			Expect(err).To(Equal(repo.ErrNotFound))
		})
	})

	Describe("list queries", func() {
		It("should return an empty slice when nothing matches", func() {
			mock.ExpectQuery(`SELECT .* FROM ` + tableName + ` ORDER BY name`).
				WillReturnRows(sqlmock.NewRows(bankColumns))

			banks, err := repository.FindAll(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(banks).NotTo(BeNil())
			Expect(banks).To(BeEmpty())
		})

		It("should filter by country", func() {
			mock.ExpectQuery(`SELECT .* FROM ` + tableName + ` WHERE country = \? ORDER BY name`).
				WithArgs("Spain").
				WillReturnRows(santanderRow())

			banks, err := repository.FindByCountry(ctx, "Spain")
			Expect(err).NotTo(HaveOccurred())
			Expect(banks).To(HaveLen(1))
		})

		It("should filter by country code", func() {
			mock.ExpectQuery(`SELECT .* FROM ` + tableName + ` WHERE country_code = \? ORDER BY name`).
				WithArgs("ES").
				WillReturnRows(santanderRow())

			banks, err := repository.FindByCountryCode(ctx, "ES")
			Expect(err).NotTo(HaveOccurred())
			Expect(banks[0].SwiftCode).To(Equal("SANDESMMXXX"))
		})

		It("should search names case-insensitively", func() {
			mock.ExpectQuery(`SELECT .* FROM ` + tableName + ` WHERE LOWER\(name\) LIKE \? ORDER BY name`).
				WithArgs("%santander%").
				WillReturnRows(santanderRow())

			banks, err := repository.FindByNameContaining(ctx, "SanTander")
			Expect(err).NotTo(HaveOccurred())
			Expect(banks).To(HaveLen(1))
		})

		It("should filter active banks", func() {
			mock.ExpectQuery(`SELECT .* FROM ` + tableName + ` WHERE active = true ORDER BY name`).
				WillReturnRows(santanderRow())

			banks, err := repository.FindActive(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(banks).To(HaveLen(1))
		})

		It("should handle row scan errors", func() {
			mock.ExpectQuery(`SELECT .* FROM ` + tableName).
				WillReturnRows(sqlmock.NewRows([]string{"id", "swift_code"}).AddRow(bankID.String(), "SANDESMMXXX"))

			banks, err := repository.FindAll(ctx)
			Expect(err).To(MatchError(ContainSubstring("trino scan failed")))
			Expect(banks).To(BeNil())
		})

		It("should wrap query errors", func() {
			mock.ExpectQuery(`SELECT .* FROM ` + tableName).
				WillReturnError(errors.New("database error"))

			_, err := repository.FindActive(ctx)
			Expect(err).To(MatchError(ContainSubstring("trino query failed")))
		})
	})

	Describe("Save", func() {
		It("should insert a new bank and assign an id", func() {
			bank := &models.Bank{
				SwiftCode: "BBVAESMM",
				Name:      "BBVA",
				City:      models.StringPtr("Bilbao"),
				CreatedAt: createdAt,
				UpdatedAt: createdAt,
			}

			mock.ExpectExec(`INSERT INTO `+tableName+` \(id, swift_code, name, .*\) VALUES \(\?, \?, \?, \?, \?, \?, \?, \?, \?, \?, \?, \?, \?, \?\)`).
				WithArgs(sqlmock.AnyArg(), "BBVAESMM", "BBVA", nil, "Bilbao", nil, nil, nil, nil, nil, nil, true, createdAt, createdAt).
				WillReturnResult(sqlmock.NewResult(0, 1))

			saved, err := repository.Save(ctx, bank)
			Expect(err).NotTo(HaveOccurred())
			Expect(saved.ID).NotTo(Equal(uuid.Nil))
			Expect(saved.IsOperational()).To(BeTrue())
			Expect(bank.ID).To(Equal(uuid.Nil), "the caller's value is not mutated")
		})

		It("should update an existing bank", func() {
			bank := &models.Bank{
				ID:        bankID,
				SwiftCode: "BBVAESMM",
				Name:      "BBVA",
				Active:    models.BoolPtr(false),
				CreatedAt: createdAt,
				UpdatedAt: createdAt.Add(time.Hour),
			}

			mock.ExpectExec(`UPDATE `+tableName+` SET swift_code = \?, .* WHERE id = \?`).
				WithArgs("BBVAESMM", "BBVA", nil, nil, nil, nil, nil, nil, nil, nil, false, createdAt, createdAt.Add(time.Hour), bankID.String()).
				WillReturnResult(sqlmock.NewResult(0, 1))

			saved, err := repository.Save(ctx, bank)
			Expect(err).NotTo(HaveOccurred())
			Expect(saved.ID).To(Equal(bankID))
			Expect(saved.IsOperational()).To(BeFalse())
		})

		It("should return ErrNotFound when the update touches no row", func() {
			mock.ExpectExec(`UPDATE ` + tableName).
				WillReturnResult(sqlmock.NewResult(0, 0))

			_, err := repository.Save(ctx, &models.Bank{ID: bankID, SwiftCode: "BBVAESMM", Name: "BBVA"})
			Expect(err).To(Equal(repo.ErrNotFound))
		})

		It("should wrap insert errors", func() {
			mock.ExpectExec(`INSERT INTO ` + tableName).
				WillReturnError(errors.New("insert error"))

			_, err := repository.Save(ctx, &models.Bank{SwiftCode: "BBVAESMM", Name: "BBVA"})
			Expect(err).To(MatchError(ContainSubstring("trino insert failed")))
		})
	})

	Describe("DeleteByID", func() {
		It("should delete an existing bank", func() {
			mock.ExpectExec(`DELETE FROM ` + tableName + ` WHERE id = \?`).
				WithArgs(bankID.String()).
				WillReturnResult(sqlmock.NewResult(0, 1))

			Expect(repository.DeleteByID(ctx, bankID)).To(Succeed())
		})

		It("should return ErrNotFound when nothing was deleted", func() {
			mock.ExpectExec(`DELETE FROM ` + tableName + ` WHERE id = \?`).
				WithArgs(bankID.String()).
				WillReturnResult(sqlmock.NewResult(0, 0))

			Expect(repository.DeleteByID(ctx, bankID)).To(Equal(repo.ErrNotFound))
		})

		It("should wrap database errors", func() {
			mock.ExpectExec(`DELETE FROM ` + tableName).
				WillReturnError(errors.New("delete error"))

			Expect(repository.DeleteByID(ctx, bankID)).To(MatchError(ContainSubstring("trino delete failed")))
		})
	})

	Describe("Count", func() {
		It("should count all banks", func() {
			mock.ExpectQuery(`SELECT COUNT\(\*\) FROM ` + tableName).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

			count, err := repository.Count(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(5)))
		})
	})
})

var _ = Describe("SQLBankRepository on postgres", func() {
	var (
		mockDB     *sql.DB
		mock       sqlmock.Sqlmock
		repository repo.BankRepository
		ctx        = context.Background()
	)

	BeforeEach(func() {
		var err error
		mockDB, mock, err = sqlmock.New()
		Expect(err).NotTo(HaveOccurred())
		repository = repo.NewSQLBankRepository(&database.Database{DB: mockDB, Config: database.Config{Driver: database.DriverPostgres}})
	})

	AfterEach(func() {
		Expect(mock.ExpectationsWereMet()).To(Succeed())
		mockDB.Close()
	})

	It("should use numbered placeholders", func() {
		mock.ExpectQuery(`SELECT 1 FROM banks WHERE swift_code = \$1 LIMIT 1`).
			WithArgs("BBVAESMM").
			WillReturnError(sql.ErrNoRows)

		_, err := repository.ExistsBySwiftCode(ctx, "BBVAESMM")
		Expect(err).NotTo(HaveOccurred())
	})

	It("should translate unique violations on insert into ErrDuplicate", func() {
		mock.ExpectExec(`INSERT INTO banks \(.*\) VALUES \(\$1, \$2, .*\$14\)`).
			WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

		_, err := repository.Save(ctx, &models.Bank{SwiftCode: "BBVAESMM", Name: "BBVA"})
		Expect(err).To(Equal(repo.ErrDuplicate))
	})

	It("should translate unique violations on update into ErrDuplicate", func() {
		mock.ExpectExec(`UPDATE banks SET swift_code = \$1, .* WHERE id = \$14`).
			WillReturnError(&pq.Error{Code: "23505"})

		_, err := repository.Save(ctx, &models.Bank{ID: uuid.New(), SwiftCode: "BBVAESMM", Name: "BBVA"})
		Expect(err).To(Equal(repo.ErrDuplicate))
	})

	It("should not treat other constraint errors as duplicates", func() {
		mock.ExpectExec(`INSERT INTO banks`).
			WillReturnError(&pq.Error{Code: "23502", Message: "null value in column"})

		_, err := repository.Save(ctx, &models.Bank{SwiftCode: "BBVAESMM", Name: "BBVA"})
		Expect(err).To(MatchError(ContainSubstring("postgres insert failed")))
		Expect(errors.Is(err, repo.ErrDuplicate)).To(BeFalse())
	})
})
