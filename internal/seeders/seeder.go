package seeder

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	parser "github.com/zdziszkee/bank-registry/internal/parsers"
	readers "github.com/zdziszkee/bank-registry/internal/readers"
	repository "github.com/zdziszkee/bank-registry/internal/repositories"
	service "github.com/zdziszkee/bank-registry/internal/services"
)

//go:embed data/sample_banks.csv
var sampleBanks []byte

// Seeder fills an empty registry with sample banks on startup.
type Seeder struct {
	repo    repository.BankRepository
	service service.BankService
	reader  readers.BanksReader
	parser  parser.BanksParser
	logger  logrus.FieldLogger
}

func NewSeeder(
	repo repository.BankRepository,
	svc service.BankService,
	reader readers.BanksReader,
	banksParser parser.BanksParser,
	logger logrus.FieldLogger,
) *Seeder {
	return &Seeder{
		repo:    repo,
		service: svc,
		reader:  reader,
		parser:  banksParser,
		logger:  logger.WithField("component", "seeder"),
	}
}

// SeedFile seeds from the CSV at path, or from the embedded sample banks when
// path is empty.
func (s *Seeder) SeedFile(ctx context.Context, path string) (int, error) {
	if path == "" {
		return s.Seed(ctx, bytes.NewReader(sampleBanks))
	}

	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open seed file %s: %w", path, err)
	}
	defer file.Close()

	return s.Seed(ctx, file)
}

// Seed creates every valid bank in source, but only when the registry holds
// no banks yet. It returns the number of banks created.
func (s *Seeder) Seed(ctx context.Context, source io.Reader) (int, error) {
	startTime := time.Now()

	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count banks: %w", err)
	}
	if count > 0 {
		s.logger.WithField("count", count).Info("Registry already populated, skipping seeding")
		return 0, nil
	}

	records, err := s.reader.LoadBanks(source)
	if err != nil {
		return 0, fmt.Errorf("failed to read seed data: %w", err)
	}

	banks, err := s.parser.ParseBanks(records)
	if err != nil {
		return 0, fmt.Errorf("failed to parse seed data: %w", err)
	}

	created := 0
	for i := range banks {
		bank := banks[i]
		if _, err := s.service.CreateBank(ctx, &bank); err != nil {
			s.logger.WithError(err).WithField("swift_code", bank.SwiftCode).Warn("Skipping seed bank")
			continue
		}
		created++
	}

	s.logger.WithFields(logrus.Fields{
		"created":  created,
		"total":    len(banks),
		"duration": time.Since(startTime),
	}).Info("Seeded sample banks")
	return created, nil
}
