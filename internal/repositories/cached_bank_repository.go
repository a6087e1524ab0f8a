package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	model "github.com/zdziszkee/bank-registry/internal/models"
)

const (
	bankKeyPrefix  = "bank:id:"
	swiftKeyPrefix = "bank:swift:"

	// generationKey is bumped on every write. A read only fills the cache when
	// no write happened between its storage lookup and the store.
	generationKey = "bank:generation"
)

var errStaleRead = errors.New("bank changed while it was being read")

// CachedBankRepository is a read-through Redis cache in front of another BankRepository.
// Records are cached by id; SWIFT code keys only point at an id, so a renamed or
// deleted record can never be served under a stale code. Cache failures are logged
// and fall through to the wrapped repository.
type CachedBankRepository struct {
	BankRepository
	client redis.UniversalClient
	ttl    time.Duration
	logger logrus.FieldLogger
}

// NewCachedBankRepository wraps next with a Redis cache
func NewCachedBankRepository(next BankRepository, client redis.UniversalClient, ttl time.Duration, logger logrus.FieldLogger) BankRepository {
	return &CachedBankRepository{
		BankRepository: next,
		client:         client,
		ttl:            ttl,
		logger:         logger.WithField("component", "bank_cache"),
	}
}

func (r *CachedBankRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Bank, error) {
	if bank, ok := r.getBank(ctx, id); ok {
		return bank, nil
	}

	generation, cacheable := r.generation(ctx)
	bank, err := r.BankRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cacheable {
		r.put(ctx, bank, generation)
	}
	return bank, nil
}

func (r *CachedBankRepository) FindBySwiftCode(ctx context.Context, code string) (*model.Bank, error) {
	if id, err := r.client.Get(ctx, swiftKeyPrefix+code).Result(); err == nil {
		if parsed, err := uuid.Parse(id); err == nil {
			if bank, ok := r.getBank(ctx, parsed); ok && bank.SwiftCode == code {
				return bank, nil
			}
		}
	} else if !errors.Is(err, redis.Nil) {
		r.logger.WithError(err).Warn("cache lookup failed")
	}

	generation, cacheable := r.generation(ctx)
	bank, err := r.BankRepository.FindBySwiftCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if cacheable {
		r.put(ctx, bank, generation)
	}
	return bank, nil
}

// Save writes through and evicts the cached record.
func (r *CachedBankRepository) Save(ctx context.Context, bank *model.Bank) (*model.Bank, error) {
	saved, err := r.BankRepository.Save(ctx, bank)
	if err != nil {
		return nil, err
	}
	r.evict(ctx, saved.ID)
	return saved, nil
}

func (r *CachedBankRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if err := r.BankRepository.DeleteByID(ctx, id); err != nil {
		return err
	}
	r.evict(ctx, id)
	return nil
}

func (r *CachedBankRepository) getBank(ctx context.Context, id uuid.UUID) (*model.Bank, bool) {
	data, err := r.client.Get(ctx, bankKeyPrefix+id.String()).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.WithError(err).Warn("cache lookup failed")
		}
		return nil, false
	}

	var bank model.Bank
	if err := json.Unmarshal(data, &bank); err != nil {
		r.logger.WithError(err).Warn("discarding undecodable cache entry")
		return nil, false
	}
	return &bank, true
}

// generation snapshots the write counter before a storage read. ok is false
// when redis cannot be reached, in which case the result must not be cached.
func (r *CachedBankRepository) generation(ctx context.Context) (string, bool) {
	generation, err := r.client.Get(ctx, generationKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		r.logger.WithError(err).Warn("cache lookup failed")
		return "", false
	}
	return generation, true
}

// put stores bank unless a write has happened since generation was read.
func (r *CachedBankRepository) put(ctx context.Context, bank *model.Bank, generation string) {
	data, err := json.Marshal(bank)
	if err != nil {
		r.logger.WithError(err).Warn("cache encode failed")
		return
	}

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, generationKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return errStaleRead
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, bankKeyPrefix+bank.ID.String(), data, r.ttl)
			pipe.Set(ctx, swiftKeyPrefix+bank.SwiftCode, bank.ID.String(), r.ttl)
			return nil
		})
		return err
	}, generationKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleRead), errors.Is(err, redis.TxFailedErr):
		r.logger.WithField("id", bank.ID).Debug("skipping cache store for a bank written concurrently")
	default:
		r.logger.WithError(err).Warn("cache store failed")
	}
}

// evict bumps the write counter before dropping the record, so a read still in
// flight cannot store what it loaded.
func (r *CachedBankRepository) evict(ctx context.Context, id uuid.UUID) {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey)
		pipe.Del(ctx, bankKeyPrefix+id.String())
		return nil
	})
	if err != nil {
		r.logger.WithError(err).WithField("id", id).Warn("cache eviction failed")
	}
}
