package repository_test

import (
	"context"
	"io"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/zdziszkee/bank-registry/internal/models"
	repo "github.com/zdziszkee/bank-registry/internal/repositories"
	"github.com/zdziszkee/bank-registry/tests/mocks"
)

var _ = Describe("CachedBankRepository", func() {
	var (
		ctx        context.Context
		mr         *miniredis.Miniredis
		client     *redis.Client
		backend    *mocks.MockBankRepository
		repository repo.BankRepository
		stored     map[uuid.UUID]models.Bank
		byIDCalls  int
		bySwift    int
		bankID     uuid.UUID
	)

	BeforeEach(func() {
		ctx = context.Background()
		mr = miniredis.RunT(GinkgoT())
		client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		DeferCleanup(client.Close)

		bankID = uuid.New()
		stored = map[uuid.UUID]models.Bank{
			bankID: {ID: bankID, SwiftCode: "DEUTDEFF", Name: "Deutsche Bank", Active: models.BoolPtr(true)},
		}
		byIDCalls, bySwift = 0, 0

		backend = &mocks.MockBankRepository{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*models.Bank, error) {
				byIDCalls++
				bank, ok := stored[id]
				if !ok {
					return nil, repo.ErrNotFound
				}
				return &bank, nil
			},
			FindBySwiftCodeFunc: func(ctx context.Context, code string) (*models.Bank, error) {
				bySwift++
				for _, bank := range stored {
					if bank.SwiftCode == code {
						return &bank, nil
					}
				}
				return nil, repo.ErrNotFound
			},
			SaveFunc: func(ctx context.Context, bank *models.Bank) (*models.Bank, error) {
				stored[bank.ID] = *bank
				saved := *bank
				return &saved, nil
			},
			DeleteByIDFunc: func(ctx context.Context, id uuid.UUID) error {
				delete(stored, id)
				return nil
			},
			CountFunc: func(ctx context.Context) (int64, error) {
				return int64(len(stored)), nil
			},
		}

		logger := logrus.New()
		logger.SetOutput(io.Discard)
		repository = repo.NewCachedBankRepository(backend, client, time.Minute, logger)
	})

	It("should serve repeated id lookups from the cache", func() {
		first, err := repository.FindByID(ctx, bankID)
		Expect(err).NotTo(HaveOccurred())
		second, err := repository.FindByID(ctx, bankID)
		Expect(err).NotTo(HaveOccurred())

		Expect(second).To(Equal(first))
		Expect(byIDCalls).To(Equal(1))
		Expect(mr.Exists("bank:id:" + bankID.String())).To(BeTrue())
		Expect(mr.TTL("bank:id:" + bankID.String())).To(Equal(time.Minute))
	})

	It("should resolve SWIFT codes through the cached id", func() {
		_, err := repository.FindBySwiftCode(ctx, "DEUTDEFF")
		Expect(err).NotTo(HaveOccurred())
		got, err := repository.FindBySwiftCode(ctx, "DEUTDEFF")
		Expect(err).NotTo(HaveOccurred())

		Expect(got.ID).To(Equal(bankID))
		Expect(bySwift).To(Equal(1))
		Expect(mr.Get("bank:swift:DEUTDEFF")).To(Equal(bankID.String()))
	})

	It("should not cache misses", func() {
		_, err := repository.FindByID(ctx, uuid.New())
		Expect(err).To(Equal(repo.ErrNotFound))
		Expect(mr.Keys()).To(BeEmpty())
	})

	It("should evict on save so the new state is read back", func() {
		_, err := repository.FindByID(ctx, bankID)
		Expect(err).NotTo(HaveOccurred())

		_, err = repository.Save(ctx, &models.Bank{ID: bankID, SwiftCode: "DEUTDEFFXXX", Name: "Deutsche Bank AG"})
		Expect(err).NotTo(HaveOccurred())

		got, err := repository.FindByID(ctx, bankID)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Name).To(Equal("Deutsche Bank AG"))
		Expect(byIDCalls).To(Equal(2))
	})

	It("should not serve a record under a SWIFT code it no longer holds", func() {
		_, err := repository.FindBySwiftCode(ctx, "DEUTDEFF")
		Expect(err).NotTo(HaveOccurred())

		_, err = repository.Save(ctx, &models.Bank{ID: bankID, SwiftCode: "DEUTDEFFXXX", Name: "Deutsche Bank"})
		Expect(err).NotTo(HaveOccurred())
		_, err = repository.FindByID(ctx, bankID)
		Expect(err).NotTo(HaveOccurred())

		_, err = repository.FindBySwiftCode(ctx, "DEUTDEFF")
		Expect(err).To(Equal(repo.ErrNotFound))
	})

	It("should evict on delete", func() {
		_, err := repository.FindByID(ctx, bankID)
		Expect(err).NotTo(HaveOccurred())

		Expect(repository.DeleteByID(ctx, bankID)).To(Succeed())

		_, err = repository.FindByID(ctx, bankID)
		Expect(err).To(Equal(repo.ErrNotFound))
	})

	It("should not store a record loaded before a concurrent save", func() {
		loaded := make(chan struct{})
		release := make(chan struct{})
		backend.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Bank, error) {
			bank := stored[id]
			close(loaded)
			<-release
			return &bank, nil
		}

		type result struct {
			bank *models.Bank
			err  error
		}
		done := make(chan result, 1)
		go func() {
			defer GinkgoRecover()
			bank, err := repository.FindByID(ctx, bankID)
			done <- result{bank, err}
		}()

		Eventually(loaded).Should(BeClosed())
		_, err := repository.Save(ctx, &models.Bank{ID: bankID, SwiftCode: "DEUTDEFF", Name: "Deutsche Bank AG"})
		Expect(err).NotTo(HaveOccurred())
		close(release)

		var inFlight result
		Eventually(done).Should(Receive(&inFlight))
		Expect(inFlight.err).NotTo(HaveOccurred())
		Expect(inFlight.bank.Name).To(Equal("Deutsche Bank"))
		Expect(mr.Exists("bank:id:" + bankID.String())).To(BeFalse())

		backend.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Bank, error) {
			bank := stored[id]
			return &bank, nil
		}
		got, err := repository.FindByID(ctx, bankID)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Name).To(Equal("Deutsche Bank AG"))

		cached, err := repository.FindByID(ctx, bankID)
		Expect(err).NotTo(HaveOccurred())
		Expect(cached.Name).To(Equal("Deutsche Bank AG"))
		Expect(mr.Exists("bank:id:" + bankID.String())).To(BeTrue())
	})

	It("should not store a record loaded before a concurrent delete", func() {
		loaded := make(chan struct{})
		release := make(chan struct{})
		backend.FindBySwiftCodeFunc = func(ctx context.Context, code string) (*models.Bank, error) {
			bank := stored[bankID]
			close(loaded)
			<-release
			return &bank, nil
		}

		done := make(chan error, 1)
		go func() {
			defer GinkgoRecover()
			_, err := repository.FindBySwiftCode(ctx, "DEUTDEFF")
			done <- err
		}()

		Eventually(loaded).Should(BeClosed())
		Expect(repository.DeleteByID(ctx, bankID)).To(Succeed())
		close(release)

		Eventually(done).Should(Receive(BeNil()))
		Expect(mr.Exists("bank:id:" + bankID.String())).To(BeFalse())

		_, err := repository.FindByID(ctx, bankID)
		Expect(err).To(Equal(repo.ErrNotFound))
	})

	It("should pass uncached operations through", func() {
		Expect(repository.Count(ctx)).To(Equal(int64(1)))
	})

	It("should fall back to the backend when redis is unavailable", func() {
		mr.Close()

		got, err := repository.FindByID(ctx, bankID)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.SwiftCode).To(Equal("DEUTDEFF"))

		got, err = repository.FindBySwiftCode(ctx, "DEUTDEFF")
		Expect(err).NotTo(HaveOccurred())
		Expect(got.ID).To(Equal(bankID))
	})
})
