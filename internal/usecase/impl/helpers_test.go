package impl

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/infra/auth"
	"storefront/internal/infra/persistence/postgres"
	mockSvc "storefront/internal/mocks/service"
	"storefront/internal/testutil/dbtest"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newDiscardLogger creates a logger that discards all output.
func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixedClock returns a settable point in time.
type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFixedClock() *fixedClock {
	return &fixedClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

func newTestConfig() *config.Config {
	return &config.Config{
		SecretKey: config.SecretKeyConfig{Access: "test_access_secret_key_very_long_for_testing"},
		Auth:      &config.AuthConfig{Hasher: "sha256", TokenTTL: time.Hour, Issuer: "storefront", Audience: "storefront"},
		Catalog:   &config.CatalogConfig{DefaultPageSize: 12, DefaultRecentCount: 12},
		Cart:      &config.CartConfig{MaxUpsertAttempts: 3},
	}
}

// serviceFixtures holds the services under test and what they run on.
type serviceFixtures struct {
	db           *gorm.DB
	catalog      dbtest.Catalog
	factory      repository.UnitOfWorkFactory
	clock        *fixedClock
	publisher    *mockSvc.MockEventPublisher
	hasher       service.PasswordHasher
	tokenService service.TokenService
	users        usecase.UserUsecase
	carts        usecase.CartUsecase
	catalogSrv   usecase.CatalogUsecase
	events       usecase.EventUsecase
}

func createTestServices(t *testing.T) serviceFixtures {
	t.Helper()

	db := dbtest.Open(t)
	catalog := dbtest.SeedCatalog(t, db)
	cfg := newTestConfig()

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	f := serviceFixtures{
		db:           db,
		catalog:      catalog,
		factory:      postgres.NewUnitOfWorkFactory(db),
		clock:        newFixedClock(),
		publisher:    mockSvc.NewMockEventPublisher(t),
		hasher:       auth.NewSHA256Hasher(),
		tokenService: tokenService,
	}

	logger := newDiscardLogger()
	f.users = NewUserService(UserServiceParams{
		UowFactory:   f.factory,
		Hasher:       f.hasher,
		TokenService: f.tokenService,
		Clock:        f.clock,
		Publisher:    f.publisher,
		Logger:       logger,
	})
	f.carts = NewCartService(CartServiceParams{
		UowFactory: f.factory,
		Clock:      f.clock,
		Publisher:  f.publisher,
		Config:     cfg,
		Logger:     logger,
	})
	f.catalogSrv = NewCatalogService(CatalogServiceParams{
		UowFactory: f.factory,
		Config:     cfg,
		Logger:     logger,
	})
	f.events = NewEventService(EventServiceParams{
		UowFactory: f.factory,
		Logger:     logger,
	})

	return f
}

// failInserts makes every insert into table fail with err while the returned
// counter records how many were attempted.
func failInserts(t *testing.T, db *gorm.DB, table string, err error, times int) *int {
	t.Helper()

	attempts := 0
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:fail_"+table, func(tx *gorm.DB) {
		if tx.Statement.Table != table {
			return
		}
		attempts++
		if times < 0 || attempts <= times {
			_ = tx.AddError(err)
		}
	}))

	return &attempts
}

func strPtr(v string) *string { return &v }
