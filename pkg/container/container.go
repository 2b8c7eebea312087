package container

import (
	"context"
	"fmt"

	"library-backend/internal/config"
	"library-backend/internal/events"
	infraCache "library-backend/internal/infrastructure/cache"
	"library-backend/internal/infrastructure/database"
	"library-backend/pkg/cache"
	pkgdb "library-backend/pkg/database"
	"library-backend/pkg/logger"

	"library-backend/internal/domains/author"
	authorHandler "library-backend/internal/domains/author/handler"
	authorRepo "library-backend/internal/domains/author/repository"
	authorService "library-backend/internal/domains/author/service"

	"library-backend/internal/domains/book"
	bookHandler "library-backend/internal/domains/book/handler"
	bookRepo "library-backend/internal/domains/book/repository"
	bookService "library-backend/internal/domains/book/service"

	"library-backend/internal/domains/customer"
	customerHandler "library-backend/internal/domains/customer/handler"
	customerRepo "library-backend/internal/domains/customer/repository"
	customerService "library-backend/internal/domains/customer/service"

	"library-backend/internal/domains/borrowing"
	borrowingHandler "library-backend/internal/domains/borrowing/handler"
	borrowingRepo "library-backend/internal/domains/borrowing/repository"
	borrowingService "library-backend/internal/domains/borrowing/service"
)

// Container holds every application dependency. It is the root of the
// dependency graph: config first, then infrastructure, repositories,
// services, bus wiring, handlers.
type Container struct {
	// Infrastructure
	Config *config.Config
	DB     *database.PostgresDB
	Redis  *infraCache.RedisClient
	Cache  cache.Cache
	Tx     pkgdb.TxManager
	Bus    *events.Bus

	// Repositories
	AuthorRepo    author.Repository
	BookRepo      book.Repository
	CustomerRepo  customer.Repository
	BorrowingRepo borrowing.Repository

	// Services
	AuthorService    author.Service
	BookService      book.Service
	CustomerService  customer.Service
	BorrowingService borrowing.Service

	// Handlers
	AuthorHandler    *authorHandler.Handler
	BookHandler      *bookHandler.Handler
	CustomerHandler  *customerHandler.Handler
	BorrowingHandler *borrowingHandler.Handler
}

// NewContainer builds the whole graph in dependency order.
func NewContainer(ctx context.Context) (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}
	c.DB = database.NewPostgresDB(dbConfig)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	c.Redis = infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Redis.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Cache = infraCache.NewRedisCache(c.Redis)

	c.Tx = pkgdb.NewTxManager(c.DB.Pool)
	c.Bus = events.NewBus()

	c.AuthorRepo = authorRepo.NewPostgresRepository(c.DB.Pool, c.Cache)
	c.BookRepo = bookRepo.NewPostgresRepository(c.DB.Pool, c.Cache)
	c.CustomerRepo = customerRepo.NewPostgresRepository(c.DB.Pool)
	c.BorrowingRepo = borrowingRepo.NewPostgresRepository(c.DB.Pool)

	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, c.Bus, c.Tx)
	c.BookService = bookService.NewBookService(c.BookRepo, c.AuthorRepo, c.Bus, c.Tx)
	c.CustomerService = customerService.NewCustomerService(c.CustomerRepo, c.Bus, c.Tx)
	c.BorrowingService = borrowingService.NewBorrowingService(c.BorrowingRepo, c.CustomerRepo, c.BookRepo, c.Tx)

	// Deletion cascade wiring. Handlers run synchronously inside the
	// deleting service's transaction, in registration order.
	c.Bus.OnAuthorDeleted(func(ctx context.Context, ev events.AuthorDeleted) error {
		return c.BookService.DetachAuthorBooks(ctx, ev.Author)
	})
	c.Bus.OnBookDeleted(func(ctx context.Context, ev events.BookDeleted) error {
		return c.BorrowingService.RemoveBookRecords(ctx, ev.Book)
	})
	c.Bus.OnCustomerDeleted(func(ctx context.Context, ev events.CustomerDeleted) error {
		return c.BorrowingService.RemoveCustomerRecords(ctx, ev.Customer)
	})

	c.AuthorHandler = authorHandler.NewHandler(c.AuthorService)
	c.BookHandler = bookHandler.NewHandler(c.BookService)
	c.CustomerHandler = customerHandler.NewHandler(c.CustomerService)
	c.BorrowingHandler = borrowingHandler.NewHandler(c.BorrowingService)

	logger.Info("container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
	})
	return c, nil
}

// Cleanup releases infrastructure resources in reverse order.
func (c *Container) Cleanup() {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Error("failed to close redis client", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}

// HealthCheck pings every infrastructure dependency.
func (c *Container) HealthCheck(ctx context.Context) error {
	if err := c.DB.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	if err := c.Redis.HealthCheck(ctx); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}
	return nil
}
