package service_test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/cart-manager/internal/domain"
	"github.com/stretchr/testify/mock"
)

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) Exists(ctx context.Context, cartID uuid.UUID) (bool, error) {
	args := m.Called(ctx, cartID)
	return args.Bool(0), args.Error(1)
}

func (m *mockCartRepository) Find(ctx context.Context, cartID uuid.UUID) (domain.Cart, error) {
	args := m.Called(ctx, cartID)
	return args.Get(0).(domain.Cart), args.Error(1)
}

func (m *mockCartRepository) Save(ctx context.Context, cart domain.Cart) (domain.Cart, error) {
	args := m.Called(ctx, cart)
	return args.Get(0).(domain.Cart), args.Error(1)
}

func (m *mockCartRepository) Delete(ctx context.Context, cartID uuid.UUID) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

type mockCatalogue struct {
	mock.Mock
}

func (m *mockCatalogue) GetProductByID(ctx context.Context, productID int64) (domain.Product, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(domain.Product), args.Error(1)
}

// memoryCarts is a goroutine safe in-memory cart store.
type memoryCarts struct {
	mu    sync.Mutex
	carts map[uuid.UUID]domain.Cart
	saves int
}

func newMemoryCarts() *memoryCarts {
	return &memoryCarts{carts: make(map[uuid.UUID]domain.Cart)}
}

func (s *memoryCarts) Exists(_ context.Context, cartID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.carts[cartID]
	return ok, nil
}

func (s *memoryCarts) Find(_ context.Context, cartID uuid.UUID) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[cartID]
	if !ok {
		return domain.Cart{}, domain.ErrCartNotFound
	}

	return cart.Clone(), nil
}

func (s *memoryCarts) Save(_ context.Context, cart domain.Cart) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := cart.Clone()
	saved.UpdatedAt = time.Now()
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = saved.UpdatedAt
	}

	s.carts[cart.ID] = saved
	s.saves++

	return saved.Clone(), nil
}

func (s *memoryCarts) Delete(_ context.Context, cartID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, cartID)
	return nil
}

func (s *memoryCarts) put(cart domain.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[cart.ID] = cart.Clone()
}

func (s *memoryCarts) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saves
}

// slowCarts delays Find and gives up early when ctx is done.
type slowCarts struct {
	*memoryCarts
	delay time.Duration
	finds atomic.Int32
	// closed on the first Find call
	started chan struct{}
	once    sync.Once
}

func newSlowCarts(delay time.Duration) *slowCarts {
	return &slowCarts{
		memoryCarts: newMemoryCarts(),
		delay:       delay,
		started:     make(chan struct{}),
	}
}

func (s *slowCarts) Find(ctx context.Context, cartID uuid.UUID) (domain.Cart, error) {
	s.finds.Add(1)
	s.once.Do(func() { close(s.started) })

	select {
	case <-ctx.Done():
		return domain.Cart{}, ctx.Err()
	case <-time.After(s.delay):
	}

	return s.memoryCarts.Find(ctx, cartID)
}
