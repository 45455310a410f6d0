package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pankajredekar/catalog/internal/product"
	"github.com/pankajredekar/catalog/internal/storage"
	"go.uber.org/zap"
)

// DefaultKey is the storage key holding the collection
const DefaultKey = "products"

var (
	// ErrNotFound is returned when no product has the requested SKU
	ErrNotFound = errors.New("product not found")

	// ErrDuplicateSKU is returned by Add when the SKU is already taken
	ErrDuplicateSKU = errors.New("sku already exists")

	// ErrCorruptState is returned by Initialize when the stored collection
	// cannot be parsed
	ErrCorruptState = errors.New("stored products are corrupt")

	// ErrInvalidProduct is returned for records the collection cannot hold:
	// an empty SKU or an unknown type
	ErrInvalidProduct = errors.New("product cannot be stored")

	// ErrSaveFailed is returned when a mutation could not be persisted.
	// The in-memory collection is unchanged in that case.
	ErrSaveFailed = errors.New("failed to save products")
)

// Store owns the product collection and mirrors it to a storage backend
type Store struct {
	mu       sync.RWMutex
	backend  storage.Backend
	key      string
	now      func() time.Time
	log      *zap.Logger
	products []product.Product
	index    map[string]int

	// set when the last load could not read the backend; mutations
	// retry the load instead of overwriting data they never saw
	loadErr error
}

// Option configures a Store
type Option func(*Store)

// WithKey sets the storage key
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithClock sets the clock used for CreatedAt
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates an empty store. Call Initialize to load persisted products.
func New(backend storage.Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		key:     DefaultKey,
		now:     time.Now,
		log:     zap.NewNop(),
		index:   make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads the persisted collection. On any error the store falls
// back to an empty collection and stays usable.
func (s *Store) Initialize(ctx context.Context) ([]product.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.load(ctx)
	return s.snapshot(), err
}

func (s *Store) load(ctx context.Context) error {
	s.set(nil)
	s.loadErr = nil

	data, err := s.backend.Read(ctx, s.key)
	if errors.Is(err, storage.ErrNotExist) {
		return nil
	}
	if err != nil {
		s.loadErr = err
		s.log.Error("failed to read products, starting empty", zap.String("key", s.key), zap.Error(err))
		return fmt.Errorf("failed to read products: %w", err)
	}

	products, err := product.DecodeCollection(data)
	if err != nil {
		s.log.Warn("stored products are corrupt, starting empty", zap.String("key", s.key), zap.Error(err))
		s.backup(ctx, data)
		return fmt.Errorf("%w: %v", ErrCorruptState, err)
	}

	s.set(products)
	s.log.Debug("loaded products", zap.String("key", s.key), zap.Int("count", len(products)))
	return nil
}

// backup keeps the unreadable payload next to the collection
func (s *Store) backup(ctx context.Context, data []byte) {
	key := s.key + ".corrupt"
	if err := s.backend.Write(ctx, key, data); err != nil {
		s.log.Error("failed to back up corrupt products", zap.String("key", key), zap.Error(err))
		return
	}
	s.log.Warn("backed up corrupt products", zap.String("key", key))
}

// Add stamps CreatedAt and stores a new product. The caller validates the
// draft first; Add only guards SKU uniqueness.
func (s *Store) Add(ctx context.Context, p product.Product) (product.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := checkStorable(p); err != nil {
		return product.Product{}, err
	}
	if err := s.ensureLoaded(ctx); err != nil {
		return product.Product{}, err
	}
	if _, ok := s.index[p.SKU]; ok {
		return product.Product{}, fmt.Errorf("%w: %s", ErrDuplicateSKU, p.SKU)
	}

	p.CreatedAt = s.now().UnixMilli()

	next := make([]product.Product, len(s.products), len(s.products)+1)
	copy(next, s.products)
	next = append(next, p)

	if err := s.commit(ctx, next); err != nil {
		return product.Product{}, err
	}
	s.log.Debug("added product", zap.String("sku", p.SKU), zap.String("type", string(p.Type)))
	return p, nil
}

// Update replaces every field of an existing product except CreatedAt
func (s *Store) Update(ctx context.Context, p product.Product) (product.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := checkStorable(p); err != nil {
		return product.Product{}, err
	}
	if err := s.ensureLoaded(ctx); err != nil {
		return product.Product{}, err
	}
	i, ok := s.index[p.SKU]
	if !ok {
		return product.Product{}, fmt.Errorf("%w: %s", ErrNotFound, p.SKU)
	}

	p.CreatedAt = s.products[i].CreatedAt

	next := make([]product.Product, len(s.products))
	copy(next, s.products)
	next[i] = p

	if err := s.commit(ctx, next); err != nil {
		return product.Product{}, err
	}
	s.log.Debug("updated product", zap.String("sku", p.SKU))
	return p, nil
}

// Delete removes all products whose SKU is listed. Unknown SKUs are ignored.
func (s *Store) Delete(ctx context.Context, skus ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}

	remove := product.NewSKUSet(skus...)
	next := make([]product.Product, 0, len(s.products))
	for _, p := range s.products {
		if !remove.Has(p.SKU) {
			next = append(next, p)
		}
	}

	if err := s.commit(ctx, next); err != nil {
		return err
	}
	s.log.Debug("deleted products", zap.Strings("skus", skus), zap.Int("removed", len(s.products)-len(next)))
	return nil
}

// Get looks up a product by SKU
func (s *Store) Get(sku string) (product.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[sku]
	if !ok {
		return product.Product{}, false
	}
	return s.products[i], true
}

// List returns all products in insertion order
func (s *Store) List() []product.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot()
}

// SKUs returns the set of stored SKUs
func (s *Store) SKUs() product.SKUSet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set := make(product.SKUSet, len(s.products))
	for _, p := range s.products {
		set[p.SKU] = struct{}{}
	}
	return set
}

// Len returns the number of stored products
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.products)
}

// checkStorable rejects what DecodeCollection would refuse on the next load
func checkStorable(p product.Product) error {
	if p.SKU == "" {
		return fmt.Errorf("%w: empty sku", ErrInvalidProduct)
	}
	if !p.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidProduct, p.Type)
	}
	return nil
}

// ensureLoaded retries a load that failed on a read error
func (s *Store) ensureLoaded(ctx context.Context) error {
	if s.loadErr == nil {
		return nil
	}
	if err := s.load(ctx); err != nil && s.loadErr != nil {
		return fmt.Errorf("%w: storage is not readable: %v", ErrSaveFailed, s.loadErr)
	}
	return nil
}

// commit persists next and only then makes it the current collection
func (s *Store) commit(ctx context.Context, next []product.Product) error {
	data, err := product.EncodeCollection(next)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	if err := s.backend.Write(ctx, s.key, data); err != nil {
		s.log.Error("failed to persist products", zap.String("key", s.key), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	s.set(next)
	return nil
}

func (s *Store) set(products []product.Product) {
	s.products = products
	s.index = make(map[string]int, len(products))
	for i, p := range products {
		s.index[p.SKU] = i
	}
}

func (s *Store) snapshot() []product.Product {
	out := make([]product.Product, len(s.products))
	copy(out, s.products)
	return out
}
