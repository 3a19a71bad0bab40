// Package keyed implements a keyed service registry with scoped lifetimes.
// Multiple implementations of one capability interface are registered under
// distinct keys and resolved explicitly by (interface, key).
package keyed

import (
	"context"
	"reflect"
	"sync"
)

// binding associates a (capability interface, key) pair with a factory and a
// lifetime policy. For singleton bindings it also carries the lazily created
// process-wide instance.
type binding struct {
	abstract reflect.Type
	key      string
	lifetime Lifetime
	factory  func(s *Scope) (any, error)

	// Singleton creation state. mu is held across the factory call so that
	// concurrent first resolutions construct exactly one instance.
	mu       sync.Mutex
	instance any
	created  bool
}

// Container holds the registry of bindings. Bindings are added at startup and
// become immutable once the first scope is begun; after that point resolution
// reads the registry without locking.
type Container struct {
	mu       sync.RWMutex
	bindings map[string]*binding
	sealed   bool

	// Singletons in creation order, released in reverse on Close.
	createdMu    sync.Mutex
	createdOrder []*binding

	resolvingMu sync.Mutex
	resolving   map[int64]*resolutionChain
}

var typeStringCache sync.Map

func bindingKey(abstract reflect.Type, key string) string {
	if cached, ok := typeStringCache.Load(abstract); ok {
		return cached.(string) + ":" + key
	}
	typeStr := abstract.String()
	typeStringCache.Store(abstract, typeStr)
	return typeStr + ":" + key
}

// New creates an empty container.
func New() *Container {
	return &Container{
		bindings:  make(map[string]*binding, 32),
		resolving: make(map[int64]*resolutionChain),
	}
}

// Register adds a binding for the capability interface T under the given key.
// Registering the same (interface, key) pair twice fails with
// DuplicateBindingError; bindings are rejected, never overwritten.
// Returns SealedError after the first scope has been begun.
func Register[T any](c *Container, key string, factory Factory[T], lifetime Lifetime) error {
	abstract := reflect.TypeFor[T]()
	if factory == nil {
		return &NilFactoryError{Type: abstract.String(), Key: key}
	}
	wrapped := func(s *Scope) (any, error) {
		return factory(s)
	}
	return c.register(abstract, key, wrapped, lifetime)
}

// MustRegister is Register that panics on error. Intended for startup wiring
// where a registration failure is a programming error.
func MustRegister[T any](c *Container, key string, factory Factory[T], lifetime Lifetime) {
	if err := Register(c, key, factory, lifetime); err != nil {
		panic(err)
	}
}

func (c *Container) register(abstract reflect.Type, key string, factory func(s *Scope) (any, error), lifetime Lifetime) error {
	switch lifetime {
	case LifetimeSingleton, LifetimeScoped, LifetimeTransient:
	default:
		return &InvalidLifetimeError{Type: abstract.String(), Key: key, Lifetime: string(lifetime)}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sealed {
		return &SealedError{Type: abstract.String(), Key: key}
	}

	bk := bindingKey(abstract, key)
	if _, exists := c.bindings[bk]; exists {
		return &DuplicateBindingError{Type: abstract.String(), Key: key}
	}
	c.bindings[bk] = &binding{
		abstract: abstract,
		key:      key,
		lifetime: lifetime,
		factory:  factory,
	}
	return nil
}

// BeginScope starts a new logical unit of work. The first call seals the
// container against further registration. Scopes never nest; every unit of
// work begins its own scope explicitly.
func (c *Container) BeginScope(ctx context.Context) *Scope {
	if ctx == nil {
		ctx = context.Background()
	}
	c.mu.Lock()
	c.sealed = true
	c.mu.Unlock()

	return &Scope{
		container: c,
		ctx:       ctx,
		instances: make(map[string]any, 8),
		locks:     make(map[string]*sync.Mutex, 8),
	}
}

// Close releases all singleton instances created so far, in reverse creation
// order, invoking the Releaser hook on instances that expose one. Released
// bindings are reset, so a later resolution would construct a fresh instance.
func (c *Container) Close(ctx context.Context) error {
	c.createdMu.Lock()
	toRelease := c.createdOrder
	c.createdOrder = nil
	c.createdMu.Unlock()

	var firstErr error
	for i := len(toRelease) - 1; i >= 0; i-- {
		b := toRelease[i]
		b.mu.Lock()
		instance := b.instance
		b.instance = nil
		b.created = false
		b.mu.Unlock()

		if err := release(ctx, instance); err != nil && firstErr == nil {
			firstErr = &ReleaseError{Type: b.abstract.String(), Key: b.key, Err: err}
		}
	}
	return firstErr
}

func (c *Container) lookup(bk string) (*binding, bool) {
	c.mu.RLock()
	b, ok := c.bindings[bk]
	c.mu.RUnlock()
	return b, ok
}

// singleton returns the one process-wide instance for b, creating it on first
// resolution. The binding mutex is held across the factory call; a concurrent
// resolver blocks and then observes the created instance. A factory failure is
// not cached, so a later resolution retries.
func (c *Container) singleton(s *Scope, b *binding) (any, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.created {
		return b.instance, nil
	}
	instance, err := b.factory(s)
	if err != nil {
		return nil, err
	}
	b.instance = instance
	b.created = true

	c.createdMu.Lock()
	c.createdOrder = append(c.createdOrder, b)
	c.createdMu.Unlock()

	return instance, nil
}

func release(ctx context.Context, instance any) error {
	if r, ok := instance.(Releaser); ok {
		return r.Release(ctx)
	}
	return nil
}
