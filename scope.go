package keyed

import (
	"context"
	"reflect"
	"sync"
)

type scopedEntry struct {
	bindingKey string
	instance   any
}

// Scope is one logical unit of work, typically an incoming request. It owns
// the scoped instances created under it and releases them on Close. A scope
// must not be used after Close.
type Scope struct {
	container *Container
	ctx       context.Context

	mu       sync.Mutex
	closed   bool
	closeErr error
	// instances caches scoped instances by binding key; order records
	// creation order so Close can release in reverse.
	instances map[string]any
	order     []scopedEntry
	// locks holds per-key creation locks so that concurrent resolutions of
	// one (interface, key) construct a single instance.
	locks map[string]*sync.Mutex
}

// Context returns the context the scope was begun with.
func (s *Scope) Context() context.Context {
	return s.ctx
}

// Close releases all scoped instances created under the scope in reverse
// creation order, invoking the Releaser hook where exposed. All instances are
// released even if some hooks fail; the first failure is returned. Closing an
// already closed scope is a no-op that returns the original close error.
func (s *Scope) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		err := s.closeErr
		s.mu.Unlock()
		return err
	}
	s.closed = true
	toRelease := s.order
	s.order = nil
	s.instances = nil
	s.mu.Unlock()

	var firstErr error
	for i := len(toRelease) - 1; i >= 0; i-- {
		entry := toRelease[i]
		if err := release(ctx, entry.instance); err != nil && firstErr == nil {
			firstErr = &ReleaseError{Type: entry.bindingKey, Err: err}
		}
	}

	s.mu.Lock()
	s.closeErr = firstErr
	s.mu.Unlock()
	return firstErr
}

func (s *Scope) resolve(abstract reflect.Type, key string) (any, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, &ScopeClosedError{Type: abstract.String(), Key: key}
	}

	bk := bindingKey(abstract, key)
	b, ok := s.container.lookup(bk)
	if !ok {
		return nil, &BindingNotFoundError{Type: abstract.String(), Key: key}
	}

	if err := s.container.startResolving(bk); err != nil {
		return nil, err
	}
	defer s.container.finishResolving(bk)

	switch b.lifetime {
	case LifetimeSingleton:
		return s.container.singleton(s, b)
	case LifetimeScoped:
		return s.scoped(b, bk)
	default:
		return b.factory(s)
	}
}

// scoped returns the cached instance for (interface, key) in this scope,
// creating and caching it on first resolution. The per-key lock is held
// across the factory call; the scope mutex is not, so a factory may resolve
// other bindings from the same scope.
func (s *Scope) scoped(b *binding, bk string) (any, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, &ScopeClosedError{Type: b.abstract.String(), Key: b.key}
	}
	if instance, ok := s.instances[bk]; ok {
		s.mu.Unlock()
		return instance, nil
	}
	lock, ok := s.locks[bk]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[bk] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	defer lock.Unlock()

	// A concurrent resolver may have created the instance while we waited.
	s.mu.Lock()
	if instance, ok := s.instances[bk]; ok {
		s.mu.Unlock()
		return instance, nil
	}
	s.mu.Unlock()

	instance, err := b.factory(s)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		// The scope closed mid-creation; the instance never joined the
		// cache, so release it here.
		if rerr := release(context.Background(), instance); rerr != nil {
			return nil, &ReleaseError{Type: b.abstract.String(), Key: b.key, Err: rerr}
		}
		return nil, &ScopeClosedError{Type: b.abstract.String(), Key: b.key}
	}
	s.instances[bk] = instance
	s.order = append(s.order, scopedEntry{bindingKey: bk, instance: instance})
	s.mu.Unlock()

	return instance, nil
}
