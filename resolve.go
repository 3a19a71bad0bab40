package keyed

import (
	"reflect"
	"strings"
)

// Resolve returns the implementation of T bound under key, honoring the
// binding's lifetime. Returns BindingNotFoundError if the (interface, key)
// pair was never registered and ScopeClosedError if the scope is closed.
// Factory errors propagate unchanged.
func Resolve[T any](s *Scope, key string) (T, error) {
	var zero T
	abstract := reflect.TypeFor[T]()
	instance, err := s.resolve(abstract, key)
	if err != nil {
		return zero, err
	}
	return instance.(T), nil
}

// TryResolve is the non-failing variant of Resolve: a missing binding yields
// the zero value and false instead of an error. Factory and scope errors
// still propagate.
func TryResolve[T any](s *Scope, key string) (T, bool, error) {
	var zero T
	abstract := reflect.TypeFor[T]()
	if _, ok := s.container.lookup(bindingKey(abstract, key)); !ok {
		return zero, false, nil
	}
	instance, err := s.resolve(abstract, key)
	if err != nil {
		return zero, false, err
	}
	return instance.(T), true, nil
}

// MustResolve is Resolve that panics on error.
func MustResolve[T any](s *Scope, key string) T {
	instance, err := Resolve[T](s, key)
	if err != nil {
		panic(err)
	}
	return instance
}

// resolutionChain tracks the bindings a single goroutine is currently
// resolving, so a factory that transitively resolves its own binding fails
// with CircularDependencyError instead of deadlocking.
type resolutionChain struct {
	active map[string]bool
	order  []string
}

func (c *Container) startResolving(bk string) error {
	id := goid()

	c.resolvingMu.Lock()
	defer c.resolvingMu.Unlock()

	chain, ok := c.resolving[id]
	if !ok {
		chain = &resolutionChain{active: make(map[string]bool, 4)}
		c.resolving[id] = chain
	}
	if chain.active[bk] {
		return &CircularDependencyError{Chain: strings.Join(append(chain.order, bk), " -> ")}
	}
	chain.active[bk] = true
	chain.order = append(chain.order, bk)
	return nil
}

func (c *Container) finishResolving(bk string) {
	id := goid()

	c.resolvingMu.Lock()
	defer c.resolvingMu.Unlock()

	chain, ok := c.resolving[id]
	if !ok {
		return
	}
	delete(chain.active, bk)
	if len(chain.order) > 0 {
		chain.order = chain.order[:len(chain.order)-1]
	}
	if len(chain.active) == 0 {
		delete(c.resolving, id)
	}
}
