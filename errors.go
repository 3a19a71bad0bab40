package keyed

import "fmt"

// DuplicateBindingError reports registration of an already bound
// (interface, key) pair.
type DuplicateBindingError struct {
	Type string
	Key  string
}

func (e *DuplicateBindingError) Error() string {
	return fmt.Sprintf("binding already registered for %s with key %q", e.Type, e.Key)
}

// BindingNotFoundError reports resolution of an unregistered
// (interface, key) pair.
type BindingNotFoundError struct {
	Type string
	Key  string
}

func (e *BindingNotFoundError) Error() string {
	return fmt.Sprintf("no binding found for %s with key %q", e.Type, e.Key)
}

// NilFactoryError reports registration with a nil factory.
type NilFactoryError struct {
	Type string
	Key  string
}

func (e *NilFactoryError) Error() string {
	return fmt.Sprintf("nil factory provided for %s with key %q", e.Type, e.Key)
}

// SealedError reports registration after the container was sealed by its
// first scope.
type SealedError struct {
	Type string
	Key  string
}

func (e *SealedError) Error() string {
	return fmt.Sprintf("container is sealed, cannot register %s with key %q", e.Type, e.Key)
}

// ScopeClosedError reports resolution against a closed scope.
type ScopeClosedError struct {
	Type string
	Key  string
}

func (e *ScopeClosedError) Error() string {
	return fmt.Sprintf("scope is closed, cannot resolve %s with key %q", e.Type, e.Key)
}

// CircularDependencyError reports a factory that transitively resolves its
// own binding.
type CircularDependencyError struct {
	Chain string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency detected: %s", e.Chain)
}

// InvalidLifetimeError reports registration with an unknown lifetime.
type InvalidLifetimeError struct {
	Type     string
	Key      string
	Lifetime string
}

func (e *InvalidLifetimeError) Error() string {
	return fmt.Sprintf("invalid lifetime %q for %s with key %q", e.Lifetime, e.Type, e.Key)
}

// ReleaseError reports a failed Releaser hook during scope or container
// close.
type ReleaseError struct {
	Type string
	Key  string
	Err  error
}

func (e *ReleaseError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("release failed for %s with key %q: %v", e.Type, e.Key, e.Err)
	}
	return fmt.Sprintf("release failed for %s: %v", e.Type, e.Err)
}

func (e *ReleaseError) Unwrap() error {
	return e.Err
}
