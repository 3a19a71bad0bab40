package keyed

import "context"

// Lifetime defines how long a resolved instance is reused.
type Lifetime string

const (
	// LifetimeSingleton shares one instance across the whole process.
	LifetimeSingleton Lifetime = "singleton"
	// LifetimeScoped shares one instance per scope.
	LifetimeScoped Lifetime = "scoped"
	// LifetimeTransient creates a new instance on every resolution.
	LifetimeTransient Lifetime = "transient"
)

// Factory constructs an instance of the capability T. It receives the
// resolving scope so it can resolve its own dependencies explicitly.
type Factory[T any] func(s *Scope) (T, error)

// Releaser is the optional cleanup hook. Scoped instances implementing it are
// released when their scope closes; singletons when the container closes.
type Releaser interface {
	Release(ctx context.Context) error
}
