package cli

import (
	"sync"

	"github.com/ovenbird/keyed"
	"github.com/ovenbird/keyed/internal/catalog"
	"github.com/ovenbird/keyed/internal/config"
	"github.com/ovenbird/keyed/internal/notify"
)

// BuildContainer registers the shop's bindings. Repositories are singletons
// keyed "memory" and "sqlite"; notifiers are scoped, one per request, keyed
// "email" and "sms". The configuration decides which keys the handlers
// resolve, not what is registered.
func BuildContainer(cfg *config.Config) (*keyed.Container, error) {
	c := keyed.New()

	memory := catalog.NewMemoryRepository()
	if err := keyed.Register(c, "memory", func(s *keyed.Scope) (catalog.PieRepository, error) {
		return memory, nil
	}, keyed.LifetimeSingleton); err != nil {
		return nil, err
	}
	if err := keyed.Register(c, "memory", func(s *keyed.Scope) (catalog.CategoryRepository, error) {
		return memory, nil
	}, keyed.LifetimeSingleton); err != nil {
		return nil, err
	}

	// Both sqlite bindings share one lazily opened database handle. The
	// database is only opened if a sqlite binding is actually resolved.
	openSQLite := sync.OnceValues(func() (*catalog.SQLiteRepository, error) {
		return catalog.OpenSQLite(cfg.SQLitePath)
	})
	if err := keyed.Register(c, "sqlite", func(s *keyed.Scope) (catalog.PieRepository, error) {
		return openSQLite()
	}, keyed.LifetimeSingleton); err != nil {
		return nil, err
	}
	if err := keyed.Register(c, "sqlite", func(s *keyed.Scope) (catalog.CategoryRepository, error) {
		return openSQLite()
	}, keyed.LifetimeSingleton); err != nil {
		return nil, err
	}

	if err := keyed.Register(c, "email", func(s *keyed.Scope) (notify.Notifier, error) {
		return notify.NewEmailNotifier(), nil
	}, keyed.LifetimeScoped); err != nil {
		return nil, err
	}
	if err := keyed.Register(c, "sms", func(s *keyed.Scope) (notify.Notifier, error) {
		return notify.NewSMSNotifier(), nil
	}, keyed.LifetimeScoped); err != nil {
		return nil, err
	}

	return c, nil
}
