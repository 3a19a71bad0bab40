package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovenbird/keyed"
	"github.com/ovenbird/keyed/internal/catalog"
	"github.com/ovenbird/keyed/internal/config"
	"github.com/ovenbird/keyed/internal/notify"
)

func TestBuildContainerResolvesConfiguredKeys(t *testing.T) {
	c, err := BuildContainer(config.Default())
	require.NoError(t, err)

	scope := c.BeginScope(context.Background())
	defer scope.Close(context.Background())

	pies, err := keyed.Resolve[catalog.PieRepository](scope, "memory")
	require.NoError(t, err)
	all, err := pies.Pies(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, all)

	categories, err := keyed.Resolve[catalog.CategoryRepository](scope, "memory")
	require.NoError(t, err)
	assert.NotNil(t, categories)

	email, err := keyed.Resolve[notify.Notifier](scope, "email")
	require.NoError(t, err)
	assert.IsType(t, &notify.EmailNotifier{}, email)

	sms, err := keyed.Resolve[notify.Notifier](scope, "sms")
	require.NoError(t, err)
	assert.IsType(t, &notify.SMSNotifier{}, sms)
}

func TestBuildContainerUnknownKey(t *testing.T) {
	c, err := BuildContainer(config.Default())
	require.NoError(t, err)

	scope := c.BeginScope(context.Background())
	defer scope.Close(context.Background())

	_, err = keyed.Resolve[catalog.PieRepository](scope, "postgres")
	var notFound *keyed.BindingNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestBuildContainerSQLiteIsLazy(t *testing.T) {
	cfg := config.Default()
	cfg.SQLitePath = "/nonexistent/dir/catalog.db"

	// Building must not open the database; only resolving "sqlite" would.
	c, err := BuildContainer(cfg)
	require.NoError(t, err)

	scope := c.BeginScope(context.Background())
	defer scope.Close(context.Background())

	_, err = keyed.Resolve[catalog.PieRepository](scope, "memory")
	assert.NoError(t, err)
}
