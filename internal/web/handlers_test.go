package web_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovenbird/keyed"
	"github.com/ovenbird/keyed/internal/catalog"
	"github.com/ovenbird/keyed/internal/config"
	"github.com/ovenbird/keyed/internal/notify"
	"github.com/ovenbird/keyed/internal/web"
)

func newTestServer(t *testing.T) *web.Server {
	t.Helper()

	c := keyed.New()
	memory := catalog.NewMemoryRepository()
	keyed.MustRegister(c, "memory", func(s *keyed.Scope) (catalog.PieRepository, error) {
		return memory, nil
	}, keyed.LifetimeSingleton)
	keyed.MustRegister(c, "memory", func(s *keyed.Scope) (catalog.CategoryRepository, error) {
		return memory, nil
	}, keyed.LifetimeSingleton)
	keyed.MustRegister(c, "email", func(s *keyed.Scope) (notify.Notifier, error) {
		return notify.NewEmailNotifier(), nil
	}, keyed.LifetimeScoped)
	keyed.MustRegister(c, "sms", func(s *keyed.Scope) (notify.Notifier, error) {
		return notify.NewSMSNotifier(), nil
	}, keyed.LifetimeScoped)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return web.New(c, config.Default(), logger)
}

func get(t *testing.T, server *web.Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestPiesOfTheWeekGolden(t *testing.T) {
	server := newTestServer(t)

	rec := get(t, server, "/pies/of-the-week")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "pies_of_the_week", rec.Body.Bytes())
}

func TestCategoriesGolden(t *testing.T) {
	server := newTestServer(t)

	rec := get(t, server, "/categories")
	require.Equal(t, http.StatusOK, rec.Code)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "categories", rec.Body.Bytes())
}

func TestListPies(t *testing.T) {
	server := newTestServer(t)

	rec := get(t, server, "/pies")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Pies []catalog.Pie `json:"pies"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Pies, 11)
}

func TestPieByID(t *testing.T) {
	server := newTestServer(t)

	rec := get(t, server, "/pies/4")
	require.Equal(t, http.StatusOK, rec.Code)

	var pie catalog.Pie
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pie))
	assert.Equal(t, "Cherry Pie", pie.Name)
}

func TestPieByIDNotFound(t *testing.T) {
	server := newTestServer(t)
	assert.Equal(t, http.StatusNotFound, get(t, server, "/pies/999").Code)
}

func TestPieByIDInvalid(t *testing.T) {
	server := newTestServer(t)
	assert.Equal(t, http.StatusBadRequest, get(t, server, "/pies/apple").Code)
}

func postOrder(t *testing.T, server *web.Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	server.ServeHTTP(rec, req)
	return rec
}

func TestPlaceOrder(t *testing.T) {
	server := newTestServer(t)

	rec := postOrder(t, server, `{"customer": "bethany@example.com", "pie_id": 1}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		OrderID      string      `json:"order_id"`
		Pie          catalog.Pie `json:"pie"`
		Confirmation string      `json:"confirmation"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.OrderID)
	assert.Equal(t, "Apple Pie", body.Pie.Name)
	assert.Contains(t, body.Confirmation, "emailed")
	assert.NotEmpty(t, rec.Header().Get(keyed.RequestIDHeader))
}

func TestPlaceOrderOutOfStock(t *testing.T) {
	server := newTestServer(t)

	// Peach Pie is seeded out of stock.
	rec := postOrder(t, server, `{"customer": "bethany@example.com", "pie_id": 7}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestPlaceOrderUnknownPie(t *testing.T) {
	server := newTestServer(t)
	rec := postOrder(t, server, `{"customer": "bethany@example.com", "pie_id": 999}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPlaceOrderMissingCustomer(t *testing.T) {
	server := newTestServer(t)
	rec := postOrder(t, server, `{"pie_id": 1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
