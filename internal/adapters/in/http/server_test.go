package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	httpin "agenthub/internal/adapters/in/http"
	"agenthub/internal/adapters/out/memstore"
	"agenthub/internal/adapters/out/routeboard"
	"agenthub/internal/core/application/usecases/commands"
	"agenthub/internal/core/application/usecases/queries"
	"agenthub/internal/core/domain/events"
	"agenthub/internal/core/domain/model/kernel"
	"agenthub/internal/core/domain/model/order"
	"agenthub/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBackend struct {
	acceptErr error
	rejectErr error
}

func (s stubBackend) FetchHistory(context.Context) ([]*order.Order, error) { return nil, nil }
func (s stubBackend) AcceptOrder(context.Context, kernel.UUID) error       { return s.acceptErr }
func (s stubBackend) RejectOrder(context.Context, kernel.UUID) error       { return s.rejectErr }

type stubLocations struct {
	location kernel.Location
	err      error
}

func (s stubLocations) Acquire(context.Context) (kernel.Location, error) {
	return s.location, s.err
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, events.Event) error { return nil }

type fixture struct {
	echo  *echo.Echo
	store *memstore.Store
	board *routeboard.Board
}

func newFixture(t *testing.T, backend stubBackend, locations stubLocations) fixture {
	t.Helper()

	store := memstore.NewStore()
	board := routeboard.NewBoard()
	actions := commands.NewActionGuard()

	server := httpin.NewServer(
		commands.NewAcceptOrderCommandHandler(backend, store, locations, board, nopPublisher{}, actions),
		commands.NewRejectOrderCommandHandler(backend, store, nopPublisher{}, actions),
		queries.NewGetAssignedOrdersQueryHandler(store),
		queries.NewGetActiveRouteQueryHandler(board),
		board,
	)

	e := echo.New()
	server.RegisterRoutes(e)
	return fixture{echo: e, store: store, board: board}
}

func (f fixture) seed(t *testing.T) *order.Order {
	t.Helper()
	destination, err := kernel.NewLocation(12.95, 77.65)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), "Asha", "12 MG Road", destination, 420)
	require.NoError(t, err)
	inserted, err := f.store.Ingest(t.Context(), o)
	require.NoError(t, err)
	require.True(t, inserted)
	return o
}

func (f fixture) do(method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func goodPosition(t *testing.T) stubLocations {
	t.Helper()
	location, err := kernel.NewLocation(12.9, 77.6)
	require.NoError(t, err)
	return stubLocations{location: location}
}

func TestServer_Health(t *testing.T) {
	f := newFixture(t, stubBackend{}, goodPosition(t))

	rec := f.do(http.MethodGet, "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_GetOrders(t *testing.T) {
	f := newFixture(t, stubBackend{}, goodPosition(t))
	o := f.seed(t)

	rec := f.do(http.MethodGet, "/api/v1/orders")

	require.Equal(t, http.StatusOK, rec.Code)
	var response []httpin.OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response, 1)
	assert.Equal(t, o.ID().String(), response[0].ID)
	assert.Equal(t, "Asha", response[0].CustomerName)
	assert.Equal(t, "Assigned", response[0].Status)
	assert.InEpsilon(t, 12.95, response[0].Destination.Lat, 1e-9)
}

func TestServer_AcceptOrder_PublishesRoute(t *testing.T) {
	f := newFixture(t, stubBackend{}, goodPosition(t))
	o := f.seed(t)

	rec := f.do(http.MethodPost, "/api/v1/orders/"+o.ID().String()+"/accept")

	require.Equal(t, http.StatusOK, rec.Code)
	var response httpin.AcceptResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Accepted)
	assert.True(t, response.RouteAvailable)

	routeRec := f.do(http.MethodGet, "/api/v1/route")
	require.Equal(t, http.StatusOK, routeRec.Code)
	var routeResponse httpin.RouteResponse
	require.NoError(t, json.Unmarshal(routeRec.Body.Bytes(), &routeResponse))
	assert.InEpsilon(t, 12.9, routeResponse.Start.Lat, 1e-9)
	assert.InEpsilon(t, 77.65, routeResponse.End.Lon, 1e-9)
}

func TestServer_AcceptOrder_LocationUnavailable(t *testing.T) {
	f := newFixture(t, stubBackend{}, stubLocations{err: ports.ErrLocationUnavailable})
	o := f.seed(t)

	rec := f.do(http.MethodPost, "/api/v1/orders/"+o.ID().String()+"/accept")

	require.Equal(t, http.StatusOK, rec.Code)
	var response httpin.AcceptResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Accepted, "a position failure never rolls back the accept")
	assert.False(t, response.RouteAvailable)
	assert.NotEmpty(t, response.Notice)

	stored, err := f.store.Get(t.Context(), o.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Accepted, stored.Status())

	routeRec := f.do(http.MethodGet, "/api/v1/route")
	assert.Equal(t, http.StatusNotFound, routeRec.Code)
}

func TestServer_AcceptOrder_SecondAcceptConflicts(t *testing.T) {
	f := newFixture(t, stubBackend{}, goodPosition(t))
	o := f.seed(t)

	first := f.do(http.MethodPost, "/api/v1/orders/"+o.ID().String()+"/accept")
	require.Equal(t, http.StatusOK, first.Code)

	second := f.do(http.MethodPost, "/api/v1/orders/"+o.ID().String()+"/accept")
	assert.Equal(t, http.StatusConflict, second.Code)
}

func TestServer_AcceptOrder_BackendFailure(t *testing.T) {
	f := newFixture(t, stubBackend{acceptErr: ports.ErrBackendRejected}, goodPosition(t))
	o := f.seed(t)

	rec := f.do(http.MethodPost, "/api/v1/orders/"+o.ID().String()+"/accept")

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	stored, err := f.store.Get(t.Context(), o.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Assigned, stored.Status(), "a failed accept leaves the order unchanged")
}

func TestServer_AcceptOrder_UnknownOrder(t *testing.T) {
	f := newFixture(t, stubBackend{}, goodPosition(t))

	rec := f.do(http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/accept")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_AcceptOrder_InvalidID(t *testing.T) {
	f := newFixture(t, stubBackend{}, goodPosition(t))

	rec := f.do(http.MethodPost, "/api/v1/orders/not-a-uuid/accept")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_RejectOrder_RemovesFromList(t *testing.T) {
	f := newFixture(t, stubBackend{}, goodPosition(t))
	o := f.seed(t)

	rec := f.do(http.MethodPost, "/api/v1/orders/"+o.ID().String()+"/reject")

	require.Equal(t, http.StatusOK, rec.Code)

	listRec := f.do(http.MethodGet, "/api/v1/orders")
	var response []httpin.OrderResponse
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &response))
	assert.Empty(t, response)

	// The order is gone, so a duplicate reject reports not found.
	again := f.do(http.MethodPost, "/api/v1/orders/"+o.ID().String()+"/reject")
	assert.Equal(t, http.StatusNotFound, again.Code)
}

func TestServer_RejectOrder_BackendFailureKeepsOrder(t *testing.T) {
	f := newFixture(t, stubBackend{rejectErr: ports.ErrNetworkFailure}, goodPosition(t))
	o := f.seed(t)

	rec := f.do(http.MethodPost, "/api/v1/orders/"+o.ID().String()+"/reject")

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	_, err := f.store.Get(t.Context(), o.ID())
	assert.NoError(t, err)
}

func TestServer_GetRoute_NoneActive(t *testing.T) {
	f := newFixture(t, stubBackend{}, goodPosition(t))

	rec := f.do(http.MethodGet, "/api/v1/route")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_CloseRoute(t *testing.T) {
	f := newFixture(t, stubBackend{}, goodPosition(t))
	o := f.seed(t)

	require.Equal(t, http.StatusOK, f.do(http.MethodPost, "/api/v1/orders/"+o.ID().String()+"/accept").Code)
	require.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/v1/route").Code)

	rec := f.do(http.MethodDelete, "/api/v1/route")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	after := f.do(http.MethodGet, "/api/v1/route")
	assert.Equal(t, http.StatusNotFound, after.Code)
}
