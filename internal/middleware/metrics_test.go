package middleware_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitbill/internal/middleware"
	"github.com/mmynk/splitbill/internal/service"
	"github.com/mmynk/splitbill/internal/storage/sqlite"
)

func setupGroupServer(t *testing.T, m *middleware.Metrics) *service.GroupServiceClient {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.Handle(service.NewGroupServiceHandler(
		service.NewGroupService(store),
		connect.WithInterceptors(middleware.LoggingInterceptor(), m.Interceptor()),
	))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return service.NewGroupServiceClient(http.DefaultClient, server.URL)
}

func TestMetricsInterceptor(t *testing.T) {
	m := middleware.NewMetrics("splitbill")
	client := setupGroupServer(t, m)
	ctx := context.Background()

	_, err := client.CreateGroup(ctx, connect.NewRequest(&service.CreateGroupRequest{Name: "Trip"}))
	require.NoError(t, err)
	_, err = client.CreateGroup(ctx, connect.NewRequest(&service.CreateGroupRequest{Name: "Flat"}))
	require.NoError(t, err)
	_, err = client.GetGroup(ctx, connect.NewRequest(&service.GetGroupRequest{GroupID: "missing"}))
	require.Error(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(
		m.Requests.WithLabelValues(service.GroupServiceCreateGroupProcedure, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.Requests.WithLabelValues(service.GroupServiceGetGroupProcedure, connect.CodeNotFound.String())))
	assert.Equal(t, 2, testutil.CollectAndCount(m.Duration))
}

func TestMetricsHandler(t *testing.T) {
	m := middleware.NewMetrics("splitbill")
	client := setupGroupServer(t, m)

	_, err := client.ListGroups(context.Background(), connect.NewRequest(&service.ListGroupsRequest{}))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `splitbill_rpc_requests_total{code="ok",procedure="/splitbill.v1.GroupService/ListGroups"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestObserveSettlement(t *testing.T) {
	m := middleware.NewMetrics("splitbill")

	m.ObserveSettlement(3, 0)
	m.ObserveSettlement(0, 2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Settlements))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SkippedExpenses))
	assert.Equal(t, 1, testutil.CollectAndCount(m.SettlementSize))
}
