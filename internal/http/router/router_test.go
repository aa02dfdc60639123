package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/tank-man-api/internal/storage/mocks"
	"github.com/aanand-mishra/tank-man-api/internal/storage/sqlite"
	"github.com/aanand-mishra/tank-man-api/internal/types"
)

// newServer runs the full router on a fresh SQLite store.
func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "tank_man.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	srv := httptest.NewServer(New(store, prometheus.NewRegistry()))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out bytes.Buffer
	_, err = out.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, out.Bytes()
}

func TestProfileFlow(t *testing.T) {
	srv := newServer(t)

	resp, _ := do(t, srv, http.MethodGet, "/profile", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	in := types.Profile{Username: types.String("ada"), Color: types.String("teal")}
	resp, body := do(t, srv, http.MethodPost, "/profile", in)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created types.Profile
	require.NoError(t, json.Unmarshal(body, &created))
	require.NotNil(t, created.ID)
	assert.NotEmpty(t, *created.ID)

	resp, body = do(t, srv, http.MethodGet, "/profile", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got types.Profile
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, created, got)
	assert.Nil(t, got.Role)
}

func TestTankFlow(t *testing.T) {
	srv := newServer(t)

	resp, body := do(t, srv, http.MethodGet, "/tank", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))

	inputs := []types.Tank{
		{Location: types.String("roof"), Lat: types.Float(52.52), Long: types.Float(13.405)},
		{Location: types.String("cellar")},
		{},
	}

	var created []types.Tank
	for _, in := range inputs {
		resp, body := do(t, srv, http.MethodPost, "/tank", in)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var tank types.Tank
		require.NoError(t, json.Unmarshal(body, &tank))
		require.NotNil(t, tank.ID)
		assert.NotEmpty(t, *tank.ID)

		in.ID = tank.ID
		assert.Equal(t, in, tank)
		created = append(created, tank)
	}

	resp, body = do(t, srv, http.MethodGet, "/tank", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []types.Tank
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Equal(t, created, list)

	// update the first tank
	id := *created[0].ID
	update := types.Tank{Location: types.String("garden"), Lat: types.Float(1), Long: types.Float(2)}
	resp, body = do(t, srv, http.MethodPatch, "/tank/"+id, update)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated types.Tank
	require.NoError(t, json.Unmarshal(body, &updated))
	update.ID = types.String(id)
	assert.Equal(t, update, updated)

	resp, body = do(t, srv, http.MethodGet, "/tank", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Equal(t, update, list[0])

	// delete it, twice
	resp, body = do(t, srv, http.MethodDelete, "/tank/"+id, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, body)

	resp, _ = do(t, srv, http.MethodDelete, "/tank/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = do(t, srv, http.MethodGet, "/tank", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list, 2)
	for _, tank := range list {
		assert.NotEqual(t, id, *tank.ID)
	}
}

func TestUpdateTank_Missing(t *testing.T) {
	srv := newServer(t)

	resp, _ := do(t, srv, http.MethodPatch, "/tank/000000000000000000000000", types.Tank{})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodPatch, "/tank/not-an-id", types.Tank{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	srv := newServer(t)

	resp, body := do(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestHealth_StoreDown(t *testing.T) {
	store := new(mocks.MockStorage)
	store.On("Ping", mock.Anything).Return(errors.New("no reachable servers"))

	w := httptest.NewRecorder()
	New(store, prometheus.NewRegistry()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMetrics(t *testing.T) {
	srv := newServer(t)

	do(t, srv, http.MethodGet, "/tank", nil)
	do(t, srv, http.MethodDelete, "/tank/000000000000000000000000", nil)

	resp, body := do(t, srv, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `tankman_http_requests_total{code="200",method="GET",route="GET /tank"} 1`)
	assert.Contains(t, string(body), `tankman_http_requests_total{code="404",method="DELETE",route="DELETE /tank/{id}"} 1`)
}
