package profile

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/tank-man-api/internal/storage"
	"github.com/aanand-mishra/tank-man-api/internal/storage/mocks"
	"github.com/aanand-mishra/tank-man-api/internal/types"
	"github.com/aanand-mishra/tank-man-api/internal/utils/response"
)

func TestNew(t *testing.T) {
	store := new(mocks.MockStorage)
	store.On("CreateProfile", mock.Anything, mock.MatchedBy(func(p types.Profile) bool {
		return p.ID != nil && *p.Username == "ada" && p.Role == nil
	})).Return(nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/profile", strings.NewReader(`{"username":"ada","id":"client-id"}`))
	New(store)(w, r)

	require.Equal(t, http.StatusCreated, w.Code)

	var got types.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.NotNil(t, got.ID)
	assert.NotEqual(t, "client-id", *got.ID)
	_, err := uuid.Parse(*got.ID)
	assert.NoError(t, err)
	assert.Equal(t, "ada", *got.Username)

	// absent fields are serialized as null
	assert.Contains(t, w.Body.String(), `"role":null`)
	store.AssertExpectations(t)
}

func TestNew_EmptyBody(t *testing.T) {
	store := new(mocks.MockStorage)
	store.On("CreateProfile", mock.Anything, mock.Anything).Return(nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/profile", nil)
	New(store)(w, r)

	assert.Equal(t, http.StatusCreated, w.Code)
	store.AssertExpectations(t)
}

func TestNew_BadBody(t *testing.T) {
	store := new(mocks.MockStorage)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/profile", strings.NewReader(`{"username":42}`))
	New(store)(w, r)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	store.AssertNotCalled(t, "CreateProfile", mock.Anything, mock.Anything)
}

func TestNew_StoreError(t *testing.T) {
	store := new(mocks.MockStorage)
	store.On("CreateProfile", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/profile", strings.NewReader(`{}`))
	New(store)(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, response.InternalError, body.Detail)
}

func TestGet(t *testing.T) {
	stored := types.Profile{
		ID:       types.String(uuid.NewString()),
		Username: types.String("ada"),
		Role:     types.String("owner"),
		Color:    types.String("teal"),
	}
	store := new(mocks.MockStorage)
	store.On("GetProfile", mock.Anything).Return(stored, nil)

	w := httptest.NewRecorder()
	Get(store)(w, httptest.NewRequest(http.MethodGet, "/profile", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var got types.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, stored, got)
}

func TestGet_NotFound(t *testing.T) {
	store := new(mocks.MockStorage)
	store.On("GetProfile", mock.Anything).Return(types.Profile{}, storage.ErrNotFound)

	w := httptest.NewRecorder()
	Get(store)(w, httptest.NewRequest(http.MethodGet, "/profile", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Profile not found"}`, w.Body.String())
}
