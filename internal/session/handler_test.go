package session

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/2beens/healthtracker/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestRouter(t *testing.T) (*mux.Router, *MockstateStore, *MockpersonsLister) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := NewMockstateStore(ctrl)
	persons := NewMockpersonsLister(ctrl)
	r := mux.NewRouter()
	NewHandler(store, persons).SetupRoutes(r)
	return r, store, persons
}

func TestHandler_Get(t *testing.T) {
	r, store, _ := newTestRouter(t)

	state := State{}.Login("tok", "ana").SelectPerson("Bia").SetPendingPlan("treino A")
	store.EXPECT().GetOrNew(gomock.Any(), "tok").Return(state, nil)

	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req.Header.Set(middleware.AuthTokenHeader, "tok")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"username": "ana",
		"selected_person": "Bia",
		"features": ["individual", "ranking", "hub", "assistant", "nutri_vision"],
		"messages": [],
		"has_pending_plan": true
	}`, rr.Body.String())
}

func TestHandler_Get_StoreError(t *testing.T) {
	r, store, _ := newTestRouter(t)
	store.EXPECT().GetOrNew(gomock.Any(), "tok").Return(State{}, errors.New("redis down"))

	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req.Header.Set(middleware.AuthTokenHeader, "tok")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestHandler_SelectPerson(t *testing.T) {
	testCases := []struct {
		name           string
		body           string
		expectLookup   bool
		expectSave     bool
		expectedStatus int
	}{
		{name: "bad json", body: `{`, expectedStatus: http.StatusBadRequest},
		{name: "empty person", body: `{"person":""}`, expectedStatus: http.StatusBadRequest},
		{name: "unknown person", body: `{"person":"Zed"}`, expectLookup: true, expectedStatus: http.StatusNotFound},
		{name: "ok", body: `{"person":"Bia"}`, expectLookup: true, expectSave: true, expectedStatus: http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, store, persons := newTestRouter(t)
			if tc.expectLookup {
				persons.EXPECT().Persons().Return([]string{"Ana", "Bia"})
			}
			if tc.expectSave {
				state := State{}.Login("tok", "ana")
				store.EXPECT().GetOrNew(gomock.Any(), "tok").Return(state, nil)
				store.EXPECT().Save(gomock.Any(), state.SelectPerson("Bia")).Return(nil)
			}

			req := httptest.NewRequest(http.MethodPost, "/session/person", strings.NewReader(tc.body))
			req.Header.Set(middleware.AuthTokenHeader, "tok")
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)
			require.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectSave {
				var view View
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
				assert.Equal(t, "Bia", view.SelectedPerson)
			}
		})
	}
}
