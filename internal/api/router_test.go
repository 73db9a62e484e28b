package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"parking_tracker/internal/api/handler"
	"parking_tracker/internal/domain"
	"parking_tracker/internal/repository/memory"
	"parking_tracker/internal/service"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router *gin.Engine
	notes  *service.NotificationService
	ws     *handler.WebSocketManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	floors := []string{"B1", "B2"}
	spotRepo, err := memory.NewSpotRepository(service.GenerateSpots(floors, 6, 3))
	require.NoError(t, err)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	ws := handler.NewWebSocketManager()
	go ws.Start(ctx)

	notes := service.NewNotificationService(memory.NewNotificationRepository())
	notes.Subscribe(ws)
	ps := service.NewParkingService(spotRepo, memory.NewHistoryRepository(), notes,
		service.NewFareCalculator(50, 20), node, floors, "Nrs.")

	return &testServer{router: SetupRouter(ps, notes, ws), notes: notes, ws: ws}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestRouter_FloorsAndSpots(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/floors", "")
	require.Equal(t, http.StatusOK, w.Code)
	floors := decode[struct {
		Floors    []string              `json:"floors"`
		Summaries []domain.FloorSummary `json:"summaries"`
	}](t, w)
	assert.Equal(t, []string{"B1", "B2"}, floors.Floors)
	require.Len(t, floors.Summaries, 2)
	assert.Equal(t, 6, floors.Summaries[0].Available)

	w = s.do(t, http.MethodGet, "/api/v1/floors/B2/spots", "")
	require.Equal(t, http.StatusOK, w.Code)
	spots := decode[[]domain.Spot](t, w)
	require.Len(t, spots, 6)
	assert.Equal(t, "B2-01", spots[0].ID)
	assert.Equal(t, domain.VehicleBike, spots[2].Type)

	w = s.do(t, http.MethodGet, "/api/v1/spots", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.Spot](t, w), 12)

	w = s.do(t, http.MethodGet, "/api/v1/spots/Z9-01", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_OccupyAndVacate(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/spots/B1-01/occupy", `{"license_plate":"BA-2-PA-1234"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decode[domain.TransitionResult](t, w)
	assert.Equal(t, domain.OutcomeApplied, result.Outcome)
	require.NotNil(t, result.Spot)
	assert.Equal(t, domain.SpotOccupied, result.Spot.Status)

	w = s.do(t, http.MethodPost, "/api/v1/spots/B1-01/occupy", `{"license_plate":"OTHER"}`)
	require.Equal(t, http.StatusConflict, w.Code)
	conflict := decode[domain.TransitionResult](t, w)
	assert.Equal(t, domain.OutcomeNoop, conflict.Outcome)
	require.NotNil(t, conflict.Spot)
	assert.Equal(t, "BA-2-PA-1234", conflict.Spot.Occupant.LicensePlate)

	w = s.do(t, http.MethodPost, "/api/v1/spots/B1-01/vacate", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	vacated := decode[domain.TransitionResult](t, w)
	require.NotNil(t, vacated.Record)
	assert.Equal(t, int64(50), vacated.Record.Fare)
	assert.Equal(t, domain.SpotAvailable, vacated.Spot.Status)

	w = s.do(t, http.MethodPost, "/api/v1/spots/B1-01/vacate", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/history?vehicle_type=car", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.HistoryRecord](t, w), 1)

	w = s.do(t, http.MethodGet, "/api/v1/statistics", "")
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[domain.Statistics](t, w)
	assert.Equal(t, int64(50), stats.Revenue)
	assert.Equal(t, 1, stats.CarCount)
}

func TestRouter_BadRequests(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"missing body", http.MethodPost, "/api/v1/spots/B1-01/occupy", `{}`, http.StatusBadRequest},
		{"malformed json", http.MethodPost, "/api/v1/spots/B1-01/occupy", `{"license_plate":`, http.StatusBadRequest},
		{"unknown vehicle type", http.MethodPost, "/api/v1/spots/B1-01/occupy", `{"license_plate":"X","vehicle_type":"truck"}`, http.StatusBadRequest},
		{"type mismatch", http.MethodPost, "/api/v1/spots/B1-03/occupy", `{"license_plate":"X","vehicle_type":"car"}`, http.StatusBadRequest},
		{"blank plate", http.MethodPost, "/api/v1/spots/B1-01/occupy", `{"license_plate":"   "}`, http.StatusBadRequest},
		{"unknown spot", http.MethodPost, "/api/v1/spots/Z9-01/occupy", `{"license_plate":"X"}`, http.StatusNotFound},
		{"bad history date", http.MethodGet, "/api/v1/history?date=14-10-2026", "", http.StatusBadRequest},
		{"bad history type", http.MethodGet, "/api/v1/history?vehicle_type=truck", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestRouter_StatusTransitions(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/spots/B2-02/reserve", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/spots/B2-02/occupy", `{"license_plate":"X"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/spots/B2-02/problematic", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.SpotProblematic, decode[domain.TransitionResult](t, w).Spot.Status)

	w = s.do(t, http.MethodPost, "/api/v1/spots/B2-02/release", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.SpotAvailable, decode[domain.TransitionResult](t, w).Spot.Status)
}

func TestRouter_Notifications(t *testing.T) {
	s := newTestServer(t)

	s.do(t, http.MethodPost, "/api/v1/spots/B1-01/occupy", `{"license_plate":"ABC"}`)
	s.do(t, http.MethodPost, "/api/v1/spots/B1-01/vacate", "")

	w := s.do(t, http.MethodGet, "/api/v1/notifications", "")
	require.Equal(t, http.StatusOK, w.Code)
	events := decode[[]domain.NotificationEvent](t, w)
	require.Len(t, events, 2)
	assert.Equal(t, "Vehicle ABC left spot B1-01. Fare: Nrs. 50", events[0].Message)
	assert.Equal(t, "Vehicle ABC parked at spot B1-01", events[1].Message)

	w = s.do(t, http.MethodDelete, "/api/v1/notifications", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/notifications", "")
	assert.Empty(t, decode[[]domain.NotificationEvent](t, w))
}

func TestRouter_CORSPreflight(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodOptions, "/api/v1/spots", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_WebSocketBroadcast(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return s.ws.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	_, err = s.notes.Record(context.Background(), "Spot B1-02 reserved", domain.NotificationSystem)
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event domain.NotificationEvent
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "Spot B1-02 reserved", event.Message)
	assert.Equal(t, domain.NotificationSystem, event.Kind)
	assert.NotEmpty(t, event.ID)
}
