package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resortdesk/internal/domain"
	"resortdesk/internal/pkg/jwt"
)

func setupServer(t *testing.T) (*Hub, *jwt.Service, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub(nil)
	jwtSvc := jwt.New("test-secret", time.Hour)
	r := gin.New()
	NewHandler(hub, jwtSvc).RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return hub, jwtSvc, srv
}

func wsURL(srv *httptest.Server, token string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/rooms?token=" + token
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.ClientCount() == n }, 2*time.Second, 10*time.Millisecond)
}

func TestRoomFeed_RejectsMissingOrBadToken(t *testing.T) {
	_, _, srv := setupServer(t)

	resp, err := http.Get(srv.URL + "/ws/rooms")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, resp2, err := websocket.DefaultDialer.Dial(wsURL(srv, "garbage"), nil)
	require.Error(t, err)
	require.NotNil(t, resp2)
	assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode)
}

func TestRoomFeed_BroadcastsStatusChanges(t *testing.T) {
	hub, jwtSvc, srv := setupServer(t)

	token, err := jwtSvc.GenerateToken(1, "staff")
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, token), nil)
	require.NoError(t, err)
	defer conn.Close()

	waitForClients(t, hub, 1)

	hub.PublishRoomStatus(domain.RoomStatusChange{
		RoomID: 7, RoomNumber: "701", From: domain.RoomReserved, To: domain.RoomOccupied,
		Source: domain.StatusSourceBooking,
	})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Type string                  `json:"type"`
		Data domain.RoomStatusChange `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, EventRoomStatus, msg.Type)
	assert.Equal(t, int64(7), msg.Data.RoomID)
	assert.Equal(t, domain.RoomOccupied, msg.Data.To)

	require.NoError(t, conn.Close())
	waitForClients(t, hub, 0)
}
