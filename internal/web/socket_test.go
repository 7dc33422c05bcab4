package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaminalder/nxn-tic-tac-toe/internal/app"
)

func gameURL(srv *httptest.Server, id, player string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/game/" + id + "/ws?player=" + player
}

func dialGame(t *testing.T, srv *httptest.Server, id, player string) *websocket.Conn {
	t.Helper()
	u := gameURL(srv, id, player)
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err, "dial %s", u)
	t.Cleanup(func() { conn.Close() })
	return conn
}

type received struct {
	Type     string                 `json:"type"`
	Contents map[string]interface{} `json:"contents"`
}

func readMessage(t *testing.T, conn *websocket.Conn) received {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var m received
	require.NoError(t, conn.ReadJSON(&m))
	return m
}

func TestSocketPlaysMovesAndBroadcasts(t *testing.T) {
	svc := app.NewService()
	srv := httptest.NewServer(NewServer(svc, Options{}))
	defer srv.Close()
	gs, _ := svc.CreateGame(3)

	x := dialGame(t, srv, gs.ID, "p1")
	m := readMessage(t, x)
	assert.Equal(t, MsgWelcome, m.Type)
	assert.Equal(t, "X", m.Contents["seat"])
	m = readMessage(t, x)
	assert.Equal(t, MsgBoard, m.Type)
	assert.Equal(t, float64(3), m.Contents["size"])

	o := dialGame(t, srv, gs.ID, "p2")
	assert.Equal(t, "O", readMessage(t, o).Contents["seat"])
	readMessage(t, o)

	require.NoError(t, x.WriteJSON(Message{Type: MsgMakeMove, Contents: map[string]int{"row": 1, "col": 2}}))
	for _, conn := range []*websocket.Conn{x, o} {
		m := readMessage(t, conn)
		require.Equal(t, MsgBoard, m.Type)
		fields, ok := m.Contents["fields"].([]interface{})
		require.True(t, ok, "fields: %+v", m.Contents)
		assert.Equal(t, "X", fields[5])
		assert.Equal(t, "O", m.Contents["turn"])
	}

	// X moving twice is rejected only to X
	require.NoError(t, x.WriteJSON(Message{Type: MsgMakeMove, Contents: map[string]int{"row": 0, "col": 0}}))
	m = readMessage(t, x)
	assert.Equal(t, MsgError, m.Type)
	assert.Equal(t, "Not your turn", m.Contents["reason"])
}

func TestSocketRejectsMalformedMessages(t *testing.T) {
	svc := app.NewService()
	srv := httptest.NewServer(NewServer(svc, Options{}))
	defer srv.Close()
	gs, _ := svc.CreateGame(3)

	conn := dialGame(t, srv, gs.ID, "p1")
	readMessage(t, conn)
	readMessage(t, conn)

	_ = conn.WriteJSON(Message{Type: MsgMakeMove, Contents: map[string]int{"row": 1}})
	m := readMessage(t, conn)
	assert.Equal(t, MsgError, m.Type)
	assert.Equal(t, "Malformed move", m.Contents["reason"])

	_ = conn.WriteJSON(Message{Type: "Dance"})
	assert.Equal(t, MsgError, readMessage(t, conn).Type)
}

func TestSocketOriginCheck(t *testing.T) {
	svc := app.NewService()
	srv := httptest.NewServer(NewServer(svc, Options{CheckOrigin: SameHostOrigin("example.org")}))
	defer srv.Close()
	gs, _ := svc.CreateGame(3)

	hdr := http.Header{"Origin": {"https://example.org.evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(gameURL(srv, gs.ID, "p1"), hdr)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	hdr = http.Header{"Origin": {"https://example.org"}}
	conn, _, err := websocket.DefaultDialer.Dial(gameURL(srv, gs.ID, "p1"), hdr)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, MsgWelcome, readMessage(t, conn).Type)
}

func TestDecodeMove(t *testing.T) {
	row, col, err := decodeMove(map[string]interface{}{"row": float64(2), "col": float64(1)})
	require.NoError(t, err)
	assert.Equal(t, 2, row)
	assert.Equal(t, 1, col)

	_, _, err = decodeMove("nonsense")
	assert.Error(t, err)
}
