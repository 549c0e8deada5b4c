package server

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/net/websocket"

	"github.com/KirkDiggler/spix/internal/errors"
	"github.com/KirkDiggler/spix/internal/ui"
)

// wsTransport carries frames out as JSON text messages and reads plain text
// lines back in. A reader goroutine feeds the inbox; the game loop pops.
type wsTransport struct {
	mu    sync.Mutex
	conn  *websocket.Conn
	inbox *ui.Inbox
}

func newWSTransport(conn *websocket.Conn) *wsTransport {
	return &wsTransport{conn: conn, inbox: ui.NewInbox()}
}

// Send writes one frame. Input typed before a menu or prompt was offered
// is discarded when that menu or prompt goes out.
func (t *wsTransport) Send(_ context.Context, frame ui.Frame) error {
	if frame.Type == ui.FrameChoices || frame.Type == ui.FramePrompt {
		t.inbox.Drain()
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := websocket.JSON.Send(t.conn, frame); err != nil {
		return errors.WrapWithCode(err, errors.CodeDisconnected, "failed to send frame")
	}
	return nil
}

// Receive waits for the next line from the client
func (t *wsTransport) Receive(ctx context.Context) (string, error) {
	return t.inbox.Pop(ctx)
}

// read pumps client messages into the inbox until the socket fails
func (t *wsTransport) read() {
	defer t.inbox.Close()
	for {
		var msg string
		if err := websocket.Message.Receive(t.conn, &msg); err != nil {
			return
		}
		if !t.inbox.Push(strings.TrimRight(msg, "\r\n")) {
			return
		}
	}
}

var _ ui.Transport = (*wsTransport)(nil)
