package core

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/segmentio/encoding/json"
)

const LiveReloadPath = "/__todos_reload"

const (
	ReloadPage  = "page"
	ReloadStyle = "style"
)

const reloadWriteTimeout = 2 * time.Second

// ReloadEvent is pushed to every open dev page after a watched file changes.
// Style events let the page swap its stylesheets in place.
type ReloadEvent struct {
	Kind string `json:"kind"`
	File string `json:"file,omitempty"`
}

func NewReloadEvent(changed string) ReloadEvent {
	event := ReloadEvent{Kind: ReloadPage}
	if changed == "" {
		return event
	}
	if strings.EqualFold(filepath.Ext(changed), ".css") {
		event.Kind = ReloadStyle
	}
	event.File = filepath.Base(changed)
	return event
}

type LiveReloaderInterface interface {
	BroadcastReload(changed string)
	Handler(http.ResponseWriter, *http.Request)
}

// LiveReloader keeps the set of dev pages listening on LiveReloadPath.
type LiveReloader struct {
	mu       sync.Mutex
	peers    map[*websocket.Conn]struct{}
	upgrader websocket.Upgrader
	logger   *log.Logger
}

var NewLiveReloader = func(logger *log.Logger) LiveReloaderInterface {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &LiveReloader{
		peers: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

func (lr *LiveReloader) Handler(w http.ResponseWriter, r *http.Request) {
	conn, err := lr.upgrader.Upgrade(w, r, nil)
	if err != nil {
		lr.logger.Debug("live reload upgrade failed", "err", err)
		return
	}

	lr.mu.Lock()
	lr.peers[conn] = struct{}{}
	lr.mu.Unlock()
	lr.logger.Debug("live reload page connected", "remote", r.RemoteAddr)

	go lr.drain(conn)
}

// drain discards anything the page sends and forgets the peer once the
// connection is gone.
func (lr *LiveReloader) drain(conn *websocket.Conn) {
	defer lr.drop(conn)

	for {
		if _, _, err := conn.NextReader(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				lr.logger.Debug("live reload page dropped", "err", err)
			}
			return
		}
	}
}

func (lr *LiveReloader) drop(conn *websocket.Conn) {
	lr.mu.Lock()
	delete(lr.peers, conn)
	lr.mu.Unlock()
	conn.Close()
}

func (lr *LiveReloader) BroadcastReload(changed string) {
	event := NewReloadEvent(changed)
	payload, err := json.Marshal(event)
	if err != nil {
		lr.logger.Error("live reload event encoding failed", "err", err)
		return
	}

	lr.mu.Lock()
	defer lr.mu.Unlock()

	for conn := range lr.peers {
		conn.SetWriteDeadline(time.Now().Add(reloadWriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(lr.peers, conn)
		}
	}
	lr.logger.Debug("live reload sent", "kind", event.Kind, "file", event.File, "pages", len(lr.peers))
}

func (lr *LiveReloader) Clients() int {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	return len(lr.peers)
}
