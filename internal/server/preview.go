package server

import (
	"context"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	md2wechat "github.com/alnah/go-md2wechat"
	"github.com/alnah/go-md2wechat/internal/assets"
	"github.com/alnah/go-md2wechat/internal/logging"
)

// previewPollInterval is how often the watched file's mtime is checked.
const previewPollInterval = time.Second

// wsConn pairs a connection with its write mutex.
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// previewHub re-renders a watched Markdown file and pushes the result to
// connected preview pages.
type previewHub struct {
	svc  *md2wechat.Service
	file string

	upgrader websocket.Upgrader

	mu    sync.RWMutex
	conns map[*websocket.Conn]*wsConn

	done     chan struct{}
	stopOnce sync.Once
}

func newPreviewHub(svc *md2wechat.Service, file string) *previewHub {
	return &previewHub{
		svc:  svc,
		file: file,
		upgrader: websocket.Upgrader{
			// Local development aid; any origin may connect
			CheckOrigin: func(*http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]*wsConn),
		done:  make(chan struct{}),
	}
}

// watch polls the file's mtime and broadcasts a fresh render on change.
// Runs until stop is called.
func (h *previewHub) watch() {
	ticker := time.NewTicker(previewPollInterval)
	defer ticker.Stop()

	var lastMod time.Time
	if info, err := os.Stat(h.file); err == nil {
		lastMod = info.ModTime()
	}

	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
			info, err := os.Stat(h.file)
			if err != nil {
				continue
			}
			if info.ModTime().Equal(lastMod) {
				continue
			}
			lastMod = info.ModTime()

			page, err := h.render()
			if err != nil {
				logging.GetSystemLogger().WithError(err).Warn("preview render failed")
				continue
			}
			h.broadcast(map[string]any{"html": page})
		}
	}
}

// render converts the watched file into a standalone page.
func (h *previewHub) render() (string, error) {
	data, err := os.ReadFile(h.file)
	if err != nil {
		return "", err
	}
	out, err := h.svc.Convert(context.Background(), md2wechat.Input{
		Markdown:      string(data),
		IncludeStyles: true,
	})
	if err != nil {
		return "", err
	}
	return out.HTML, nil
}

func (h *previewHub) add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = &wsConn{conn: conn}
}

func (h *previewHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[conn]; ok {
		delete(h.conns, conn)
		_ = conn.Close()
	}
}

// clientCount returns the number of connected preview pages.
func (h *previewHub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// broadcast sends message to every client, dropping dead connections.
func (h *previewHub) broadcast(message map[string]any) {
	h.mu.RLock()
	conns := make([]*wsConn, 0, len(h.conns))
	for _, wc := range h.conns {
		conns = append(conns, wc)
	}
	h.mu.RUnlock()

	for _, wc := range conns {
		wc.mu.Lock()
		err := wc.conn.WriteJSON(message)
		wc.mu.Unlock()

		if err != nil {
			h.remove(wc.conn)
		}
	}
}

// handleWS upgrades the connection and registers it with the hub.
func (h *previewHub) handleWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.GetSystemLogger().WithError(err).Warn("preview websocket upgrade failed")
		return
	}
	h.add(conn)

	// Drain client frames so closes are noticed promptly
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.remove(conn)
				return
			}
		}
	}()
}

// stop ends the watch loop and closes all connections.
func (h *previewHub) stop() {
	h.stopOnce.Do(func() {
		close(h.done)
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		_ = conn.Close()
	}
	h.conns = make(map[*websocket.Conn]*wsConn)
}

// handlePreview serves the watched file as a full page with the live
// reload script spliced in.
func (s *Server) handlePreview(c *gin.Context) {
	page, err := s.preview.render()
	if err != nil {
		SetError(c, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": md2wechat.ErrRenderFailed.Error()})
		return
	}

	snippet, err := assets.LoadTemplate("preview")
	if err != nil {
		logging.GetSystemLogger().WithError(err).Warn("preview template missing")
		snippet = ""
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(injectBeforeBodyEnd(page, snippet)))
}

// injectBeforeBodyEnd splices snippet in front of </body>, appending when
// the page has no closing body tag.
func injectBeforeBodyEnd(page, snippet string) string {
	if snippet == "" {
		return page
	}
	lowerHTML := strings.ToLower(page)
	if idx := strings.Index(lowerHTML, "</body>"); idx != -1 {
		return page[:idx] + snippet + page[idx:]
	}
	return page + snippet
}
