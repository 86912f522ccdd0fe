package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	md2wechat "github.com/alnah/go-md2wechat"
)

// renderRequest is the POST /render payload. Markdown stays raw so a
// non-string value gets its own error message instead of a generic
// decode failure.
type renderRequest struct {
	Markdown      json.RawMessage         `json:"markdown"`
	Options       md2wechat.RenderOptions `json:"options"`
	IncludeStyles bool                    `json:"includeStyles"`
	StyleOptions  md2wechat.StyleOptions  `json:"styleOptions"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleThemes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"themes": md2wechat.Themes()})
}

func (s *Server) handleRender(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			// The client may still be streaming the rest of the body;
			// tear the connection down instead of draining it.
			c.Header("Connection", "close")
			abortWithError(c, md2wechat.ErrBodyTooLarge)
			return
		}
		abortWithError(c, md2wechat.ErrInvalidJSON)
		return
	}

	var req renderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		SetError(c, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": md2wechat.ErrInvalidJSON.Error()})
		return
	}

	// Absent and JSON null both leave nothing to unmarshal; Unmarshal
	// accepts "null" without assigning, so they need an explicit check.
	if len(req.Markdown) == 0 || string(req.Markdown) == "null" {
		abortWithError(c, md2wechat.ErrInvalidMarkdownType)
		return
	}
	var markdown string
	if err := json.Unmarshal(req.Markdown, &markdown); err != nil {
		abortWithError(c, md2wechat.ErrInvalidMarkdownType)
		return
	}

	out, err := s.svc.Convert(c.Request.Context(), md2wechat.Input{
		Markdown:      markdown,
		Options:       req.Options,
		Style:         req.StyleOptions,
		IncludeStyles: req.IncludeStyles,
	})
	if err != nil {
		// Details stay server-side; the client gets a fixed message
		SetError(c, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": md2wechat.ErrRenderFailed.Error()})
		return
	}

	if req.IncludeStyles && strings.Contains(c.GetHeader("Accept"), "text/html") {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(out.HTML))
		return
	}
	c.JSON(http.StatusOK, gin.H{"html": out.HTML})
}

// abortWithError responds 400 with the sentinel's message and records it
// for the access log.
func abortWithError(c *gin.Context, err error) {
	SetError(c, err)
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
