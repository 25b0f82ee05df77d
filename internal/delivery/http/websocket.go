package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	ws "github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/shoppingagent/backend/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	wsReadLimit    = 64 * 1024
	wsWriteTimeout = 15 * time.Second
	wsIdleTimeout  = 5 * time.Minute
)

// wsError is the frame sent back when a question cannot be answered
type wsError struct {
	Error    string `json:"error"`
	Products string `json:"products,omitempty"`
}

func newUpgrader(allowedOrigins []string) *ws.Upgrader {
	return &ws.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			// Non-browser clients send no Origin
			return origin == "" || isAllowedOrigin(origin, allowedOrigins)
		},
	}
}

// ChatWebSocket returns the handler for GET /api/v1/shopping/ws.
// Each text frame is a question; each reply is an Answer frame or an error frame.
// A non-nil limiter is consulted per question with the client IP.
func (h *Handler) ChatWebSocket(allowedOrigins []string, limiter VisitorLimiter) gin.HandlerFunc {
	upgrader := newUpgrader(allowedOrigins)

	return func(c *gin.Context) {
		if h.assistant == nil {
			c.JSON(http.StatusNotImplemented, gin.H{
				"error": "Shopping assistant not configured",
			})
			return
		}

		responseHeader := http.Header{}
		if id := c.Writer.Header().Get(requestIDHeader); id != "" {
			responseHeader.Set(requestIDHeader, id)
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, responseHeader)
		if err != nil {
			log.Printf("[WS] Upgrade error: %v", err)
			return
		}
		defer conn.Close()

		conn.SetReadLimit(wsReadLimit)
		clientIP := c.ClientIP()
		log.Printf("[WS] Client connected: %s", clientIP)

		ctx := c.Request.Context()
		for {
			conn.SetReadDeadline(time.Now().Add(wsIdleTimeout))
			msgType, msg, err := conn.ReadMessage()
			if err != nil {
				if ws.IsUnexpectedCloseError(err, ws.CloseNormalClosure, ws.CloseGoingAway) {
					log.Printf("[WS] Read error: %v", err)
				}
				return
			}
			if msgType != ws.TextMessage {
				continue
			}

			var frame any
			if limiter != nil && !limiter.Allow(clientIP) {
				log.Printf("[WS] Rate limit exceeded for %s", clientIP)
				frame = wsError{Error: domain.ErrRateLimited.Error()}
			} else {
				frame = h.answerFrame(ctx, strings.TrimSpace(string(msg)))
			}

			payload, err := json.Marshal(frame)
			if err != nil {
				log.Printf("[WS] Encode error: %v", err)
				return
			}

			conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(ws.TextMessage, payload); err != nil {
				log.Printf("[WS] Write error: %v", err)
				return
			}
		}
	}
}

func (h *Handler) answerFrame(ctx context.Context, question string) any {
	answer, err := h.assistant.Ask(ctx, question)
	if err == nil {
		return answer
	}

	frame := wsError{Error: err.Error()}
	if errors.Is(err, domain.ErrInvalidRequest) {
		frame.Error = "question must not be blank"
	} else {
		log.Printf("[WS] Answer generation failed for %q: %v", question, err)
	}
	if answer != nil {
		frame.Products = answer.Products
	}
	return frame
}
