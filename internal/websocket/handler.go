package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"whispr-server/internal/services"
	"whispr-server/internal/transport/httpdto"
	"whispr-server/pkg/events"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// controlMessage is the only inbound frame clients send: follow or drop a
// broadcast channel.
type controlMessage struct {
	Action  string `json:"action"` // subscribe | unsubscribe
	Channel string `json:"channel"`
}

type Handler struct {
	identity   *services.IdentityService
	hub        *Hub
	authorizer *ChannelAuthorizer
	origins    map[string]bool
}

func NewHandler(identity *services.IdentityService, hub *Hub, authorizer *ChannelAuthorizer, allowedOrigins []string) *Handler {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}
	return &Handler{identity: identity, hub: hub, authorizer: authorizer, origins: origins}
}

// Connect handles GET /ws. The token travels as a query parameter because
// browsers cannot set headers on websocket upgrades.
func (h *Handler) Connect(c *gin.Context) {
	token := c.Query("token")
	session, err := h.identity.ParseAccessToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || h.origins[origin]
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := NewClient(conn, session.ID)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h.hub.Register(client)
	go client.WriteLoop(ctx)

	// Every connection follows its own user channels from the start.
	h.hub.Subscribe(client, events.UserIncomingRequestsChannel(session.ID))
	h.hub.Subscribe(client, events.UserChatsChannel(session.ID))

	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			break
		}
		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))

		var msg controlMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		switch msg.Action {
		case "subscribe":
			if h.authorizer.CanSubscribe(c.Request.Context(), session.ID, msg.Channel) {
				h.hub.Subscribe(client, msg.Channel)
			}
		case "unsubscribe":
			h.hub.Unsubscribe(client, msg.Channel)
		}
	}

	h.hub.Unregister(client)
}
