package ws

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/lamji/crud-api-mern-sub001/entity"
)

// OrderEvent is what dashboards receive on every status change.
type OrderEvent struct {
	OrderID   string             `json:"orderId"`
	Status    entity.OrderStatus `json:"status"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// OrderFeedHub fans order-status events out to every connected POS
// dashboard. One shared feed, no rooms.
type OrderFeedHub struct {
	clients    map[*websocket.Conn]bool
	events     chan OrderEvent
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	log        *zap.SugaredLogger
}

func NewOrderFeedHub(log *zap.SugaredLogger) *OrderFeedHub {
	return &OrderFeedHub{
		clients:    make(map[*websocket.Conn]bool),
		events:     make(chan OrderEvent, 64),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		log:        log,
	}
}

func (h *OrderFeedHub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.clients[conn] = true

		case conn := <-h.unregister:
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}

		case ev := <-h.events:
			for conn := range h.clients {
				if err := conn.WriteJSON(ev); err != nil {
					h.log.Warnw("ws write failed", "err", err)
					conn.Close()
					delete(h.clients, conn)
				}
			}
		}
	}
}

// PublishStatus never blocks the caller; if the feed is saturated the
// event is dropped (dashboards re-sync on their next fetch anyway).
func (h *OrderFeedHub) PublishStatus(orderID string, status entity.OrderStatus, at time.Time) {
	select {
	case h.events <- OrderEvent{OrderID: orderID, Status: status, UpdatedAt: at}:
	default:
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Handle upgrades GET /ws/orders and parks the connection on the feed.
func (h *OrderFeedHub) Handle(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warnw("ws upgrade failed", "err", err)
		return
	}
	h.register <- conn

	// Reader loop only detects disconnects; the feed is one-way.
	go func() {
		defer func() { h.unregister <- conn }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
