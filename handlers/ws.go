package handlers

import (
	"encoding/json"
	"log"
	"time"

	"github.com/budgetme/admin-api/services"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
)

// WSHandler bridges the in-process change feed onto WebSocket sessions. Each
// connected dashboard receives every row-change event for the tables it
// watches (all tables by default).
type WSHandler struct {
	M           *melody.Melody
	unsubscribe func()
}

func NewWSHandler(feed *services.ChangeFeed) *WSHandler {
	m := melody.New()

	m.Config.MaxMessageSize = 1024 * 1024

	// Keep-Alive Configuration (Critical for cloud hosting)
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleConnect(func(s *melody.Session) {
		table, _ := s.Get("table")
		log.Printf("✅ Dashboard client connected (table filter: %v)", table)
	})

	m.HandleDisconnect(func(s *melody.Session) {
		table, _ := s.Get("table")
		log.Printf("🔌 Dashboard client disconnected (table filter: %v)", table)
	})

	m.HandleError(func(s *melody.Session, err error) {
		log.Printf("❌ WebSocket Error: %v", err)
	})

	h := &WSHandler{M: m}
	h.unsubscribe = feed.Subscribe(services.TableAll, h.broadcast)
	return h
}

// HandleWS upgrades the request. An optional ?table= query narrows the events
// the session receives.
func (h *WSHandler) HandleWS(c *gin.Context) {
	table := c.DefaultQuery("table", services.TableAll)

	keys := map[string]interface{}{"table": table}
	if err := h.M.HandleRequestWithKeys(c.Writer, c.Request, keys); err != nil {
		log.Printf("❌ Failed to upgrade websocket: %v", err)
	}
}

// broadcast fans a change event out to every session whose table filter
// matches.
func (h *WSHandler) broadcast(event services.ChangeEvent) {
	msg, err := json.Marshal(event)
	if err != nil {
		log.Printf("⚠️ Failed to encode change event: %v", err)
		return
	}

	err = h.M.BroadcastFilter(msg, func(s *melody.Session) bool {
		table, exists := s.Get("table")
		return exists && (table == services.TableAll || table == event.Table)
	})
	if err != nil {
		log.Printf("⚠️ Error broadcasting %s change: %v", event.Table, err)
	}
}

// Close detaches the hub from the change feed and drops open sessions.
func (h *WSHandler) Close() {
	h.unsubscribe()
	h.M.Close()
}
