package realtime

import (
	"encoding/json"
	"time"

	"bandos-api/core/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/olahol/melody"
)

// Update types broadcast to band subscribers.
const (
	UpdateMemberJoined      = "member_joined"
	UpdateMemberRemoved     = "member_removed"
	UpdateBandDeleted       = "band_deleted"
	UpdateInvitationCreated = "invitation_created"
	UpdateEventCreated      = "event_created"
	UpdateEventDeleted      = "event_deleted"
)

const sessionKeyBandID = "band_id"

// Broadcaster pushes band-scoped change signals to connected clients.
// Clients re-derive view state from fresh reads on receipt; the signal
// carries no document payload.
type Broadcaster interface {
	BroadcastBandUpdate(bandID uuid.UUID, updateType string, actor string)
}

type updateMessage struct {
	Type   string `json:"type"`
	BandID string `json:"band_id"`
	Actor  string `json:"actor"`
}

// Hub is a melody-backed websocket hub with one logical channel per band.
type Hub struct {
	m *melody.Melody
}

func NewHub() *Hub {
	m := melody.New()
	m.Config.MaxMessageSize = 1024
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleConnect(func(s *melody.Session) {
		bandID, _ := s.Get(sessionKeyBandID)
		logger.Info("Realtime:Connect", "band_id", bandID)
	})
	m.HandleDisconnect(func(s *melody.Session) {
		bandID, _ := s.Get(sessionKeyBandID)
		logger.Info("Realtime:Disconnect", "band_id", bandID)
	})
	m.HandleError(func(s *melody.Session, err error) {
		logger.Error("Realtime:Error:", err)
	})

	return &Hub{m: m}
}

// HandleBandSocket upgrades the request to a websocket subscribed to one
// band's updates.
func (h *Hub) HandleBandSocket(c echo.Context, bandID uuid.UUID) error {
	return h.m.HandleRequestWithKeys(c.Response(), c.Request(), map[string]any{
		sessionKeyBandID: bandID.String(),
	})
}

// BroadcastBandUpdate fans a change signal out to every session subscribed
// to the band. Failures are logged and never surfaced to the command that
// triggered the change.
func (h *Hub) BroadcastBandUpdate(bandID uuid.UUID, updateType string, actor string) {
	msg, err := json.Marshal(updateMessage{
		Type:   updateType,
		BandID: bandID.String(),
		Actor:  actor,
	})
	if err != nil {
		logger.Error("Realtime:BroadcastBandUpdate:Marshal:Error:", err)
		return
	}

	err = h.m.BroadcastFilter(msg, func(s *melody.Session) bool {
		id, exists := s.Get(sessionKeyBandID)
		return exists && id == bandID.String()
	})
	if err != nil {
		logger.Error("Realtime:BroadcastBandUpdate:Error:", err, "band_id", bandID)
	}
}

// Close shuts the hub down, closing every open session.
func (h *Hub) Close() error {
	return h.m.Close()
}
