package server

import (
	"net/http"

	"lotus-ge/src/models"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

// runHub is the main Hub loop
func (s *APIServer) runHub() {
	for {
		select {
		case client := <-s.register:
			s.clients[client] = struct{}{}
			// Send current summary on connect
			s.stateMutex.RLock()
			summary := s.lastSummary
			s.stateMutex.RUnlock()
			client.send <- &models.MExchangeMessage{Type: "INITIAL", Summary: &summary}

		case client := <-s.unregister:
			if _, ok := s.clients[client]; ok {
				delete(s.clients, client)
				close(client.send)
			}

		case message := <-s.broadcast:
			for client := range s.clients {
				select {
				case client.send <- message:
				default:
					// Client too slow, disconnect so the Hub never blocks
					delete(s.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// -----------------------------------------------------------------------------
// Data Exchange Interface Implementation
// -----------------------------------------------------------------------------

// UpdateMasterView replaces the cached master view after a cycle rebuild.
func (s *APIServer) UpdateMasterView(view []models.MMasterRecord) {
	byID := make(map[int]models.MMasterRecord, len(view))
	for _, record := range view {
		byID[record.ItemID] = record
	}

	s.stateMutex.Lock()
	s.masterView = view
	s.masterByID = byID
	s.stateMutex.Unlock()
}

// -----------------------------------------------------------------------------

// UpdateSummary stores the latest cycle summary for the REST handlers.
func (s *APIServer) UpdateSummary(summary models.MCycleSummary) {
	s.stateMutex.Lock()
	s.lastSummary = summary
	s.stateMutex.Unlock()
}

// -----------------------------------------------------------------------------

// Broadcast pushes a cycle summary to every connected websocket client.
func (s *APIServer) Broadcast(summary models.MCycleSummary) {
	s.broadcast <- &models.MExchangeMessage{Type: "UPDATE", Summary: &summary}
}

// -----------------------------------------------------------------------------
// WebSocket Handlers
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// -----------------------------------------------------------------------------

func (s *APIServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("failed to upgrade websocket: %v", err)
		return
	}

	client := &Client{
		hub:  s,
		conn: conn,
		// Buffered so the Hub loop never waits on one client
		send: make(chan *models.MExchangeMessage, 256),
	}

	s.register <- client

	go client.writePump()
	go client.readPump()
}

// -----------------------------------------------------------------------------
// Client Message Handling
// -----------------------------------------------------------------------------

func (s *APIServer) handleClientMessage(client *Client, message []byte) {
	var cmd models.MClientCommand
	if err := json.Unmarshal(message, &cmd); err != nil {
		s.Logger.Info("failed to parse client command: %v, disconnecting client", err)
		client.conn.Close()
		return
	}

	if cmd.Command != "items" {
		return
	}

	s.stateMutex.RLock()
	response := s.itemsResponse(cmd.ItemIDs)
	s.stateMutex.RUnlock()

	select {
	case client.send <- response:
	default:
		// Client buffer full, drop the response rather than block
	}
}

// -----------------------------------------------------------------------------
// Response Filtering
// -----------------------------------------------------------------------------

// itemsResponse returns the requested master records, or the full view when
// no ids were asked for. Callers hold stateMutex.
func (s *APIServer) itemsResponse(itemIDs []int) *models.MExchangeMessage {
	if len(itemIDs) == 0 {
		return &models.MExchangeMessage{Type: "ITEMS", Items: s.masterView}
	}

	var items []models.MMasterRecord
	for _, id := range itemIDs {
		if record, ok := s.masterByID[id]; ok {
			items = append(items, record)
		}
	}

	return &models.MExchangeMessage{Type: "ITEMS", Items: items}
}
