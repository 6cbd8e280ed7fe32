package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// writeWait bounds each push so one stalled client cannot hold up the hub.
const writeWait = 5 * time.Second

const (
	EventBillingGenerated   = "billing.generated"
	EventPaymentRecorded    = "payment.recorded"
	EventReportGenerated    = "report.generated"
	EventProfitsDistributed = "profits.distributed"
	EventExpenseUpdated     = "expense.updated"
)

type Client struct {
	UserID uuid.UUID
	Role   string
	Conn   *websocket.Conn
}

type Event struct {
	Type string    `json:"type"`
	Data any       `json:"data"`
	At   time.Time `json:"at"`
}

type eventWriter interface {
	SetWriteDeadline(t time.Time) error
	WriteJSON(v interface{}) error
}

func deliver(w eventWriter, event Event) error {
	if err := w.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return w.WriteJSON(event)
}

var clients = make(map[*websocket.Conn]*Client)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Broadcast = make(chan Event, 64)

func init() {
	go RunHub()
}

// Publish queues an event for every connected client. Events are dropped
// when the hub is backed up.
func Publish(eventType string, data any) {
	select {
	case Broadcast <- Event{Type: eventType, Data: data, At: time.Now().UTC()}:
	default:
		log.Printf("⚠️ Event hub is full, dropping %s", eventType)
	}
}

func ConnectedClients() int {
	clientsMu.RLock()
	defer clientsMu.RUnlock()
	return len(clients)
}

func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Client registered: %s (%s)", client.UserID, client.Role)
			clientsMu.Lock()
			clients[client.Conn] = client
			clientsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Client unregistered: %s", client.UserID)
			clientsMu.Lock()
			delete(clients, client.Conn)
			clientsMu.Unlock()
		case event := <-Broadcast:
			var failed []*websocket.Conn
			clientsMu.RLock()
			for conn, client := range clients {
				if err := deliver(conn, event); err != nil {
					log.Printf("Error sending %s to client %s: %v", event.Type, client.UserID, err)
					failed = append(failed, conn)
				}
			}
			clientsMu.RUnlock()

			if len(failed) > 0 {
				clientsMu.Lock()
				for _, conn := range failed {
					conn.Close()
					delete(clients, conn)
				}
				clientsMu.Unlock()
			}
		}
	}
}
