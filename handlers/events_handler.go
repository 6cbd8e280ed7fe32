package handlers

import (
	"log"

	"github.com/anjiri1684/edu_cooperative/websocket"
	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// UpgradeEvents only lets websocket handshakes through.
func UpgradeEvents(c *fiber.Ctx) error {
	if websocketcontrib.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// ServeEvents keeps a back-office client subscribed to ledger events until
// it disconnects. The JWT was already checked during the handshake.
func ServeEvents(c *websocketcontrib.Conn) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		_ = c.WriteJSON(fiber.Map{"error": "Unauthorized"})
		c.Close()
		return
	}
	claims, _ := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claimString(claims, "user_id"))

	client := &websocket.Client{UserID: userID, Role: claimString(claims, "role"), Conn: c}
	websocket.Register <- client
	defer func() {
		websocket.Unregister <- client
		c.Close()
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			if websocketcontrib.IsCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseNormalClosure) {
				log.Printf("WebSocket closed for client %s", userID)
			} else {
				log.Printf("WebSocket read error for client %s: %v", userID, err)
			}
			return
		}
	}
}

func claimString(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}
