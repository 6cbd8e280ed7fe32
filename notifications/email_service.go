package notifications

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/mail"
	"time"

	config "github.com/anjiri1684/edu_cooperative/configs"
)

const brevoEndpoint = "https://api.brevo.com/v3/smtp/email"

// BrevoService posts transactional mail for the office (receipts, distribution notices).
type BrevoService struct {
	APIKey      string
	SenderEmail string
	SenderName  string
	Endpoint    string
	HTTPClient  *http.Client
}

// EmailClient is nil when mail is not configured; every send is then skipped.
var EmailClient *BrevoService

type brevoContact struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type brevoPayload struct {
	Sender      brevoContact   `json:"sender"`
	To          []brevoContact `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
}

func InitEmailService() {
	key := config.Config("BREVO_API_KEY")
	sender := config.Config("EMAIL_SENDER")
	if key == "" || sender == "" {
		log.Println("⚠️ Brevo not configured, receipts and distribution notices will not be mailed.")
		EmailClient = nil
		return
	}

	EmailClient = &BrevoService{
		APIKey:      key,
		SenderEmail: sender,
		SenderName:  config.Config("EMAIL_SENDER_NAME"),
		Endpoint:    brevoEndpoint,
		HTTPClient:  &http.Client{Timeout: 10 * time.Second},
	}
	log.Printf("✅ Mailing office notices as %s", sender)
}

func (s *BrevoService) send(toEmail, toName, subject, html string) error {
	addr, err := mail.ParseAddress(toEmail)
	if err != nil {
		return fmt.Errorf("bad recipient %q: %w", toEmail, err)
	}

	body, err := json.Marshal(brevoPayload{
		Sender:      brevoContact{Email: s.SenderEmail, Name: s.SenderName},
		To:          []brevoContact{{Email: addr.Address, Name: toName}},
		Subject:     subject,
		HTMLContent: html,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, s.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("content-type", "application/json")
	req.Header.Set("api-key", s.APIKey)

	client := s.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("brevo returned %d: %s", resp.StatusCode, detail)
	}
	return nil
}

// SendEmail never fails the caller; delivery problems are only logged.
func SendEmail(toName, toEmail, subject, html string) {
	if EmailClient == nil {
		return
	}
	if err := EmailClient.send(toEmail, toName, subject, html); err != nil {
		log.Printf("🔥 Mail to %s failed: %v", toEmail, err)
		return
	}
	log.Printf("✅ Mailed %q to %s", subject, toEmail)
}
