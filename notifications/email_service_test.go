package notifications

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anjiri1684/edu_cooperative/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendEmail_PostsToBrevo(t *testing.T) {
	received := make(chan brevoPayload, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("api-key"))
		var p brevoPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		received <- p
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	previous := EmailClient
	EmailClient = &BrevoService{APIKey: "test-key", SenderEmail: "office@example.com", SenderName: "Office", Endpoint: srv.URL}
	t.Cleanup(func() { EmailClient = previous })

	receipt := "RCPT-ZX81QW07"
	SendPaymentReceipt(models.BillingRecord{
		Month:         time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		AmountPaid:    decimal.NewFromInt(250),
		Status:        models.PaymentStatusPaid,
		ReceiptNumber: &receipt,
		Student:       &models.Student{FirstName: "Lina", LastName: "Berrada", Email: "lina@example.com"},
	})

	p := <-received
	assert.Equal(t, "Payment received - March 2025", p.Subject)
	assert.Equal(t, "lina@example.com", p.To[0].Email)
	assert.Contains(t, p.HTMLContent, "250.00 DH")
	assert.Contains(t, p.HTMLContent, receipt)
}

func TestSend_RejectsBadRecipient(t *testing.T) {
	s := &BrevoService{Endpoint: "http://127.0.0.1:0"}
	assert.Error(t, s.send("not-an-address", "", "subject", "body"))
}

func TestSendPaymentReceipt_SkipsUnpaid(t *testing.T) {
	previous := EmailClient
	EmailClient = &BrevoService{Endpoint: "http://127.0.0.1:0"}
	t.Cleanup(func() { EmailClient = previous })

	// Nothing is sent, so no request is attempted against the closed port.
	SendPaymentReceipt(models.BillingRecord{Status: models.PaymentStatusPartial, Student: &models.Student{Email: "x@example.com"}})
}
