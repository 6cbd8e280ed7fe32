package utils

import (
	"math/rand"
	"time"

	"github.com/anjiri1684/edu_cooperative/models"
	"gorm.io/gorm"
)

const receiptCodeLength = 8
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateUniqueReceiptNumber returns an RCPT-XXXXXXXX number not yet used
// by any billing record.
func GenerateUniqueReceiptNumber(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		b := make([]byte, receiptCodeLength)
		for i := range b {
			b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
		}
		code := "RCPT-" + string(b)

		var count int64
		if err := tx.Model(&models.BillingRecord{}).Where("receipt_number = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
}
