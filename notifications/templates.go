package notifications

import (
	"fmt"

	"github.com/anjiri1684/edu_cooperative/models"
)

// SendPaymentReceipt confirms a fully paid student fee.
func SendPaymentReceipt(record models.BillingRecord) {
	if record.Student == nil || record.Status != models.PaymentStatusPaid {
		return
	}
	receipt := ""
	if record.ReceiptNumber != nil {
		receipt = *record.ReceiptNumber
	}
	subject := fmt.Sprintf("Payment received - %s", record.Month.Format("January 2006"))
	body := fmt.Sprintf(
		"<p>Dear %s,</p><p>We have received your payment of <b>%s DH</b> for %s.</p><p>Receipt number: <b>%s</b></p><p>Thank you for choosing our educational services!</p>",
		record.Student.FullName(), record.AmountPaid.StringFixed(2), record.Month.Format("January 2006"), receipt,
	)
	SendEmail(record.Student.FullName(), record.Student.Email, subject, body)
}

// SendDistributionNotice tells a member what they receive from a report.
func SendDistributionNotice(member models.Member, report models.FinancialReport, d models.ProfitDistribution) {
	subject := fmt.Sprintf("Profit distribution - %s", report.Month.Format("January 2006"))
	body := fmt.Sprintf(
		"<p>Dear %s,</p><p>The cooperative's net profit for %s was <b>%s DH</b>.</p><p>Your share is <b>%s%%</b>, which amounts to <b>%s DH</b>.</p>",
		member.FullName(), report.Month.Format("January 2006"), report.NetProfit.StringFixed(2),
		d.SharePercentage.StringFixed(2), d.Amount.StringFixed(2),
	)
	SendEmail(member.FullName(), member.Email, subject, body)
}
