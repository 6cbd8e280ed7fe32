package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	config "github.com/anjiri1684/edu_cooperative/configs"
	"github.com/anjiri1684/edu_cooperative/models"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/divan/num2words"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

var documentTemplates = template.Must(template.New("documents").
	Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
	ParseFS(templateFS, "templates/*.html"))

const pdfTimeout = 30 * time.Second

// InvoiceNumber is the printable reference of a billing record.
func InvoiceNumber(r models.BillingRecord) string {
	return "INV-" + strings.ToUpper(strings.ReplaceAll(r.ID.String(), "-", "")[:8])
}

// AmountInWords spells out the whole dirhams and appends centimes as digits.
func AmountInWords(d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "minus "
		d = d.Abs()
	}
	whole := d.IntPart()
	cents := d.Sub(decimal.NewFromInt(whole)).Mul(hundred).IntPart()
	return fmt.Sprintf("%s%s dirhams and %02d centimes", sign, num2words.Convert(int(whole)), cents)
}

func RenderInvoiceHTML(r models.BillingRecord, issuedOn time.Time) (string, error) {
	data := struct {
		Number, IssuedOn, Period, Description         string
		PayeeLabel, PayeeName, PayeeEmail, PayeePhone string
		Amount, AmountPaid, Remaining, AmountInWords  string
		Status, ReceiptNumber                         string
	}{
		Number:        InvoiceNumber(r),
		IssuedOn:      issuedOn.Format("02/01/2006"),
		Period:        r.Month.Format("January 2006"),
		Amount:        r.Amount.StringFixed(2),
		AmountPaid:    r.AmountPaid.StringFixed(2),
		Remaining:     r.RemainingAmount().StringFixed(2),
		AmountInWords: AmountInWords(r.Amount),
		Status:        capitalize(r.Status),
	}
	if r.ReceiptNumber != nil {
		data.ReceiptNumber = *r.ReceiptNumber
	}

	switch {
	case r.Student != nil:
		data.PayeeLabel = "Bill To"
		data.PayeeName = r.Student.FullName()
		data.PayeeEmail = r.Student.Email
		data.PayeePhone = r.Student.Phone
		data.Description = "Monthly Fee - " + data.Period
	case r.Instructor != nil:
		data.PayeeLabel = "Pay To"
		data.PayeeName = r.Instructor.FullName()
		data.PayeeEmail = r.Instructor.Email
		data.PayeePhone = r.Instructor.Phone
		data.Description = "Instructor Compensation - " + data.Period
	default:
		data.Description = "Billing - " + data.Period
	}

	return renderTemplate("invoice.html", data)
}

var contractTerms = []string{
	"The Instructor agrees to provide educational services as assigned by The Cooperative.",
	"Payment will be made monthly based on the compensation structure outlined above.",
	"The Instructor must maintain accurate attendance records for all sessions.",
	"Either party may terminate this contract with 30 days written notice.",
	"The Instructor agrees to comply with all Cooperative policies and regulations.",
}

// RenderContractHTML builds an instructor contract. With a course the
// compensation section only describes that course.
func RenderContractHTML(instructor models.Instructor, course *models.Course, rates Rates, date time.Time) (string, error) {
	itRate := instructor.HourlyRate
	if itRate.IsZero() {
		itRate = rates.ITHourlyRate
	}
	tutoring := fmt.Sprintf("%s DH per student per month", rates.TutoringRate.StringFixed(0))
	it := fmt.Sprintf("%s DH per hour (maximum %s hours per month)", itRate.StringFixed(0), rates.MonthlyHourCap.String())

	var compensation []string
	switch {
	case course == nil:
		compensation = []string{"Tutoring: " + tutoring, "IT Courses: " + it}
	case course.IsTutoring():
		compensation = []string{fmt.Sprintf("For tutoring services in %s: %s", course.Name, tutoring)}
	default:
		compensation = []string{fmt.Sprintf("For IT course %s: %s", course.Name, it)}
	}

	return renderTemplate("contract.html", struct {
		Date, Name, Email, Phone, Specialization string
		Compensation, Terms                      []string
	}{
		Date:           date.Format("02/01/2006"),
		Name:           instructor.FullName(),
		Email:          instructor.Email,
		Phone:          instructor.Phone,
		Specialization: instructor.Specialization,
		Compensation:   compensation,
		Terms:          contractTerms,
	})
}

func RenderReportHTML(d ReportDetail, generatedOn time.Time) (string, error) {
	type expenseLine struct {
		Label, Total string
		Count        int
	}
	type distributionLine struct{ Member, Share, Amount string }

	data := struct {
		Period, GeneratedOn                                           string
		Revenue, InstructorPayments, GrossProfit, Expenses, NetProfit string
		Finalized                                                     bool
		ExpenseLines                                                  []expenseLine
		Distributions                                                 []distributionLine
	}{
		Period:             d.Report.Month.Format("January 2006"),
		GeneratedOn:        generatedOn.Format("02/01/2006"),
		Revenue:            d.Report.TotalRevenue.StringFixed(2),
		InstructorPayments: d.Report.TotalInstructorPayments.StringFixed(2),
		GrossProfit:        d.Report.GrossProfit.StringFixed(2),
		Expenses:           d.Report.TotalExpenses.StringFixed(2),
		NetProfit:          d.Report.NetProfit.StringFixed(2),
		Finalized:          d.Report.IsFinalized,
	}
	for _, g := range d.ExpenseBreakdown {
		label := models.ExpenseTypeLabels[g.Key]
		if label == "" {
			label = g.Key
		}
		data.ExpenseLines = append(data.ExpenseLines, expenseLine{Label: label, Total: g.Total.StringFixed(2), Count: g.Count})
	}
	for _, dist := range d.Distributions {
		name := dist.MemberID.String()
		if dist.Member != nil {
			name = dist.Member.FullName()
		}
		data.Distributions = append(data.Distributions, distributionLine{
			Member: name,
			Share:  dist.SharePercentage.StringFixed(2) + "%",
			Amount: dist.Amount.StringFixed(2),
		})
	}

	return renderTemplate("report.html", data)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func renderTemplate(name string, data any) (string, error) {
	var rendered bytes.Buffer
	if err := documentTemplates.ExecuteTemplate(&rendered, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return rendered.String(), nil
}

// RenderPDF prints htmlContent with a headless Chrome instance.
func RenderPDF(ctx context.Context, htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(ctx)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, pdfTimeout)
	defer cancelTimeout()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

// ArchivingEnabled reports whether CLOUDINARY_URL is configured.
func ArchivingEnabled() bool {
	return config.Config("CLOUDINARY_URL") != ""
}

// ArchivePDF uploads a generated document to Cloudinary and returns its URL.
func ArchivePDF(ctx context.Context, fileBytes []byte, kind, name string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("%s/%s_%s", kind, name, uuid.New().String()),
		Folder:       "edu_cooperative_documents",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}
	return uploadResult.SecureURL, nil
}
