package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	config "github.com/skillbridge/backend/configs"
	"github.com/skillbridge/backend/database"
	"github.com/skillbridge/backend/models"
)

const receiptTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><style>
body { font-family: Helvetica, Arial, sans-serif; margin: 48px; color: #1f2933; }
h1 { font-size: 22px; border-bottom: 2px solid #1f2933; padding-bottom: 8px; }
table { width: 100%; border-collapse: collapse; margin-top: 24px; }
td { padding: 8px 0; border-bottom: 1px solid #e4e7eb; }
td:last-child { text-align: right; font-weight: bold; }
.footer { margin-top: 40px; font-size: 12px; color: #7b8794; }
</style></head>
<body>
<h1>SkillBridge Payment Receipt</h1>
<table>
<tr><td>Receipt No.</td><td>{{.PaymentID}}</td></tr>
<tr><td>Student</td><td>{{.StudentName}}</td></tr>
<tr><td>Payment Method</td><td>{{.Method}}</td></tr>
<tr><td>Transaction ID</td><td>{{.TransactionID}}</td></tr>
<tr><td>Verified At</td><td>{{.VerifiedAt}}</td></tr>
<tr><td>Amount</td><td>{{printf "%.2f" .Amount}} BDT</td></tr>
</table>
<p class="footer">This receipt confirms that the payment above was verified by a SkillBridge administrator.</p>
</body>
</html>`

// GenerateBookingReceipt renders a PDF receipt for a verified payment and
// uploads it to the media host. Best effort: any failure is logged and the
// payment record simply keeps a nil receipt URL.
func GenerateBookingReceipt(payment models.Payment) {
	htmlContent, err := renderReceiptHTML(payment)
	if err != nil {
		log.Printf("🔥 Failed to render receipt HTML for payment %s: %v", payment.ID, err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlContent)
	if err != nil {
		log.Printf("🔥 Failed to generate receipt PDF for payment %s: %v", payment.ID, err)
		return
	}

	receiptURL, err := uploadReceipt(pdfBytes, payment.ID.String())
	if err != nil {
		log.Printf("🔥 Failed to upload receipt for payment %s: %v", payment.ID, err)
		return
	}

	if err := database.DB.Model(&models.Payment{}).
		Where("id = ?", payment.ID).
		Update("receipt_url", receiptURL).Error; err != nil {
		log.Printf("🔥 Failed to save receipt URL for payment %s: %v", payment.ID, err)
		return
	}

	log.Printf("✅ Receipt generated for payment %s", payment.ID)
}

func renderReceiptHTML(payment models.Payment) (string, error) {
	tmpl, err := template.New("receipt").Parse(receiptTemplate)
	if err != nil {
		return "", err
	}

	verifiedAt := ""
	if payment.VerifiedAt != nil {
		verifiedAt = payment.VerifiedAt.Format("January 2, 2006 15:04")
	}

	data := struct {
		PaymentID     string
		StudentName   string
		Method        string
		TransactionID string
		VerifiedAt    string
		Amount        float64
	}{
		PaymentID:     payment.ID.String(),
		StudentName:   payment.Student.Name,
		Method:        payment.PaymentMethod,
		TransactionID: payment.TransactionID,
		VerifiedAt:    verifiedAt,
		Amount:        payment.Amount,
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", err
	}
	return rendered.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

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

func uploadReceipt(fileBytes []byte, paymentID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("receipts/%s_%s", paymentID, uuid.New().String()),
		Folder:       "skillbridge_receipts",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
