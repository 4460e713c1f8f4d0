package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jung-kurt/gofpdf"

	"github.com/vendixlabs/vendix/app/models"
)

// receiptWidth is the character width of the thermal text layout.
const receiptWidth = 40

// ReceiptService renders deterministic receipts from a sale and the
// shop settings. Rendering never mutates anything: the same inputs
// always produce the same receipt.
type ReceiptService struct{}

func NewReceiptService() *ReceiptService {
	return &ReceiptService{}
}

// linePrice re-derives an item's unit price in the sale currency from
// the stored base price and the rate frozen at sale time.
func linePrice(item models.CartItem, sale models.Sale, settings models.BusinessSettings) float64 {
	return Convert(item.Price, settings.DefaultCurrency, sale.Currency, sale.Rate)
}

func symbol(c models.Currency) string {
	if c == models.HTG {
		return "G"
	}
	return "$"
}

// Text renders the 40-column thermal receipt.
func (s *ReceiptService) Text(sale models.Sale, settings models.BusinessSettings) string {
	var b strings.Builder

	// Accented French text means byte length and column width differ;
	// all padding math counts runes.
	center := func(text string) {
		width := utf8.RuneCountInString(text)
		if width >= receiptWidth {
			b.WriteString(text + "\n")
			return
		}
		pad := (receiptWidth - width) / 2
		b.WriteString(strings.Repeat(" ", pad) + text + "\n")
	}
	row := func(left, right string) {
		gap := receiptWidth - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
		if gap < 1 {
			gap = 1
		}
		b.WriteString(left + strings.Repeat(" ", gap) + right + "\n")
	}
	divider := func() { b.WriteString(strings.Repeat("-", receiptWidth) + "\n") }

	center(strings.ToUpper(settings.Name))
	if settings.Address != "" {
		center(settings.Address)
	}
	if settings.Phone != "" {
		center("Tel: " + settings.Phone)
	}
	divider()
	b.WriteString("RECU: " + sale.ID + "\n")
	b.WriteString("DATE: " + formatSaleDate(sale.Date) + "\n")
	divider()
	row("Article", "Total")
	for _, item := range sale.Items {
		total := linePrice(item, sale, settings) * float64(item.Quantity)
		name := item.Name
		if utf8.RuneCountInString(name) > 24 {
			name = string([]rune(name)[:24])
		}
		row(fmt.Sprintf("%s x%d", name, item.Quantity), fmt.Sprintf("%.2f", total))
	}
	divider()
	row("Sous-total:", fmt.Sprintf("%.2f %s", sale.Subtotal, sale.Currency))
	if sale.Discount > 0 {
		row("Remise:", fmt.Sprintf("-%.2f %s", sale.Discount, sale.Currency))
	}
	row("TOTAL:", fmt.Sprintf("%.2f %s", sale.Total, symbol(sale.Currency)))
	b.WriteString("\n")
	b.WriteString("Paiement: " + string(sale.PaymentMethod) + "\n")
	if sale.PaymentMethod == models.Cash {
		row("Recu:", fmt.Sprintf("%.2f", sale.AmountReceived))
		row("Rendu:", fmt.Sprintf("%.2f", sale.Change))
	}
	b.WriteString("\n")
	center("*** " + settings.ThankYouMessage + " ***")

	return b.String()
}

// PDF renders the receipt on an 80mm roll layout.
func (s *ReceiptService) PDF(sale models.Sale, settings models.BusinessSettings) ([]byte, error) {
	height := 120.0 + float64(len(sale.Items))*5
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: 80, Ht: height},
	})
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(4, 6, 4)
	pdf.AddPage()

	const width = 72.0

	center := func(text string, size float64, style string) {
		pdf.SetFont("Courier", style, size)
		pdf.CellFormat(width, 4.5, tr(text), "", 1, "C", false, 0, "")
	}
	row := func(left, right string, style string) {
		pdf.SetFont("Courier", style, 9)
		pdf.CellFormat(width*0.62, 4.5, tr(left), "", 0, "L", false, 0, "")
		pdf.CellFormat(width*0.38, 4.5, tr(right), "", 1, "R", false, 0, "")
	}
	divider := func() {
		y := pdf.GetY() + 1
		pdf.SetDashPattern([]float64{1, 1}, 0)
		pdf.Line(4, y, 76, y)
		pdf.SetDashPattern([]float64{}, 0)
		pdf.SetY(y + 1.5)
	}

	center(strings.ToUpper(settings.Name), 12, "B")
	if settings.Address != "" {
		center(settings.Address, 8, "")
	}
	if settings.Phone != "" {
		center("Tel: "+settings.Phone, 8, "B")
	}
	divider()
	row("RECU:", sale.ID, "")
	row("DATE:", formatSaleDate(sale.Date), "")
	divider()
	row("Article", "Total", "B")
	for _, item := range sale.Items {
		total := linePrice(item, sale, settings) * float64(item.Quantity)
		row(fmt.Sprintf("%s x%d", item.Name, item.Quantity), fmt.Sprintf("%.2f", total), "")
	}
	divider()
	row("Sous-total:", fmt.Sprintf("%.2f %s", sale.Subtotal, sale.Currency), "B")
	if sale.Discount > 0 {
		row("Remise:", fmt.Sprintf("-%.2f %s", sale.Discount, sale.Currency), "B")
	}
	row("TOTAL:", fmt.Sprintf("%.2f %s", sale.Total, symbol(sale.Currency)), "B")
	pdf.Ln(2)
	row("Paiement:", string(sale.PaymentMethod), "")
	if sale.PaymentMethod == models.Cash {
		row("Recu:", fmt.Sprintf("%.2f", sale.AmountReceived), "")
		row("Rendu:", fmt.Sprintf("%.2f", sale.Change), "")
	}
	pdf.Ln(3)
	center("*** "+settings.ThankYouMessage+" ***", 8, "I")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("receipt: render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// formatSaleDate renders the stored RFC 3339 timestamp for printing.
// An unparseable date falls back to the raw string.
func formatSaleDate(date string) string {
	t, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return date
	}
	return t.Format("02/01/2006 15:04")
}
