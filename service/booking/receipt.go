package bookingsvc

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"swiftride/model"
	"swiftride/util/money"
)

const receiptDate = "2006-01-02"

// RenderReceipt lays out a one-page A4 receipt. Amounts are rounded to two
// decimals here and nowhere earlier.
func RenderReceipt(b *model.Booking) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("SwiftRide receipt #%d", b.ID), true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(190, 10, "SwiftRide")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	line := func(label, value string) {
		pdf.CellFormat(60, 8, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(130, 8, value, "", 1, "L", false, 0, "")
	}
	line("Booking", fmt.Sprintf("#%d", b.ID))
	if b.PaymentInvoice != nil {
		line("Invoice", *b.PaymentInvoice)
	}
	if b.PaidAt != nil {
		line("Paid at", b.PaidAt.UTC().Format("2006-01-02 15:04:05"))
	}
	line("Customer", b.CustomerName)
	line("Email", b.CustomerEmail)
	if b.Vehicle != nil {
		line("Vehicle", fmt.Sprintf("%s %s (%d) %s", b.Vehicle.Make, b.Vehicle.Model, b.Vehicle.Year, b.Vehicle.LicensePlate))
	}
	line("Period", fmt.Sprintf("%s to %s", b.StartDate.UTC().Format(receiptDate), b.EndDate.UTC().Format(receiptDate)))
	line("Pickup", b.PickupLocation)
	line("Dropoff", b.DropoffLocation)
	pdf.Ln(4)

	line(fmt.Sprintf("%d day(s) x %s", b.TotalDays, money.Format(b.PricePerDay)), money.Format(b.Subtotal))
	line("Tax", money.Format(b.Tax))
	line("Service fee", money.Format(b.ServiceFee))
	pdf.SetFont("Arial", "B", 12)
	line("Total", money.Format(b.TotalAmount))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
