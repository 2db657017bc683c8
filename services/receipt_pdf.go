package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

const (
	receiptWidth  = 80.0 // mm, thermal roll
	receiptMargin = 4.0
	lineHeight    = 5.0
)

// RenderReceiptPDF writes a printable receipt to w.
func RenderReceiptPDF(w io.Writer, r models.Receipt, currency string) error {
	height := 90.0 + float64(len(r.Items))*2*lineHeight
	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "mm",
		Size:    fpdf.SizeType{Wd: receiptWidth, Ht: height},
	})
	pdf.SetMargins(receiptMargin, receiptMargin, receiptMargin)
	pdf.SetAutoPageBreak(false, receiptMargin)
	pdf.AddPage()

	inner := receiptWidth - 2*receiptMargin
	money := func(v float64) string { return utils.FormatCurrency(v, currency) }
	row := func(label, value string) {
		pdf.CellFormat(inner*0.6, lineHeight, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(inner*0.4, lineHeight, value, "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(inner, lineHeight+1, "RECEIPT", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(inner, lineHeight, r.ReceiptNumber, "", 1, "C", false, 0, "")
	pdf.CellFormat(inner, lineHeight, r.CreatedAt.Format("2006-01-02 15:04"), "", 1, "C", false, 0, "")
	if r.TableName != "" {
		row("Table", r.TableName)
	}
	if r.CustomerName != "" {
		row("Customer", r.CustomerName)
	}
	pdf.Line(receiptMargin, pdf.GetY()+1, receiptWidth-receiptMargin, pdf.GetY()+1)
	pdf.Ln(2)

	for _, it := range r.Items {
		row(fmt.Sprintf("%dx %s", it.Quantity, it.Name), money(it.Subtotal))
		var extra []string
		if len(it.AddOnNames) > 0 {
			extra = append(extra, "+ "+strings.Join(it.AddOnNames, ", "))
		}
		if it.Discount > 0 {
			extra = append(extra, "disc. "+money(it.Discount))
		}
		if it.Notes != "" {
			extra = append(extra, it.Notes)
		}
		if len(extra) > 0 {
			pdf.SetFont("Helvetica", "I", 7)
			pdf.CellFormat(inner, lineHeight-1, "   "+strings.Join(extra, " | "), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 8)
		}
	}

	pdf.Line(receiptMargin, pdf.GetY()+1, receiptWidth-receiptMargin, pdf.GetY()+1)
	pdf.Ln(2)
	row("Subtotal", money(r.Totals.Subtotal))
	if r.Totals.Discount > 0 {
		row("Discount", "-"+money(r.Totals.Discount))
	}
	row("Tax", money(r.Totals.Tax))
	pdf.SetFont("Helvetica", "B", 9)
	row("Total", money(r.Totals.Total))
	pdf.SetFont("Helvetica", "", 8)
	row("Paid ("+string(r.PaymentMethod)+")", money(r.AmountPaid))
	if r.Change > 0 {
		row("Change", money(r.Change))
	}

	return pdf.Output(w)
}
