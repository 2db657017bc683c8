package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type ReceiptController struct {
	Floor          *services.FloorService
	CurrencySymbol string
}

func NewReceiptController(floor *services.FloorService, currencySymbol string) *ReceiptController {
	return &ReceiptController{Floor: floor, CurrencySymbol: currencySymbol}
}

func (rc *ReceiptController) GetReceiptByID(c *gin.Context) {
	receipt, ok := rc.lookup(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Receipt detail", gin.H{
		"receipt":     receipt,
		"total_label": utils.FormatCurrency(receipt.Totals.Total, rc.CurrencySymbol),
	})
}

// GetReceiptPDF -> printable receipt
func (rc *ReceiptController) GetReceiptPDF(c *gin.Context) {
	receipt, ok := rc.lookup(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := services.RenderReceiptPDF(&buf, receipt, rc.CurrencySymbol); err != nil {
		utils.ErrorLogger.Printf("Error rendering receipt %s: %v", receipt.ReceiptNumber, err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	filename := strings.ReplaceAll(receipt.ReceiptNumber, "/", "-") + ".pdf"
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (rc *ReceiptController) lookup(c *gin.Context) (models.Receipt, bool) {
	id := c.Param("receipt_id")
	receipt, ok := rc.Floor.Receipt(id)
	if !ok {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("receipt %s not found", id))
		return models.Receipt{}, false
	}
	return receipt, true
}
