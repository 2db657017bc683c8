package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// PaymentController drives the checkout flow of the terminal:
// active table -> checkout -> method -> process -> complete (or cancel).
type PaymentController struct {
	Floor *services.FloorService
}

func NewPaymentController(floor *services.FloorService) *PaymentController {
	return &PaymentController{Floor: floor}
}

// GetPaymentState -> current checkout with totals from the live cart
func (pc *PaymentController) GetPaymentState(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Payment state", pc.Floor.PaymentSnapshot())
}

func (pc *PaymentController) SetActiveTable(c *gin.Context) {
	var body struct {
		TableID string `json:"table_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	pc.step(c, "Active table set", func() (services.CheckoutSnapshot, error) {
		return pc.Floor.SetActiveTable(body.TableID)
	})
}

func (pc *PaymentController) ClearActiveTable(c *gin.Context) {
	pc.step(c, "Active table cleared", pc.Floor.ClearActiveTable)
}

func (pc *PaymentController) BeginCheckout(c *gin.Context) {
	pc.step(c, "Checkout started", pc.Floor.BeginCheckout)
}

func (pc *PaymentController) AttachCustomer(c *gin.Context) {
	var body struct {
		CustomerID string `json:"customer_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	pc.step(c, "Customer attached", func() (services.CheckoutSnapshot, error) {
		return pc.Floor.AttachCustomer(body.CustomerID)
	})
}

func (pc *PaymentController) SelectMethod(c *gin.Context) {
	var body struct {
		Method models.PaymentMethod `json:"payment_method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	pc.step(c, "Payment method selected", func() (services.CheckoutSnapshot, error) {
		return pc.Floor.SelectPaymentMethod(body.Method)
	})
}

func (pc *PaymentController) Process(c *gin.Context) {
	pc.step(c, "Payment processing", pc.Floor.ProcessPayment)
}

// Complete -> settle the payment. Cash needs cash_received, split needs
// split_ways >= 2.
func (pc *PaymentController) Complete(c *gin.Context) {
	var tender services.Tender
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&tender); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
	}

	res, err := pc.Floor.CompletePayment(tender)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.Printf("Payment %s completed for order %s (%s %.2f)",
		res.Payment.ID, res.Order.ID, res.Payment.Method, res.Payment.Amount)
	utils.RespondJSON(c, http.StatusOK, "Payment completed", res)
}

func (pc *PaymentController) Cancel(c *gin.Context) {
	pc.step(c, "Payment cancelled", pc.Floor.CancelPayment)
}

func (pc *PaymentController) GetAllPayments(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "All payments", pc.Floor.Payments())
}

func (pc *PaymentController) step(c *gin.Context, message string, fn func() (services.CheckoutSnapshot, error)) {
	snap, err := fn()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, message, snap)
}
