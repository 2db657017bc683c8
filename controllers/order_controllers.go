package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// OrderController serves order history and the global (takeaway) cart,
// which is the order not bound to any table.
type OrderController struct {
	Floor *services.FloorService
}

func NewOrderController(floor *services.FloorService) *OrderController {
	return &OrderController{Floor: floor}
}

// GetAllOrders -> list orders, optionally ?status=open|payment_pending|closed|voided
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	status := models.OrderStatus(c.Query("status"))
	switch status {
	case "", models.OrderStatusOpen, models.OrderStatusPaymentPending, models.OrderStatusClosed, models.OrderStatusVoided:
	default:
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown order status %q", status))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", oc.Floor.ListOrders(status))
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	orderID := c.Param("order_id")
	order, ok := oc.Floor.GetOrder(orderID)
	if !ok {
		respondServiceError(c, fmt.Errorf("%w: %s", services.ErrOrderNotFound, orderID))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// VoidOrder -> cancel an open order and clear its cart
func (oc *OrderController) VoidOrder(c *gin.Context) {
	order, err := oc.Floor.VoidOrder(c.Param("order_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.Printf("Order %s voided by user %d", order.ID, c.GetUint("user_id"))
	utils.RespondJSON(c, http.StatusOK, "Order voided", order)
}

func (oc *OrderController) GetCart(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Global cart", oc.Floor.GlobalCart())
}

func (oc *OrderController) AddCartItem(c *gin.Context) {
	var req services.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, cart, err := oc.Floor.AddItemToGlobalCart(req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Item added to cart", gin.H{
		"item": item,
		"cart": cart,
	})
}

func (oc *OrderController) UpdateCartItem(c *gin.Context) {
	var update services.ItemUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if update.Action == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("action is required"))
		return
	}

	cart, err := oc.Floor.UpdateGlobalItem(c.Param("item_id"), update)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart updated", cart)
}

func (oc *OrderController) ClearCart(c *gin.Context) {
	cart, err := oc.Floor.ClearGlobalCart()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart cleared", cart)
}
