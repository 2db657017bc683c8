package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type AdminController struct {
	Floor *services.FloorService
}

func NewAdminController(floor *services.FloorService) *AdminController {
	return &AdminController{Floor: floor}
}

// GetDashboardStats -> table status counts, order counts and gross sales
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", ac.Floor.Stats())
}

// GetSalesByMethod -> completed payments grouped by payment method
func (ac *AdminController) GetSalesByMethod(c *gin.Context) {
	type bucket struct {
		Count  int     `json:"count"`
		Amount float64 `json:"amount"`
	}
	sums := map[models.PaymentMethod]decimal.Decimal{}
	out := map[models.PaymentMethod]*bucket{}
	for _, p := range ac.Floor.Payments() {
		b, ok := out[p.Method]
		if !ok {
			b = &bucket{}
			out[p.Method] = b
		}
		b.Count++
		sums[p.Method] = sums[p.Method].Add(decimal.NewFromFloat(p.Amount))
	}
	for m, sum := range sums {
		out[m].Amount = sum.Round(2).InexactFloat64()
	}
	utils.RespondJSON(c, http.StatusOK, "Sales by payment method", out)
}
