package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type CustomerController struct {
	Floor *services.FloorService
}

func NewCustomerController(floor *services.FloorService) *CustomerController {
	return &CustomerController{Floor: floor}
}

func (cc *CustomerController) GetAllCustomers(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "List of customers", cc.Floor.ListCustomers())
}

// CreateCustomer -> register a customer; phone numbers are unique
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	var req services.CustomerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	customer, err := cc.Floor.RegisterCustomer(req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.Printf("New customer registered: %s", customer.ID)
	utils.RespondJSON(c, http.StatusCreated, "Customer created", customer)
}

func (cc *CustomerController) GetCustomerByID(c *gin.Context) {
	id := c.Param("customer_id")
	customer, ok := cc.Floor.GetCustomer(id)
	if !ok {
		respondServiceError(c, fmt.Errorf("%w: %s", services.ErrCustomerNotFound, id))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer detail", customer)
}

// SearchByPhone -> ?phone=<at least 3 digits>; shorter fragments match nothing
func (cc *CustomerController) SearchByPhone(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Matching customers", cc.Floor.SearchCustomersByPhone(c.Query("phone")))
}
