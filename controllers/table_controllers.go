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

type TableController struct {
	Floor *services.FloorService
}

func NewTableController(floor *services.FloorService) *TableController {
	return &TableController{Floor: floor}
}

// GetAllTables -> every table with its status and cart total
func (tc *TableController) GetAllTables(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "List of tables", tc.Floor.ListTables())
}

func (tc *TableController) GetTableByID(c *gin.Context) {
	tableID := c.Param("table_id")
	table, ok := tc.Floor.GetTable(tableID)
	if !ok {
		respondServiceError(c, fmt.Errorf("%w: %s", services.ErrTableNotFound, tableID))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// UpdateTablePosition -> move a table on the floor plan
func (tc *TableController) UpdateTablePosition(c *gin.Context) {
	var body struct {
		X *float64 `json:"x" binding:"required"`
		Y *float64 `json:"y" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Floor.UpdateTablePosition(c.Param("table_id"), models.Position{X: *body.X, Y: *body.Y})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table position updated", table)
}

// UpdateTableStatus -> manual status change along the table lifecycle
func (tc *TableController) UpdateTableStatus(c *gin.Context) {
	var body struct {
		Status models.TableStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Floor.UpdateTableStatus(c.Param("table_id"), body.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.Printf("Table %s status changed to %s", table.ID, table.Status)
	utils.RespondJSON(c, http.StatusOK, "Table status updated", table)
}

// AddItem -> ring up a menu item on the table cart
func (tc *TableController) AddItem(c *gin.Context) {
	var req services.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, table, err := tc.Floor.AddItemToTable(c.Param("table_id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Item added to table", gin.H{
		"item":  item,
		"table": table,
	})
}

// UpdateItem -> increase / decrease / remove / discount one cart line
func (tc *TableController) UpdateItem(c *gin.Context) {
	var update services.ItemUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if update.Action == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("action is required"))
		return
	}

	table, err := tc.Floor.UpdateTableItem(c.Param("table_id"), c.Param("item_id"), update)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table cart updated", table)
}

// ClearCart -> empty the table cart without payment
func (tc *TableController) ClearCart(c *gin.Context) {
	table, err := tc.Floor.ClearTableCart(c.Param("table_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table cart cleared", table)
}

// MarkTableClean -> needs_cleaning back to available
func (tc *TableController) MarkTableClean(c *gin.Context) {
	cleanedBy := fmt.Sprintf("user:%d", c.GetUint("user_id"))

	table, err := tc.Floor.CleanTable(c.Param("table_id"), cleanedBy)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.Printf("Table %s cleaned by %s", table.ID, cleanedBy)
	utils.RespondJSON(c, http.StatusOK, "Table marked as clean", table)
}
