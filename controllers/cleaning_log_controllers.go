package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type CleaningLogController struct {
	Floor *services.FloorService
}

func NewCleaningLogController(floor *services.FloorService) *CleaningLogController {
	return &CleaningLogController{Floor: floor}
}

// GetAllCleaningLogs -> optionally filtered with ?table_id=
func (clc *CleaningLogController) GetAllCleaningLogs(c *gin.Context) {
	logs := clc.Floor.CleaningLogs()
	if tableID := c.Query("table_id"); tableID != "" {
		filtered := make([]models.CleaningLog, 0, len(logs))
		for _, l := range logs {
			if l.TableID == tableID {
				filtered = append(filtered, l)
			}
		}
		logs = filtered
	}
	utils.RespondJSON(c, http.StatusOK, "All cleaning logs", logs)
}
