package controllers

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// MenuController exposes the read-only catalog.
type MenuController struct {
	Floor *services.FloorService
}

func NewMenuController(floor *services.FloorService) *MenuController {
	return &MenuController{Floor: floor}
}

// GetAllMenus -> optionally filtered with ?category=
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	menus := mc.Floor.MenuItems()
	if category := c.Query("category"); category != "" {
		filtered := make([]models.MenuItem, 0, len(menus))
		for _, m := range menus {
			if strings.EqualFold(m.Category, category) {
				filtered = append(filtered, m)
			}
		}
		menus = filtered
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
}

// GetMenuByID -> a menu item with the modifier groups it offers
func (mc *MenuController) GetMenuByID(c *gin.Context) {
	id := c.Param("menu_id")
	menu, ok := mc.Floor.MenuItem(id)
	if !ok {
		respondServiceError(c, fmt.Errorf("%w: %s", services.ErrMenuItemNotFound, id))
		return
	}

	groups := []models.ModifierGroup{}
	for _, gid := range append([]string{menu.SizeGroupID}, menu.AddOnGroupIDs...) {
		if g, ok := mc.Floor.ModifierGroup(gid); ok {
			groups = append(groups, g)
		}
	}
	utils.RespondJSON(c, http.StatusOK, "Menu detail", gin.H{
		"menu":            menu,
		"modifier_groups": groups,
	})
}

func (mc *MenuController) GetModifierGroups(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "List of modifier groups", mc.Floor.ModifierGroups())
}

// GetAllCategories -> distinct menu categories with item counts
func (mc *MenuController) GetAllCategories(c *gin.Context) {
	counts := map[string]int{}
	for _, m := range mc.Floor.MenuItems() {
		counts[m.Category]++
	}
	type category struct {
		Name      string `json:"name"`
		ItemCount int    `json:"item_count"`
	}
	out := make([]category, 0, len(counts))
	for name, n := range counts {
		out = append(out, category{Name: name, ItemCount: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	utils.RespondJSON(c, http.StatusOK, "All menu categories", out)
}
