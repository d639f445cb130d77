package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mealshop/config"
	"mealshop/models"
	"mealshop/services"
	"mealshop/utils"
)

type OrderController struct {
	DB  *gorm.DB
	Cfg *config.Config
	Loc *time.Location
	// Now is the clock used for window checks, replaced in tests.
	Now func() time.Time
}

func NewOrderController(db *gorm.DB, cfg *config.Config) *OrderController {
	loc, err := cfg.Location()
	if err != nil {
		loc = time.UTC
	}
	return &OrderController{
		DB:  db,
		Cfg: cfg,
		Loc: loc,
		Now: time.Now,
	}
}

func (oc *OrderController) window() (time.Time, time.Time, error) {
	return services.TodayRange(oc.Now().In(oc.Loc), oc.Cfg.OrderCutoffHour, oc.Cfg.OrderCutoffSecond)
}

func chooseMenuPath(menuID uint) string {
	return fmt.Sprintf("/menus/%d/choose_menu", menuID)
}

// ChooseMenu renders the ordering view: the menu, and the caller's existing
// order with its chosen customization ids if there is one. Past the cutoff
// the route still answers but withholds the menu context.
func (oc *OrderController) ChooseMenu(c *gin.Context) {
	menuID, _ := strconv.Atoi(c.Param("menu_id"))

	_, todayMax, err := oc.window()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	data := gin.H{}
	if !oc.Now().In(oc.Loc).After(todayMax) {
		var menu models.Menu
		result := oc.DB.Where("id = ? AND pub_date <= ?", menuID, todayMax).
			Preload("MenuOptions.Customizations").
			First(&menu)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				c.Redirect(http.StatusFound, "/")
				return
			}
			utils.RespondError(c, http.StatusInternalServerError, result.Error)
			return
		}
		data["menu"] = menu

		userID := c.GetUint("user_id")
		var order models.Order
		err := oc.DB.Where("user_id = ? AND menu_id = ?", userID, menu.ID).
			Preload("Customizations").
			First(&order).Error
		if err == nil {
			customizationIDs := make([]uint, 0, len(order.Customizations))
			for _, customization := range order.Customizations {
				customizationIDs = append(customizationIDs, customization.MenuOptionCustomID)
			}
			data["order"] = order
			data["customization_user"] = customizationIDs
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Choose menu", data)
}

// AddOrder places or replaces the caller's order for a menu. There is at
// most one order per (user, menu): a second submission overwrites the
// selected option and purchase time and discards the previous
// customizations. Any missing input, unknown entity or closed window sends
// the user back to the ordering view without writing.
func (oc *OrderController) AddOrder(c *gin.Context) {
	menuID, _ := strconv.Atoi(c.Param("menu_id"))
	backPath := chooseMenuPath(uint(menuID))

	type request struct {
		MenuOptionID uint `json:"menu_option_id"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil || req.MenuOptionID == 0 {
		c.Redirect(http.StatusFound, backPath)
		return
	}

	_, todayMax, err := oc.window()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	now := oc.Now().In(oc.Loc)
	if now.After(todayMax) {
		c.Redirect(http.StatusFound, backPath)
		return
	}

	var menu models.Menu
	if err := oc.DB.First(&menu, menuID).Error; err != nil {
		c.Redirect(http.StatusFound, backPath)
		return
	}
	var option models.MenuOption
	if err := oc.DB.First(&option, req.MenuOptionID).Error; err != nil {
		c.Redirect(http.StatusFound, backPath)
		return
	}

	userID := c.GetUint("user_id")

	var order models.Order
	err = oc.DB.Where("user_id = ? AND menu_id = ?", userID, menu.ID).First(&order).Error
	switch {
	case err == nil:
		order.MenuOptionID = option.ID
		order.PurchasedDate = now
		if err := oc.DB.Save(&order).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		order = models.Order{
			UserID:        &userID,
			MenuID:        menu.ID,
			MenuOptionID:  option.ID,
			PurchasedDate: now,
		}
		if err := oc.DB.Create(&order).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// A new selection always starts from a clean customization set.
	if err := oc.DB.Where("order_id = ?", order.ID).Delete(&models.OrderCustomization{}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Redirect(http.StatusFound, backPath)
}

// AddOrderCustomizations replaces the order's customization set with the
// submitted ids. The whole set is deleted and rebuilt; an empty submission
// clears it. Ids that do not belong to the order's current option are
// ignored.
func (oc *OrderController) AddOrderCustomizations(c *gin.Context) {
	orderID, _ := strconv.Atoi(c.Param("order_id"))

	var order models.Order
	if err := oc.DB.First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	backPath := chooseMenuPath(order.MenuID)

	type request struct {
		CustomizationIDs []uint `json:"customization_ids"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Redirect(http.StatusFound, backPath)
		return
	}

	var customizations []models.MenuOptionCustomization
	if err := oc.DB.Where("menu_option_id = ?", order.MenuOptionID).Find(&customizations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	submitted := make(map[uint]bool, len(req.CustomizationIDs))
	for _, id := range req.CustomizationIDs {
		submitted[id] = true
	}

	if err := oc.DB.Where("order_id = ?", order.ID).Delete(&models.OrderCustomization{}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	for _, customization := range customizations {
		if !submitted[customization.ID] {
			continue
		}
		row := models.OrderCustomization{
			OrderID:            order.ID,
			MenuOptionCustomID: customization.ID,
		}
		if err := oc.DB.Create(&row).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	c.Redirect(http.StatusFound, backPath)
}

// ViewOrders lists every order purchased today, across the whole day rather
// than only the ordering window.
func (oc *OrderController) ViewOrders(c *gin.Context) {
	todayMin, todayMax, err := services.TodayRange(oc.Now().In(oc.Loc), 23, 59)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var orders []models.Order
	if err := oc.DB.Where("purchased_date >= ? AND purchased_date <= ?", todayMin, todayMax).
		Preload("User").
		Preload("MenuOption").
		Preload("Customizations.MenuOptionCustom").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Orders of the day", gin.H{
		"orders": orders,
	})
}
