package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mealshop/models"
	"mealshop/utils"
)

type MenuOptionController struct {
	DB *gorm.DB
}

func NewMenuOptionController(db *gorm.DB) *MenuOptionController {
	return &MenuOptionController{DB: db}
}

// ListMenuOptions returns every dish option available for building menus.
func (moc *MenuOptionController) ListMenuOptions(c *gin.Context) {
	var options []models.MenuOption
	if err := moc.DB.Find(&options).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of menu options", gin.H{
		"menu_options": options,
	})
}

// AddMenuOption creates a dish option. The name must be non-empty.
func (moc *MenuOptionController) AddMenuOption(c *gin.Context) {
	type request struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Name cannot be empty"))
		return
	}

	option := models.MenuOption{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := moc.DB.Create(&option).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Redirect(http.StatusFound, "/menu_options")
}

// GetMenuOption shows one option with its customizations.
func (moc *MenuOptionController) GetMenuOption(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("menu_option_id"))

	var option models.MenuOption
	if err := moc.DB.Preload("Customizations").First(&option, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu option detail", gin.H{
		"menu_option": option,
	})
}

// AddCustomization attaches a named modifier to an option.
func (moc *MenuOptionController) AddCustomization(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("menu_option_id"))

	var option models.MenuOption
	if err := moc.DB.First(&option, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	type request struct {
		Name string `json:"name"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Name cannot be empty"))
		return
	}

	customization := models.MenuOptionCustomization{
		Name:         req.Name,
		MenuOptionID: option.ID,
	}
	if err := moc.DB.Create(&customization).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Redirect(http.StatusFound, "/menu_options/"+strconv.Itoa(id))
}
