package controllers

import (
	"errors"
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

// menuDateLayout is the form layout the create-menu page submits; the menu
// itself is always published at 01:00:00 of the chosen day.
const menuDateLayout = "01/02/2006 15:04:05"

type MenuController struct {
	DB        *gorm.DB
	Cfg       *config.Config
	Loc       *time.Location
	Reminders *services.ReminderService
	// Now is the clock used for window checks, replaced in tests.
	Now func() time.Time
}

func NewMenuController(db *gorm.DB, cfg *config.Config, reminders *services.ReminderService) *MenuController {
	loc, err := cfg.Location()
	if err != nil {
		loc = time.UTC
	}
	return &MenuController{
		DB:        db,
		Cfg:       cfg,
		Loc:       loc,
		Reminders: reminders,
		Now:       time.Now,
	}
}

func (mc *MenuController) window() (time.Time, time.Time, error) {
	return services.TodayRange(mc.Now().In(mc.Loc), mc.Cfg.OrderCutoffHour, mc.Cfg.OrderCutoffSecond)
}

// Index is the public landing view: today's menu, if one was published.
func (mc *MenuController) Index(c *gin.Context) {
	todayMin, todayMax, err := mc.window()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var menu models.Menu
	result := mc.DB.Where("pub_date >= ? AND pub_date <= ?", todayMin, todayMax).
		Order("pub_date DESC").
		Preload("MenuOptions").
		First(&menu)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.RespondJSON(c, http.StatusOK, "No menu published today", nil)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Today's menu", gin.H{"menu": menu})
}

// ShowMenu serves a menu through its share token. Once the ordering window
// has closed the menu is withheld, but the route still answers.
func (mc *MenuController) ShowMenu(c *gin.Context) {
	menuUUID := c.Param("uuid")

	_, todayMax, err := mc.window()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	data := gin.H{}
	if !mc.Now().In(mc.Loc).After(todayMax) {
		var menu models.Menu
		result := mc.DB.Where("uuid = ? AND pub_date <= ?", menuUUID, todayMax).
			Preload("MenuOptions.Customizations").
			First(&menu)
		if result.Error == nil {
			data["menu"] = menu
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusInternalServerError, result.Error)
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Menu detail", data)
}

// DailyMenu shows today's menu to an administrator.
func (mc *MenuController) DailyMenu(c *gin.Context) {
	todayMin, todayMax, err := mc.window()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var menu models.Menu
	result := mc.DB.Where("pub_date >= ? AND pub_date <= ?", todayMin, todayMax).
		Order("pub_date DESC").
		Preload("MenuOptions").
		First(&menu)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.RespondJSON(c, http.StatusOK, "No menu published today", nil)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Daily menu", gin.H{"menu": menu})
}

// CreateMenu returns the data for the create-menu form: every option plus
// the suggested publish date.
func (mc *MenuController) CreateMenu(c *gin.Context) {
	var options []models.MenuOption
	if err := mc.DB.Find(&options).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Create menu", gin.H{
		"menu_options": options,
		"pub_date":     mc.Now().In(mc.Loc),
	})
}

// AddMenu publishes a menu for the submitted date with the selected
// options. Bad or missing input sends the admin back to the form unchanged.
func (mc *MenuController) AddMenu(c *gin.Context) {
	type request struct {
		PubDate       string `json:"pub_date" binding:"required"`
		MenuOptionIDs []uint `json:"menu_option_ids"`
		SlackURL      string `json:"slack_url"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Redirect(http.StatusFound, "/create_menu")
		return
	}

	pubDate, err := time.ParseInLocation(menuDateLayout, req.PubDate+" 01:00:00", mc.Loc)
	if err != nil {
		c.Redirect(http.StatusFound, "/create_menu")
		return
	}

	menu := models.Menu{
		PubDate:  pubDate,
		SlackURL: req.SlackURL,
	}
	if userID, ok := c.Get("user_id"); ok {
		if id, ok := userID.(uint); ok {
			menu.UserID = &id
		}
	}
	if err := mc.DB.Create(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Only option ids that actually exist are associated; unknown ids in
	// the submission are dropped.
	if len(req.MenuOptionIDs) > 0 {
		var options []models.MenuOption
		if err := mc.DB.Where("id IN ?", req.MenuOptionIDs).Find(&options).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		if err := mc.DB.Model(&menu).Association("MenuOptions").Append(&options); err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	utils.InfoLogger.Printf("Menu %s published for %s", menu.UUID, pubDate.Format("2006-01-02"))

	c.Redirect(http.StatusFound, "/daily_menu")
}

// UpdateDailyMenu is the edit view for a published menu. Editing itself is
// not implemented; the view only loads the menu.
func (mc *MenuController) UpdateDailyMenu(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("menu_id"))

	var menu models.Menu
	if err := mc.DB.Preload("MenuOptions").First(&menu, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Update daily menu", gin.H{"menu": menu})
}

// CreateReminder queues the Slack fan-out for a menu and returns
// immediately. Delivery failures never reach this request.
func (mc *MenuController) CreateReminder(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("menu_id"))

	var menu models.Menu
	if err := mc.DB.First(&menu, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	mc.Reminders.CreateReminderAsync(menu)

	c.Redirect(http.StatusFound, "/daily_menu")
}
