package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"mealshop/config"
	"mealshop/controllers"
	"mealshop/middlewares"
	"mealshop/models"
	"mealshop/utils"
)

func orderTestConfig() *config.Config {
	return &config.Config{
		Timezone:          "America/Santiago",
		OrderCutoffHour:   11,
		OrderCutoffSecond: 0,
	}
}

type orderFixture struct {
	db      *gorm.DB
	ctrl    *controllers.OrderController
	router  *gin.Engine
	user    models.User
	menu    models.Menu
	optionA models.MenuOption
	optionB models.MenuOption
	custA1  models.MenuOptionCustomization
	custA2  models.MenuOptionCustomization
	custB1  models.MenuOptionCustomization
	token   string
	morning time.Time
	evening time.Time
}

// newOrderFixture seeds a menu for 2024-05-06 with two options, two
// customizations on option A and one on option B, plus an authenticated
// employee. The controller clock starts in the morning, inside the window.
func newOrderFixture(t *testing.T, name string) *orderFixture {
	t.Helper()
	utils.InitLogger()

	db := openTestDB(t, name)
	cfg := orderTestConfig()

	loc, err := time.LoadLocation(cfg.Timezone)
	assert.NoError(t, err)

	f := &orderFixture{
		db:      db,
		morning: time.Date(2024, 5, 6, 9, 0, 0, 0, loc),
		evening: time.Date(2024, 5, 6, 12, 30, 0, 0, loc),
	}

	f.user = models.User{Name: "Employee", Email: name + "@example.com", Password: "x"}
	assert.NoError(t, db.Create(&f.user).Error)

	f.optionA = models.MenuOption{Name: "Corn pie", Description: "With salad"}
	f.optionB = models.MenuOption{Name: "Chicken Nugget", Description: "Rice and salad"}
	assert.NoError(t, db.Create(&f.optionA).Error)
	assert.NoError(t, db.Create(&f.optionB).Error)

	f.custA1 = models.MenuOptionCustomization{Name: "No salad", MenuOptionID: f.optionA.ID}
	f.custA2 = models.MenuOptionCustomization{Name: "Extra sauce", MenuOptionID: f.optionA.ID}
	f.custB1 = models.MenuOptionCustomization{Name: "No rice", MenuOptionID: f.optionB.ID}
	assert.NoError(t, db.Create(&f.custA1).Error)
	assert.NoError(t, db.Create(&f.custA2).Error)
	assert.NoError(t, db.Create(&f.custB1).Error)

	f.menu = models.Menu{PubDate: time.Date(2024, 5, 6, 1, 0, 0, 0, loc)}
	assert.NoError(t, db.Create(&f.menu).Error)
	assert.NoError(t, db.Model(&f.menu).Association("MenuOptions").Append(&f.optionA, &f.optionB))

	f.token, err = utils.GenerateToken(f.user.ID, nil)
	assert.NoError(t, err)

	f.ctrl = controllers.NewOrderController(db, cfg)
	f.ctrl.Now = func() time.Time { return f.morning }

	gin.SetMode(gin.TestMode)
	f.router = gin.New()
	auth := f.router.Group("/")
	auth.Use(middlewares.AuthRequired())
	auth.GET("/menus/:menu_id/choose_menu", f.ctrl.ChooseMenu)
	auth.POST("/menus/:menu_id/add_order", f.ctrl.AddOrder)
	auth.POST("/orders/:order_id/add_order_customizations", f.ctrl.AddOrderCustomizations)
	auth.GET("/view_orders", middlewares.RequirePermission(models.PermViewOrder), f.ctrl.ViewOrders)

	return f
}

func (f *orderFixture) addOrder(t *testing.T, optionID uint) {
	t.Helper()
	w := doJSON(t, f.router, "POST", fmt.Sprintf("/menus/%d/add_order", f.menu.ID), f.token,
		map[string]interface{}{"menu_option_id": optionID})
	assert.Equal(t, http.StatusFound, w.Code)
}

func (f *orderFixture) currentOrder(t *testing.T) models.Order {
	t.Helper()
	var order models.Order
	assert.NoError(t, f.db.Where("user_id = ? AND menu_id = ?", f.user.ID, f.menu.ID).First(&order).Error)
	return order
}

func (f *orderFixture) customizationIDs(t *testing.T, orderID uint) map[uint]bool {
	t.Helper()
	var rows []models.OrderCustomization
	assert.NoError(t, f.db.Where("order_id = ?", orderID).Find(&rows).Error)
	ids := make(map[uint]bool, len(rows))
	for _, row := range rows {
		ids[row.MenuOptionCustomID] = true
	}
	return ids
}

func TestAddOrderTwiceKeepsSingleRow(t *testing.T) {
	f := newOrderFixture(t, "orders_upsert")

	f.addOrder(t, f.optionA.ID)
	f.addOrder(t, f.optionB.ID)

	var count int64
	assert.NoError(t, f.db.Model(&models.Order{}).
		Where("user_id = ? AND menu_id = ?", f.user.ID, f.menu.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	assert.Equal(t, f.optionB.ID, f.currentOrder(t).MenuOptionID)
}

func TestReplacingOptionDiscardsCustomizations(t *testing.T) {
	f := newOrderFixture(t, "orders_replace")

	f.addOrder(t, f.optionA.ID)
	order := f.currentOrder(t)

	w := doJSON(t, f.router, "POST", fmt.Sprintf("/orders/%d/add_order_customizations", order.ID), f.token,
		map[string]interface{}{"customization_ids": []uint{f.custA1.ID}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Len(t, f.customizationIDs(t, order.ID), 1)

	// Choosing a different option resets the set.
	f.addOrder(t, f.optionB.ID)
	assert.Len(t, f.customizationIDs(t, order.ID), 0)
}

func TestCustomizationsAreFullyReplaced(t *testing.T) {
	f := newOrderFixture(t, "orders_customs")

	f.addOrder(t, f.optionA.ID)
	order := f.currentOrder(t)
	url := fmt.Sprintf("/orders/%d/add_order_customizations", order.ID)

	w := doJSON(t, f.router, "POST", url, f.token,
		map[string]interface{}{"customization_ids": []uint{f.custA1.ID}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, map[uint]bool{f.custA1.ID: true}, f.customizationIDs(t, order.ID))

	// A second submission replaces, never merges.
	w = doJSON(t, f.router, "POST", url,
		f.token, map[string]interface{}{"customization_ids": []uint{f.custA2.ID}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, map[uint]bool{f.custA2.ID: true}, f.customizationIDs(t, order.ID))

	// Ids from another option's set are ignored.
	w = doJSON(t, f.router, "POST", url, f.token,
		map[string]interface{}{"customization_ids": []uint{f.custA1.ID, f.custB1.ID}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, map[uint]bool{f.custA1.ID: true}, f.customizationIDs(t, order.ID))

	// An empty submission clears everything.
	w = doJSON(t, f.router, "POST", url, f.token,
		map[string]interface{}{"customization_ids": []uint{}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Len(t, f.customizationIDs(t, order.ID), 0)
}

func TestCustomizationsForMissingOrder(t *testing.T) {
	f := newOrderFixture(t, "orders_missing")

	w := doJSON(t, f.router, "POST", "/orders/9999/add_order_customizations", f.token,
		map[string]interface{}{"customization_ids": []uint{}})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChooseMenuInsideAndOutsideWindow(t *testing.T) {
	f := newOrderFixture(t, "orders_window")

	f.addOrder(t, f.optionA.ID)

	url := fmt.Sprintf("/menus/%d/choose_menu", f.menu.ID)
	w := doJSON(t, f.router, "GET", url, f.token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Contains(t, data, "menu")
	assert.Contains(t, data, "order")
	assert.Contains(t, data, "customization_user")

	// Past the cutoff the route still answers but withholds the context.
	f.ctrl.Now = func() time.Time { return f.evening }
	w = doJSON(t, f.router, "GET", url, f.token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data = decodeData(t, w)
	assert.NotContains(t, data, "menu")
	assert.NotContains(t, data, "order")
}

func TestChooseMenuUnknownMenuRedirectsHome(t *testing.T) {
	f := newOrderFixture(t, "orders_nomenu")

	w := doJSON(t, f.router, "GET", "/menus/9999/choose_menu", f.token, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestAddOrderAfterCutoffWritesNothing(t *testing.T) {
	f := newOrderFixture(t, "orders_cutoff")

	f.ctrl.Now = func() time.Time { return f.evening }
	f.addOrder(t, f.optionA.ID)

	var count int64
	assert.NoError(t, f.db.Model(&models.Order{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestViewOrdersPermissions(t *testing.T) {
	f := newOrderFixture(t, "orders_perms")

	f.addOrder(t, f.optionA.ID)

	// Anonymous: redirected, not served.
	w := doJSON(t, f.router, "GET", "/view_orders", "", nil)
	assert.Equal(t, http.StatusFound, w.Code)

	// Authenticated but without the flag: still redirected.
	w = doJSON(t, f.router, "GET", "/view_orders", f.token, nil)
	assert.Equal(t, http.StatusFound, w.Code)

	// With the view_order flag: the day's orders are served.
	viewerToken, err := utils.GenerateToken(f.user.ID, []string{models.PermViewOrder})
	assert.NoError(t, err)
	w = doJSON(t, f.router, "GET", "/view_orders", viewerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	orders, ok := data["orders"].([]interface{})
	assert.True(t, ok)
	assert.Len(t, orders, 1)
}
