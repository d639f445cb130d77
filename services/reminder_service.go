package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/slack-go/slack"
	"gorm.io/gorm"

	"mealshop/models"
	"mealshop/utils"
)

// reminderLeadTime is how far in the future each Slack reminder fires.
const reminderLeadTime = 10 * time.Second

// ReminderClient is the part of the Slack API the service needs. It is
// satisfied by *slack.Client and substituted in tests.
type ReminderClient interface {
	AddUserReminder(userID, text, time string) (*slack.Reminder, error)
}

// ReminderService sends a menu deep link to every user with a configured
// Slack handle. Dispatch is best effort: failures are logged per recipient
// and never reach the admin request that triggered it.
type ReminderService struct {
	DB       *gorm.DB
	Client   ReminderClient
	Hostname string
	Pool     *Dispatcher
	Now      func() time.Time
}

func NewReminderService(db *gorm.DB, client ReminderClient, hostname string, pool *Dispatcher) *ReminderService {
	return &ReminderService{
		DB:       db,
		Client:   client,
		Hostname: hostname,
		Pool:     pool,
		Now:      time.Now,
	}
}

// CreateReminderAsync hands the fan-out to the shared worker pool and
// returns immediately.
func (rs *ReminderService) CreateReminderAsync(menu models.Menu) {
	rs.Pool.Submit(func() {
		rs.SendReminder(menu)
	})
}

// SendReminder issues one reminder per profile with a non-empty Slack
// handle, scheduled shortly in the future.
func (rs *ReminderService) SendReminder(menu models.Menu) {
	utils.InfoLogger.Printf("Sending reminder for menu %s", menu.UUID)
	message := rs.formatMenuMessage(menu)

	var profiles []models.Profile
	if err := rs.DB.Where("slack_user <> ''").Find(&profiles).Error; err != nil {
		utils.ErrorLogger.Printf("Error loading profiles for reminder: %v", err)
		return
	}

	for _, profile := range profiles {
		at := rs.Now().Add(reminderLeadTime).UTC().Unix()
		if _, err := rs.Client.AddUserReminder(profile.SlackUser, message, strconv.FormatInt(at, 10)); err != nil {
			utils.ErrorLogger.Printf("Error sending reminder to %s: %v", profile.SlackUser, err)
		}
	}
}

// formatMenuMessage builds the public deep link for a menu.
func (rs *ReminderService) formatMenuMessage(menu models.Menu) string {
	return fmt.Sprintf("%s/menu/%s", rs.Hostname, menu.UUID)
}
