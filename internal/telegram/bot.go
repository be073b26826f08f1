// Package telegram is the administrator's out-of-band moderation console.
// The bot alerts a configured admin chat about new pending listings and
// reports, and lets the administrator approve or reject listings with the
// same storage mutations the HTTP admin endpoints perform.
package telegram

import (
	"fmt"
	"log"
	"strings"
	"time"

	"billboardgo/backend/internal/localization"
	"billboardgo/backend/internal/models"
	"billboardgo/backend/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier is the slice of the realtime dispatcher the bot needs to tell
// owners about moderation outcomes.
type Notifier interface {
	Notify(recipientID, kind string, payload any)
}

// BotService receives Telegram updates from the admin chat and routes
// moderation commands to storage.
type BotService struct {
	BotAPI      *tgbotapi.BotAPI
	Storage     storage.Storage
	Notifier    Notifier
	Localizer   *localization.Localizer
	AdminChatID int64
	Lang        string
}

// NewBotService creates a new BotService instance.
func NewBotService(token string, adminChatID int64, s storage.Storage, n Notifier, l *localization.Localizer) (*BotService, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	log.Printf("Authorized on account %s", bot.Self.UserName)

	return &BotService{
		BotAPI:      bot,
		Storage:     s,
		Notifier:    n,
		Localizer:   l,
		AdminChatID: adminChatID,
		Lang:        "en",
	}, nil
}

// Run polls Telegram updates until the process exits.
func (s *BotService) Run() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	for update := range s.BotAPI.GetUpdatesChan(u) {
		if update.Message == nil || !update.Message.IsCommand() {
			continue
		}
		// Only the configured admin chat may drive moderation.
		if update.Message.Chat.ID != s.AdminChatID {
			continue
		}
		s.handleCommand(update.Message)
	}
}

func (s *BotService) handleCommand(msg *tgbotapi.Message) {
	args := strings.Fields(msg.CommandArguments())

	switch msg.Command() {
	case "pending":
		s.sendPendingList()
	case "approve":
		if len(args) != 1 {
			s.reply(s.Localizer.T(s.Lang, "bot.usage_approve"))
			return
		}
		s.approve(args[0])
	case "reject":
		if len(args) < 2 {
			s.reply(s.Localizer.T(s.Lang, "bot.usage_reject"))
			return
		}
		s.reject(args[0], strings.Join(args[1:], " "))
	default:
		s.reply(s.Localizer.T(s.Lang, "bot.unknown_command"))
	}
}

func (s *BotService) sendPendingList() {
	boards, err := s.Storage.SearchBillboards(storage.BillboardFilter{
		Status: models.BillboardStatusPending,
	})
	if err != nil {
		log.Printf("Failed to load pending billboards: %v", err)
		return
	}
	if len(boards) == 0 {
		s.reply(s.Localizer.T(s.Lang, "bot.pending_empty"))
		return
	}

	var b strings.Builder
	b.WriteString(s.Localizer.T(s.Lang, "bot.pending_header"))
	for _, board := range boards {
		fmt.Fprintf(&b, "\n%s - %s (%s)", board.ID, board.Title, board.City)
	}
	s.reply(b.String())
}

func (s *BotService) approve(billboardID string) {
	board, err := s.Storage.GetBillboardByID(billboardID)
	if err != nil {
		s.reply(s.Localizer.T(s.Lang, "bot.not_found", billboardID))
		return
	}

	now := time.Now()
	board.Status = models.BillboardStatusActive
	board.ApprovedAt = &now
	board.ApprovedBy = "telegram-admin"
	board.RejectReason = ""
	if err := s.Storage.UpdateBillboard(board); err != nil {
		log.Printf("Failed to approve billboard %s: %v", billboardID, err)
		return
	}

	s.Notifier.Notify(board.OwnerID, models.NotificationBillboardApproved, map[string]string{
		"billboardId": board.ID,
		"title":       board.Title,
	})
	s.reply(s.Localizer.T(s.Lang, "bot.approved", board.ID))
}

func (s *BotService) reject(billboardID, reason string) {
	board, err := s.Storage.GetBillboardByID(billboardID)
	if err != nil {
		s.reply(s.Localizer.T(s.Lang, "bot.not_found", billboardID))
		return
	}

	board.Status = models.BillboardStatusRejected
	board.RejectReason = reason
	board.ApprovedAt = nil
	board.ApprovedBy = ""
	if err := s.Storage.UpdateBillboard(board); err != nil {
		log.Printf("Failed to reject billboard %s: %v", billboardID, err)
		return
	}

	s.Notifier.Notify(board.OwnerID, models.NotificationBillboardRejected, map[string]string{
		"billboardId": board.ID,
		"title":       board.Title,
		"reason":      reason,
	})
	s.reply(s.Localizer.T(s.Lang, "bot.rejected", board.ID))
}

// AlertNewListing pushes a review prompt to the admin chat. Called by the
// HTTP handler when an owner submits a listing.
func (s *BotService) AlertNewListing(b *models.Billboard) {
	s.reply(s.Localizer.T(s.Lang, "bot.new_listing", b.ID, b.Title, b.City, b.ID, b.ID))
}

// AlertNewReport pushes a report summary to the admin chat.
func (s *BotService) AlertNewReport(r *models.Report) {
	s.reply(s.Localizer.T(s.Lang, "bot.new_report", r.Severity, r.TargetUserID, r.Reason))
}

func (s *BotService) reply(text string) {
	msg := tgbotapi.NewMessage(s.AdminChatID, text)
	if _, err := s.BotAPI.Send(msg); err != nil {
		log.Printf("Failed to send Telegram message: %v", err)
	}
}
