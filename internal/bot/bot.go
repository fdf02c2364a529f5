// Package bot wires the Telegram transport to the order and archive
// services. It is a thin adapter: it validates and trims user input, picks
// the display name, and formats replies; every invariant lives below it in
// the services and the store's key space.
//
// Commands: /start, /help, /food <text>, /summary, /reset. Plain text in
// groups and supergroups is passively archived per user; the help text
// deliberately does not mention that.
package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/gdgvda/tech-pizza-delivery-waiter-bot/internal/keys"
	"github.com/gdgvda/tech-pizza-delivery-waiter-bot/internal/observability"
	"github.com/gdgvda/tech-pizza-delivery-waiter-bot/internal/services"
	"github.com/gdgvda/tech-pizza-delivery-waiter-bot/internal/sysutil"
)

// Sender abstracts the outbound half of the Telegram API so handlers can be
// exercised in tests without the network.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot dispatches incoming Telegram updates to the services.
type Bot struct {
	api     *tgbotapi.BotAPI
	sender  Sender
	orders  *services.OrderService
	archive *services.ArchiveService
	limiter *UserLimiter
	now     func() time.Time
}

// New builds a Bot around an authorized API client and the two services.
// rps/burst configure the per-user command limiter.
func New(api *tgbotapi.BotAPI, orders *services.OrderService, archive *services.ArchiveService, rps float64, burst int) *Bot {
	return &Bot{
		api:     api,
		sender:  api,
		orders:  orders,
		archive: archive,
		limiter: NewUserLimiter(rps, burst),
		now:     time.Now,
	}
}

// Run consumes updates via long polling until ctx is canceled.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	log.Info().Str("bot", b.api.Self.UserName).Msg("bot polling started")
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			log.Info().Msg("bot polling stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate routes one update: commands to their handlers, plain group
// text to the archive. Anything else is ignored.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	b.archiveGroupMessage(ctx, msg)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	cmd := msg.Command()
	if !b.limiter.Allow(msg.From.ID) {
		log.Warn().
			Int64("user_id", msg.From.ID).
			Str("command", cmd).
			Msg("command rate limited")
		observability.CountCommand(cmd, "rate_limited")
		return
	}

	switch cmd {
	case "start":
		b.handleStart(msg)
	case "help":
		b.handleHelp(msg)
	case "food":
		b.handleFood(ctx, msg)
	case "summary":
		b.handleSummary(ctx, msg)
	case "reset":
		b.handleReset(ctx, msg)
	}
}

func (b *Bot) handleStart(msg *tgbotapi.Message) {
	text := fmt.Sprintf("Hi %s! I'm the Food Order Bot 🍕.\nUse /help to see what I can do.", msg.From.FirstName)
	b.reply(msg.Chat.ID, text, "")
	observability.CountCommand("start", "ok")
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) {
	// Message archival is deliberately not mentioned here.
	help := "Here's how to use me:\n\n" +
		"➡️ Place or update your order for today: `/food <your food choice>`\n" +
		"   Example: `/food Pizza Margherita`\n" +
		"   *Note:* Using /food again today replaces your previous order.\n\n" +
		"🗑️ Remove your order for today: `/reset`\n\n" +
		"📋 See all orders placed *today*: `/summary`\n\n" +
		"ℹ️ Show this help message: /help"
	b.reply(msg.Chat.ID, help, tgbotapi.ModeMarkdown)
	observability.CountCommand("help", "ok")
}

func (b *Bot) handleFood(ctx context.Context, msg *tgbotapi.Message) {
	food := strings.TrimSpace(msg.CommandArguments())
	if food == "" {
		b.reply(msg.Chat.ID, "Please tell me what food you want! Usage: `/food <food name>`", tgbotapi.ModeMarkdown)
		observability.CountCommand("food", "invalid")
		return
	}

	owner := DisplayName(msg.From)
	log.Info().
		Int64("user_id", msg.From.ID).
		Str("owner", owner).
		Str("food", food).
		Msg("order submitted")

	if b.orders.PlaceOrUpdateOrder(ctx, owner, food, b.now()) {
		b.reply(msg.Chat.ID, fmt.Sprintf("✅ Got it, %s! Your order for today is now: %s", msg.From.FirstName, food), "")
		observability.CountCommand("food", "ok")
		return
	}
	b.reply(msg.Chat.ID, "😥 Error saving/updating order.", "")
	observability.CountCommand("food", "error")
}

func (b *Bot) handleSummary(ctx context.Context, msg *tgbotapi.Message) {
	dateStr := keys.DateString(b.now())
	orders := b.orders.ListOrdersForDay(ctx, dateStr)
	if len(orders) == 0 {
		b.reply(msg.Chat.ID, fmt.Sprintf("🤔 No orders placed yet for today (%s).", dateStr), "")
		observability.CountCommand("summary", "ok")
		return
	}
	b.reply(msg.Chat.ID, FormatSummary(dateStr, orders), tgbotapi.ModeMarkdown)
	observability.CountCommand("summary", "ok")
}

func (b *Bot) handleReset(ctx context.Context, msg *tgbotapi.Message) {
	owner := DisplayName(msg.From)
	dateStr := keys.DateString(b.now())

	if b.orders.RemoveOrder(ctx, owner, dateStr) {
		b.reply(msg.Chat.ID, fmt.Sprintf("🗑️ Okay, %s, removed your order for today.", msg.From.FirstName), "")
	} else {
		b.reply(msg.Chat.ID, fmt.Sprintf("🤔 %s, couldn't find an order for you today.", msg.From.FirstName), "")
	}
	observability.CountCommand("reset", "ok")
}

// archiveGroupMessage stores plain text sent in groups/supergroups under the
// sender's stable numeric ID. Private chats and empty texts are skipped, and
// a store failure is logged without replying: archival is invisible to users.
func (b *Bot) archiveGroupMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.Text == "" {
		return
	}
	if !msg.Chat.IsGroup() && !msg.Chat.IsSuperGroup() {
		return
	}

	if !b.archive.RecordMessage(ctx, msg.From.ID, msg.Text, msg.Time()) {
		log.Warn().
			Int64("user_id", msg.From.ID).
			Int64("chat_id", msg.Chat.ID).
			Msg("failed to archive message")
		observability.CountCommand("message", "error")
		return
	}
	observability.CountCommand("message", "ok")
}

// reply sends a text message to the chat, optionally with a parse mode.
// Send failures are logged; there is nothing useful to tell the chat.
func (b *Bot) reply(chatID int64, text, parseMode string) {
	out := tgbotapi.NewMessage(chatID, text)
	out.ParseMode = parseMode
	if _, err := b.sender.Send(out); err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("send reply")
	}
}

// DisplayName picks the caller-facing identifier for a user, in priority
// order: @handle, first name, numeric fallback. The result doubles as the
// order's identity within a day, so it must never be empty.
func DisplayName(u *tgbotapi.User) string {
	var handle string
	if u.UserName != "" {
		handle = "@" + u.UserName
	}
	return sysutil.FirstNonEmpty(handle, u.FirstName, fmt.Sprintf("User ID %d", u.ID))
}
