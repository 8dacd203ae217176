// Package bot implements the Telegram front end: album-set uploads per chat,
// on-demand anniversary queries, and daily reminders.
package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	retry "github.com/avast/retry-go"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/cesargomez89/albumdays/internal/birthdays"
	"github.com/cesargomez89/albumdays/internal/constants"
	"github.com/cesargomez89/albumdays/internal/domain"
	"github.com/cesargomez89/albumdays/internal/exporter"
	"github.com/cesargomez89/albumdays/internal/logger"
	"github.com/cesargomez89/albumdays/internal/store"
)

const maxDocumentBytes = 32 << 20

type Bot struct {
	api         *tgbotapi.BotAPI
	db          *store.DB
	horizonDays int
	log         *logger.Logger
	httpClient  *http.Client
}

func New(token string, db *store.DB, horizonDays int, log *logger.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot api: %w", err)
	}
	if log == nil {
		log = logger.Default()
	}
	return &Bot{
		api:         api,
		db:          db,
		horizonDays: horizonDays,
		log:         log,
		httpClient:  &http.Client{Timeout: constants.RequestTimeout},
	}, nil
}

// Run processes incoming updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.api.GetUpdatesChan(cfg)

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	b.log.Info("Bot started", "username", b.api.Self.UserName)
	for update := range updates {
		b.handleUpdate(update)
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	msg := update.Message
	if msg == nil {
		return
	}
	if msg.Document != nil {
		b.handleDocument(msg)
		return
	}

	switch msg.Command() {
	case "start":
		b.reply(msg.Chat.ID,
			"Hi! Send me the JSON file produced by the albumdays app and I will remind you about album birthdays.")
	case "help":
		b.reply(msg.Chat.ID,
			"1. Prepare an albums.json file with the albumdays app.\n"+
				"2. Send the file to this bot.\n"+
				"3. Use /upcoming [days] to see the nearest events.")
	case "upcoming":
		b.handleUpcoming(msg)
	}
}

func (b *Bot) handleDocument(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	log := b.log.WithChat(chatID)

	if !strings.HasSuffix(strings.ToLower(msg.Document.FileName), constants.ExtJSON) {
		b.reply(chatID, "I expect a JSON file produced by the albumdays app.")
		return
	}

	albums, err := b.fetchDocument(msg.Document)
	if err != nil {
		log.Warn("Failed to load uploaded album set", "error", err)
		b.reply(chatID, fmt.Sprintf("Could not read the file: %v", err))
		return
	}

	if err := b.db.ReplaceAlbums(chatID, albums); err != nil {
		log.Error("Failed to store album set", "error", err)
		b.reply(chatID, "Could not store the file, try again later.")
		return
	}

	b.reply(chatID, "File saved. "+summarizeAlbums(albums))
}

func (b *Bot) fetchDocument(doc *tgbotapi.Document) ([]domain.AlbumListening, error) {
	url, err := b.api.GetFileDirectURL(doc.FileID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve file: %w", err)
	}
	resp, err := b.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("file download returned status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return exporter.Parse(data)
}

func (b *Bot) handleUpcoming(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	albums, err := b.db.ListAlbums(chatID)
	if err != nil {
		b.log.WithChat(chatID).Error("Failed to list albums", "error", err)
		b.reply(chatID, "Could not read your albums, try again later.")
		return
	}
	if len(albums) == 0 {
		b.reply(chatID, "Upload an albums file first.")
		return
	}

	days := b.horizonDays
	if arg := strings.TrimSpace(msg.CommandArguments()); arg != "" {
		if n, err := strconv.Atoi(arg); err == nil {
			days = n
		}
	}

	events := birthdays.Upcoming(albums, domain.Today(), days)
	if len(events) == 0 {
		b.reply(chatID, "No album birthdays in the selected period.")
		return
	}

	messages := make([]string, 0, len(events))
	for _, event := range events {
		messages = append(messages, birthdays.FormatMessage(event))
	}
	b.reply(chatID, strings.Join(messages, "\n\n"))
}

func summarizeAlbums(albums []domain.AlbumListening) string {
	var totalMinutes float64
	withDates := 0
	for _, album := range albums {
		totalMinutes += album.Minutes
		if album.ReleaseDate != nil {
			withDates++
		}
	}
	return fmt.Sprintf("Loaded %d albums.\nTotal listening time: %d minutes.\n%d albums have a release date.",
		len(albums), int(totalMinutes), withDates)
}

// reply sends text to a chat, retrying transient failures. A final failure
// is logged, not returned; losing one message must not stop the update loop.
func (b *Bot) reply(chatID int64, text string) {
	if err := b.Send(chatID, text); err != nil {
		b.log.WithChat(chatID).Warn("Failed to send message", "error", err)
	}
}

// Send delivers a text message to a chat with retries.
func (b *Bot) Send(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	return retry.Do(
		func() error {
			_, err := b.api.Send(msg)
			return err
		},
		retry.Attempts(constants.DefaultRetryCount),
		retry.Delay(constants.DefaultRetryBase),
	)
}
