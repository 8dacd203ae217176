package bot

import (
	"context"
	"sync"
	"time"

	"github.com/cesargomez89/albumdays/internal/birthdays"
	"github.com/cesargomez89/albumdays/internal/constants"
	"github.com/cesargomez89/albumdays/internal/domain"
	"github.com/cesargomez89/albumdays/internal/logger"
	"github.com/cesargomez89/albumdays/internal/store"
)

// SendFunc delivers a text message to a chat.
type SendFunc func(chatID int64, text string) error

// Notifier scans the stored album sets once a day and sends anniversary
// reminders, deduplicated through the notification log.
type Notifier struct {
	db         *store.DB
	send       SendFunc
	daysBefore []int
	log        *logger.Logger
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

func NewNotifier(db *store.DB, send SendFunc, log *logger.Logger) *Notifier {
	ctx, cancel := context.WithCancel(context.Background())
	if log == nil {
		log = logger.Default()
	}
	return &Notifier{
		db:         db,
		send:       send,
		daysBefore: constants.NotifyDaysBefore,
		log:        log.WithComponent("notifier"),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start launches the notification loop in the background.
func (n *Notifier) Start() {
	n.wg.Add(1)
	go n.run()
}

// Stop cancels the loop and waits for it to finish.
func (n *Notifier) Stop() {
	n.cancel()
	n.wg.Wait()
}

func (n *Notifier) run() {
	defer n.wg.Done()

	startTimer := time.NewTimer(constants.NotifyStartDelay)
	defer startTimer.Stop()

	select {
	case <-n.ctx.Done():
		return
	case <-startTimer.C:
		n.notifyAll(domain.Today())
	}

	ticker := time.NewTicker(constants.NotifyInterval)
	defer ticker.Stop()

	for {
		select {
		case <-n.ctx.Done():
			n.log.Info("Notifier stopped")
			return
		case <-ticker.C:
			n.notifyAll(domain.Today())
		}
	}
}

func (n *Notifier) notifyAll(today domain.Date) {
	chats, err := n.db.ListChats()
	if err != nil {
		n.log.Error("Failed to list chats", "error", err)
		return
	}

	sent := 0
	for _, chatID := range chats {
		sent += n.notifyChat(chatID, today)
	}
	n.log.Info("Notification pass finished", "chats", len(chats), "sent", sent)
}

func (n *Notifier) notifyChat(chatID int64, today domain.Date) int {
	log := n.log.WithChat(chatID)

	albums, err := n.db.ListAlbums(chatID)
	if err != nil {
		log.Error("Failed to list albums", "error", err)
		return 0
	}

	sent := 0
	for _, event := range birthdays.Upcoming(albums, today, n.horizon()) {
		trigger, ok := n.triggerFor(event.DaysUntil)
		if !ok {
			continue
		}

		key := birthdays.NotificationKey(chatID, event, trigger)
		sentOn, err := n.db.GetNotification(key)
		if err != nil {
			log.Warn("Failed to read notification log", "key", key, "error", err)
			continue
		}
		if sentOn == today.String() {
			continue
		}

		if err := n.send(chatID, birthdays.FormatMessage(event)); err != nil {
			log.Warn("Failed to send reminder",
				"album", event.Album.Album, "artist", event.Album.Artist, "error", err)
			continue
		}
		if err := n.db.SetNotification(key, today.String()); err != nil {
			log.Warn("Failed to record notification", "key", key, "error", err)
		}
		sent++
	}
	return sent
}

func (n *Notifier) triggerFor(daysUntil int) (string, bool) {
	if daysUntil == 0 {
		return birthdays.TriggerDayOf, true
	}
	for _, d := range n.daysBefore {
		if daysUntil == d {
			return birthdays.TriggerDaysBefore(d), true
		}
	}
	return "", false
}

// horizon returns the widest look-ahead the configured triggers need.
func (n *Notifier) horizon() int {
	h := 0
	for _, d := range n.daysBefore {
		if d > h {
			h = d
		}
	}
	return h
}
