// services/dispatcher.go - Background delivery of due reminders
package services

import (
	"log"
	"time"

	"finhabit/models"
	"finhabit/store"
)

// ReminderDispatcher periodically scans for due, unsent reminders and
// hands them to the notification sink.
type ReminderDispatcher struct {
	store    store.Store
	sink     NotificationSink
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

var dispatcher *ReminderDispatcher

// InitReminderDispatcher initializes and starts the singleton dispatcher.
func InitReminderDispatcher(st store.Store, sink NotificationSink, interval time.Duration) {
	dispatcher = &ReminderDispatcher{
		store:    st,
		sink:     sink,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go dispatcher.run()
}

// GetReminderDispatcher returns the running dispatcher, or nil.
func GetReminderDispatcher() *ReminderDispatcher {
	return dispatcher
}

func (d *ReminderDispatcher) run() {
	defer close(d.done)
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-d.stop:
			return
		case <-ticker.C:
			d.DispatchDue(time.Now())
		}
	}
}

// DispatchDue delivers every reminder due at the given time and marks it
// sent. Returns how many were delivered.
func (d *ReminderDispatcher) DispatchDue(now time.Time) int {
	due, err := d.store.DueReminders(now, 100)
	if err != nil {
		log.Printf("reminder dispatch: scan failed: %v", err)
		return 0
	}

	sent := 0
	for _, reminder := range due {
		d.sink.Notify(reminder.UserID, reminder)
		at := now
		reminder.SentAt = &at
		if err := d.store.SaveReminder(&reminder); err != nil {
			log.Printf("reminder dispatch: mark sent failed for %s: %v", reminder.ID, err)
			continue
		}
		sent++
	}
	return sent
}

// Stop halts the background loop and waits for it to exit.
func (d *ReminderDispatcher) Stop() {
	close(d.stop)
	<-d.done
}

// LogSink is the fallback NotificationSink when no push transport is
// attached; it just logs.
type LogSink struct{}

func (LogSink) Notify(userID uint, reminder models.StreakReminder) {
	log.Printf("📣 reminder for user %d [%s]: %s", userID, reminder.ReminderType, reminder.Message)
}
