// Package notify carries user-facing notifications from the booking flow to
// whatever host renders them.  Components receive a Notifier and never
// reach for a global toast channel.
package notify

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Kind classifies a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindError   Kind = "error"
)

// Notification is a single message emitted through a Notifier.
type Notification struct {
	Kind    Kind   `json:"kind"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Notifier receives notifications.  Implementations must be safe for
// concurrent use.
type Notifier interface {
	Notify(n Notification)
}

// Func adapts a plain function to a Notifier.
type Func func(Notification)

func (f Func) Notify(n Notification) { f(n) }

// Discard drops every notification.
var Discard Notifier = Func(func(Notification) {})

// Log writes notifications to a logrus logger.
type Log struct {
	Logger logrus.FieldLogger
}

func (l Log) Notify(n Notification) {
	entry := l.Logger.WithFields(logrus.Fields{
		"kind":  n.Kind,
		"title": n.Title,
	})
	if n.Kind == KindError {
		entry.Warn(n.Message)
		return
	}
	entry.Info(n.Message)
}

// Multi fans a notification out to every non-nil notifier.
func Multi(ns ...Notifier) Notifier {
	return Func(func(n Notification) {
		for _, x := range ns {
			if x != nil {
				x.Notify(n)
			}
		}
	})
}

// Recorder keeps notifications in memory so a request handler can return
// them to the client.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	r.items = append(r.items, n)
	r.mu.Unlock()
}

// Items returns a copy of everything recorded so far.
func (r *Recorder) Items() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}
