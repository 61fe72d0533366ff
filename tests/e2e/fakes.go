//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"coachdesk/internal/domain/slot"
	"coachdesk/internal/usecase/shared"
)

// FakeCalendar keeps events in memory and reports them back as busy time.
type FakeCalendar struct {
	mu     sync.Mutex
	busy   []slot.BusyInterval
	events []fakeEvent
	seq    int
}

type fakeEvent struct {
	id   string
	ev   shared.CalendarEvent
	busy slot.BusyInterval
}

func (f *FakeCalendar) BusyIntervals(_ context.Context, from, to time.Time) ([]slot.BusyInterval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := append([]slot.BusyInterval(nil), f.busy...)
	for _, e := range f.events {
		all = append(all, e.busy)
	}
	out := make([]slot.BusyInterval, 0, len(all))
	for _, b := range all {
		if b.Start().Before(to) && b.End().After(from) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *FakeCalendar) CreateEvent(_ context.Context, ev shared.CalendarEvent) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, err := slot.NewBusyInterval(ev.Start, ev.End)
	if err != nil {
		return "", err
	}
	f.seq++
	id := fmt.Sprintf("evt-%d", f.seq)
	f.events = append(f.events, fakeEvent{id: id, ev: ev, busy: b})
	return id, nil
}

func (f *FakeCalendar) DeleteEvent(_ context.Context, eventID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.events {
		if e.id == eventID {
			f.events = append(f.events[:i], f.events[i+1:]...)
			return nil
		}
	}
	return nil
}

// Block marks [start, end) busy without creating an event.
func (f *FakeCalendar) Block(start, end time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, err := slot.NewBusyInterval(start, end)
	if err == nil {
		f.busy = append(f.busy, b)
	}
}

func (f *FakeCalendar) Events() []shared.CalendarEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]shared.CalendarEvent, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.ev)
	}
	return out
}

func (f *FakeCalendar) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = nil
	f.events = nil
	f.seq = 0
}

// FakeMailer records every message instead of sending it.
type FakeMailer struct {
	mu   sync.Mutex
	sent []shared.RedemptionMail
}

func (f *FakeMailer) SendRedemptionCode(_ context.Context, mail shared.RedemptionMail) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, mail)
	return nil
}

// LastCodeFor returns the most recent code mailed to addr.
func (f *FakeMailer) LastCodeFor(addr string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.sent) - 1; i >= 0; i-- {
		if f.sent[i].To == addr {
			return f.sent[i].Code, true
		}
	}
	return "", false
}

func (f *FakeMailer) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = nil
}

// FakeStorage serves a fixed set of product keys.
type FakeStorage struct {
	Keys map[string]bool
}

func (f *FakeStorage) Exists(_ context.Context, key string) (bool, error) {
	return f.Keys[key], nil
}

func (f *FakeStorage) PresignedGetURL(_ context.Context, key string, ttl time.Duration) (string, error) {
	return fmt.Sprintf("https://storage.test/products/%s?ttl=%d", url.PathEscape(key), int(ttl.Seconds())), nil
}
