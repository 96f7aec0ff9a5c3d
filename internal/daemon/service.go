// Package daemon ties the notification store, popup admission, options,
// and the D-Bus protocol surface together into the running service.
package daemon

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/newor0599/ignis/internal/dbus"
	"github.com/newor0599/ignis/internal/model"
	"github.com/newor0599/ignis/internal/options"
	"github.com/newor0599/ignis/internal/popup"
	"github.com/newor0599/ignis/internal/store"
)

// Option names and defaults.
const (
	OptionDND            = "dnd"
	OptionPopupTimeout   = "popup_timeout"
	OptionMaxPopupsCount = "max_popups_count"

	DefaultPopupTimeout   = 5000
	DefaultMaxPopupsCount = 3
)

// Signaler emits protocol signals back to clients. Satisfied by
// *dbus.Server; nil when transport is degraded.
type Signaler interface {
	EmitNotificationClosed(id uint32, reason dbus.CloseReason) error
	EmitActionInvoked(id uint32, actionKey string) error
}

// Params bundles the collaborators a Service is constructed with.
type Params struct {
	Store     *store.Store
	Popups    *popup.Manager
	Options   *options.Service
	Signaler  Signaler
	ImagesDir string
	Logger    *slog.Logger
}

// Service implements the notification daemon semantics: id resolution,
// replace sequencing, popup admission, auto-expiry, and persistence.
// Every mutation runs under one mutex, so the close-then-create ordering
// of replace is never interleaved with another operation.
type Service struct {
	mu     sync.Mutex
	logger *slog.Logger

	store     *store.Store
	popups    *popup.Manager
	opts      *options.Service
	signaler  Signaler
	imagesDir string

	timers      map[uint32]*time.Timer
	subscribers []chan Event
	closed      bool
}

// NewService creates the Service and registers its options (tolerating
// ones that already exist from a previous run).
func NewService(p Params) (*Service, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Service{
		logger:    logger,
		store:     p.Store,
		popups:    p.Popups,
		opts:      p.Options,
		signaler:  p.Signaler,
		imagesDir: p.ImagesDir,
		timers:    make(map[uint32]*time.Timer),
	}

	if err := s.opts.Create(OptionDND, false, true); err != nil {
		return nil, fmt.Errorf("failed to register %s option: %w", OptionDND, err)
	}
	if err := s.opts.Create(OptionPopupTimeout, DefaultPopupTimeout, true); err != nil {
		return nil, fmt.Errorf("failed to register %s option: %w", OptionPopupTimeout, err)
	}
	if err := s.opts.Create(OptionMaxPopupsCount, DefaultMaxPopupsCount, true); err != nil {
		return nil, fmt.Errorf("failed to register %s option: %w", OptionMaxPopupsCount, err)
	}

	return s, nil
}

// SetSignaler wires the protocol signal emitter after construction.
func (s *Service) SetSignaler(sig Signaler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signaler = sig
}

// Notify handles a create/replace request and returns the assigned id.
//
// replaces_id == 0 allocates a fresh id. A non-zero replaces_id reuses
// that id: if it is currently live, the old notification is driven
// through its full close path (popup removal, store removal, persist,
// close signal) before the new one is constructed, so no observer ever
// sees two live notifications under one id.
func (s *Service) Notify(req *dbus.NotifyRequest) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var id uint32
	if req.ReplacesID == 0 {
		id = s.store.NextID()
	} else {
		id = req.ReplacesID
		if old := s.store.Get(id); old != nil {
			s.closeLocked(old, dbus.CloseReasonClosed)
		}
	}

	n := s.buildNotification(id, req)

	if n.Popup {
		evicted, didEvict, admitted := s.popups.Admit(id, s.MaxPopupsCount())
		if didEvict {
			if ev := s.store.Get(evicted); ev != nil {
				s.dismissLocked(ev, dbus.CloseReasonDismissed, false)
			}
		}
		if !admitted {
			n.Popup = false
		}
	}

	if err := s.store.Add(n); err != nil {
		// Persistence trouble degrades history, never the protocol call.
		s.logger.Warn("failed to persist notification", "id", id, "error", err)
	}

	if n.Popup {
		s.publish(Event{Kind: EventNewPopup, Notification: n})
		s.scheduleExpiryLocked(n)
	}
	s.publish(Event{Kind: EventNotified, Notification: n})

	s.logger.Info("notification created",
		"id", id,
		"app", n.AppName,
		"urgency", n.UrgencyName(),
		"popup", n.Popup,
	)
	return id
}

// buildNotification constructs the entity for an incoming request,
// resolving hints, icon, timeout, and the popup flag.
func (s *Service) buildNotification(id uint32, req *dbus.NotifyRequest) *model.Notification {
	hints := req.ParsedHints()

	recordID, err := model.NewRecordID()
	if err != nil {
		s.logger.Warn("failed to generate record id", "error", err)
	}

	icon := req.AppIcon
	if icon == "" && hints.ImagePath != "" {
		icon = hints.ImagePath
	}
	if hints.ImageData != nil {
		path := filepath.Join(s.imagesDir, fmt.Sprintf("%d.png", id))
		if err := hints.ImageData.SavePNG(path); err != nil {
			s.logger.Warn("failed to decode image-data hint", "id", id, "error", err)
		} else {
			icon = path
		}
	}

	timeout := req.ExpireTimeout
	if timeout == model.TimeoutServerDefault {
		timeout = int32(s.PopupTimeout())
	}

	extra := hints.Extra
	if hints.Category != "" {
		if extra == nil {
			extra = make(map[string]any)
		}
		extra["category"] = hints.Category
	}
	if hints.DesktopEntry != "" {
		if extra == nil {
			extra = make(map[string]any)
		}
		extra["desktop-entry"] = hints.DesktopEntry
	}

	return &model.Notification{
		RecordID:  recordID,
		ID:        id,
		AppName:   req.AppName,
		Icon:      icon,
		Summary:   req.Summary,
		Body:      req.Body,
		Actions:   model.ParseActions(req.Actions),
		Urgency:   hints.UrgencyOrDefault(),
		Timeout:   timeout,
		CreatedAt: time.Now().Unix(),
		Popup:     !s.DND(),
		Transient: hints.Transient,
		Resident:  hints.Resident,
		Extra:     extra,
	}
}

// Close closes a live notification with the given reason. A miss is
// silently ignored.
func (s *Service) Close(id uint32, reason dbus.CloseReason) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.store.Get(id)
	if n == nil {
		return
	}
	s.closeLocked(n, reason)
}

// HandleCloseRequest is the CloseNotification protocol entry point.
func (s *Service) HandleCloseRequest(id uint32) {
	s.Close(id, dbus.CloseReasonClosed)
}

// closeLocked drives the full close path: expiry timer cancellation,
// popup removal, store removal, persistence, close signal, events.
// Caller must hold the lock.
func (s *Service) closeLocked(n *model.Notification, reason dbus.CloseReason) {
	s.cancelTimerLocked(n.ID)

	if s.popups.Remove(n.ID) {
		n.Popup = false
		s.publish(Event{Kind: EventDismissed, Notification: n, Reason: reason})
	}

	if _, err := s.store.Remove(n.ID); err != nil {
		s.logger.Warn("failed to persist close", "id", n.ID, "error", err)
	}

	if s.signaler != nil {
		if err := s.signaler.EmitNotificationClosed(n.ID, reason); err != nil {
			s.logger.Warn("failed to emit NotificationClosed signal", "id", n.ID, "error", err)
		}
	}

	s.publish(Event{Kind: EventClosed, Notification: n, Reason: reason})
	s.logger.Info("notification closed", "id", n.ID, "reason", reason.String())
}

// InvokeAction reports activation of one of a notification's actions
// to the sending client. Unknown ids and action keys are ignored.
// Non-resident notifications are closed once the action fires.
func (s *Service) InvokeAction(id uint32, actionKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.store.Get(id)
	if n == nil || !n.HasAction(actionKey) {
		return
	}

	if s.signaler != nil {
		if err := s.signaler.EmitActionInvoked(id, actionKey); err != nil {
			s.logger.Warn("failed to emit ActionInvoked signal", "id", id, "error", err)
		}
	}

	if !n.Resident {
		s.closeLocked(n, dbus.CloseReasonDismissed)
	}
}

// Dismiss removes a popup from the visible set without closing the
// underlying notification.
func (s *Service) Dismiss(id uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.store.Get(id)
	if n == nil {
		return
	}
	s.dismissLocked(n, dbus.CloseReasonDismissed, true)
}

// dismissLocked dismisses a popup. With removeFromPopups false the
// caller has already taken it out of the popup manager (eviction).
// Caller must hold the lock.
func (s *Service) dismissLocked(n *model.Notification, reason dbus.CloseReason, removeFromPopups bool) {
	if removeFromPopups && !s.popups.Remove(n.ID) {
		return
	}

	s.cancelTimerLocked(n.ID)
	n.Popup = false
	if err := s.store.Sync(); err != nil {
		s.logger.Warn("failed to persist dismissal", "id", n.ID, "error", err)
	}

	s.publish(Event{Kind: EventDismissed, Notification: n, Reason: reason})
	s.logger.Debug("popup dismissed", "id", n.ID, "reason", reason.String())
}

// scheduleExpiryLocked arms the auto-expiry timer for a popup.
// Caller must hold the lock.
func (s *Service) scheduleExpiryLocked(n *model.Notification) {
	d, ok := n.ExpiresAfter()
	if !ok {
		return
	}

	id := n.ID
	s.timers[id] = time.AfterFunc(d, func() {
		s.expire(id)
	})
}

// expire handles an elapsed popup timer.
func (s *Service) expire(id uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.timers, id)

	n := s.store.Get(id)
	if n == nil || !n.Popup {
		return
	}
	s.dismissLocked(n, dbus.CloseReasonExpired, true)
}

// cancelTimerLocked stops and forgets the expiry timer for id, if any.
// Caller must hold the lock.
func (s *Service) cancelTimerLocked(id uint32) {
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
}

// ClearAll closes every live notification.
func (s *Service) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.store.All() {
		s.closeLocked(n, dbus.CloseReasonClosed)
	}
}

// Notifications returns all live notifications in creation order.
func (s *Service) Notifications() []*model.Notification {
	return s.store.All()
}

// Popups returns the current popups in admission order.
func (s *Service) Popups() []*model.Notification {
	var result []*model.Notification
	for _, id := range s.popups.IDs() {
		if n := s.store.Get(id); n != nil {
			result = append(result, n)
		}
	}
	return result
}

// DND reports whether do-not-disturb is enabled.
func (s *Service) DND() bool {
	v, err := s.opts.GetBool(OptionDND)
	if err != nil {
		return false
	}
	return v
}

// SetDND sets the do-not-disturb flag. Already-created notifications are
// unaffected.
func (s *Service) SetDND(enabled bool) error {
	return s.opts.Set(OptionDND, enabled)
}

// PopupTimeout returns the default popup timeout in milliseconds.
func (s *Service) PopupTimeout() int {
	v, err := s.opts.GetInt(OptionPopupTimeout)
	if err != nil {
		return DefaultPopupTimeout
	}
	return v
}

// SetPopupTimeout sets the default popup timeout in milliseconds.
func (s *Service) SetPopupTimeout(ms int) error {
	return s.opts.Set(OptionPopupTimeout, ms)
}

// MaxPopupsCount returns the configured popup capacity.
func (s *Service) MaxPopupsCount() int {
	v, err := s.opts.GetInt(OptionMaxPopupsCount)
	if err != nil {
		return DefaultMaxPopupsCount
	}
	return v
}

// SetMaxPopupsCount sets the popup capacity.
func (s *Service) SetMaxPopupsCount(count int) error {
	return s.opts.Set(OptionMaxPopupsCount, count)
}

// Subscribe returns a channel receiving lifecycle events. Events are
// dropped rather than blocking a slow subscriber.
func (s *Service) Subscribe() <-chan Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Event, 16)
	s.subscribers = append(s.subscribers, ch)
	return ch
}

// publish sends an event to all subscribers (non-blocking).
func (s *Service) publish(event Event) {
	for _, ch := range s.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

// Shutdown stops expiry timers and closes subscriber channels.
func (s *Service) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true

	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	for _, ch := range s.subscribers {
		close(ch)
	}
	s.subscribers = nil
}
