package session

import (
	"context"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// Store owns the portal's authentication state and its lifecycle: a one-time
// restore from the storage slot, email login against the directory, and
// logout. All reads go through Current; the state and the slot are mutated by
// the Store only.
type Store struct {
	mu       sync.RWMutex
	state    State
	restored bool

	directory Directory
	slot      Slot
	codec     Codec

	delay        time.Duration
	logger       Logger
	activitySink ActivitySink
	validator    func(*User) error

	subs      map[int]func(State)
	nextSubID int
}

// NewStore returns a Store starting in the initializing state. When cfg
// carries a signing key the slot is serialized with TokenCodec, otherwise
// plain JSON.
func NewStore(directory Directory, slot Slot, cfg Config) *Store {
	var codec Codec = JSONCodec{}
	if cfg != nil && cfg.GetSigningKey() != "" {
		codec = NewTokenCodec([]byte(cfg.GetSigningKey()))
	}

	return &Store{
		state:        Initializing(),
		directory:    directory,
		slot:         slot,
		codec:        codec,
		delay:        loginDelay(cfg),
		logger:       defLogger{},
		activitySink: noopActivitySink{},
		validator:    defaultValidator,
	}
}

func (s *Store) WithLogger(logger Logger) *Store {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithActivitySink configures an ActivitySink for emitting lifecycle events.
func (s *Store) WithActivitySink(sink ActivitySink) *Store {
	s.activitySink = normalizeActivitySink(sink)
	return s
}

// WithCodec overrides the slot serialization.
func (s *Store) WithCodec(codec Codec) *Store {
	if codec != nil {
		s.codec = codec
	}
	return s
}

// Current returns the session state at this instant. Consumers re-read it
// whenever they need a decision, so they always observe the latest settled
// transition.
func (s *Store) Current() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers fn to run after every settled transition. The returned
// cancel removes the subscription. Callbacks run synchronously on the
// transitioning goroutine and must not call back into the store.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	if s.subs == nil {
		s.subs = map[int]func(State){}
	}
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify(state State) {
	s.mu.RLock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(state)
	}
}

// Initialize restores a persisted session from the storage slot. It runs
// once per process: the first resolution settles the loading phase and later
// calls are no-ops. An empty slot is a normal signed-out start; undecodable
// content is reported, discarded, and also lands signed-out. Initialize never
// fails the caller.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.RLock()
	done := s.restored
	s.mu.RUnlock()

	if done {
		s.logger.Debug("initialize called after restore already settled")
		return nil
	}

	state := s.restore(ctx)

	s.mu.Lock()
	if s.restored {
		// a login or logout settled the session while we were restoring;
		// their resolution wins
		s.mu.Unlock()
		return nil
	}
	s.restored = true
	s.state = state
	s.mu.Unlock()

	s.notify(state)

	return nil
}

func (s *Store) restore(ctx context.Context) State {
	data, err := s.slot.Read(ctx)
	if err != nil {
		if goerrors.IsNotFound(err) {
			s.logger.Debug("no persisted session found")
			return SignedOut()
		}
		s.logger.Error("session restore read failed", "error", err)
		return SignedOut()
	}

	user, err := s.codec.Decode(data)
	if err == nil {
		err = s.validator(user)
	}
	if err != nil {
		s.logger.Error("session restore decode failed, discarding persisted record", "error", err)
		s.emit(ctx, ActivityEventRestoreFallback, "", map[string]any{
			"error": err.Error(),
		})
		return SignedOut()
	}

	s.emit(ctx, ActivityEventRestoreSuccess, user.ID.String(), nil)
	return SignedIn(user)
}

// Login authenticates the email against the directory after the simulated
// backend latency, persists the matched record to the slot, and transitions
// to signed-in. A directory miss fails with ErrInvalidCredentials and leaves
// the state untouched; a slot write failure fails the whole operation so
// storage and state never disagree. Concurrent logins are not deduplicated;
// the last resolution wins.
func (s *Store) Login(ctx context.Context, email string) (*User, error) {
	if email == "" {
		return nil, ErrInvalidCredentials
	}

	// the fixed delay is part of the design; it is not interruptible
	time.Sleep(s.delay)

	user, err := s.directory.FindByEmail(ctx, email)
	if err != nil {
		if goerrors.IsNotFound(err) {
			s.logger.Info("login rejected, unknown email", "email", email)
			s.emit(ctx, ActivityEventLoginFailure, "", map[string]any{
				"email": email,
				"error": ErrInvalidCredentials.Message,
			})
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("login directory lookup failed", "error", err)
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to query user directory")
	}

	if err := s.validator(user); err != nil {
		s.logger.Error("login rejected, invalid record", "error", err)
		s.emit(ctx, ActivityEventLoginFailure, user.ID.String(), map[string]any{
			"email": email,
			"error": err.Error(),
		})
		return nil, err
	}

	data, err := s.codec.Encode(user)
	if err != nil {
		return nil, err
	}

	if err := s.slot.Write(ctx, data); err != nil {
		s.logger.Error("session slot write failed", "error", err)
		s.emit(ctx, ActivityEventLoginFailure, user.ID.String(), map[string]any{
			"email": email,
			"error": err.Error(),
		})
		return nil, goerrors.Wrap(err, ErrSlotWrite.Category, ErrSlotWrite.Message).
			WithTextCode(ErrSlotWrite.TextCode)
	}

	s.mu.Lock()
	state := SignedIn(user)
	s.state = state
	s.restored = true
	s.mu.Unlock()

	s.notify(state)
	s.emit(ctx, ActivityEventLoginSuccess, user.ID.String(), map[string]any{
		"email": email,
	})

	return user.Clone(), nil
}

// Logout clears the storage slot and transitions to signed-out. It is
// best-effort persistent, guaranteed in-memory: a failed slot removal is
// logged and returned, but the in-memory transition happens regardless.
func (s *Store) Logout(ctx context.Context) error {
	var removeErr error
	if err := s.slot.Clear(ctx); err != nil {
		s.logger.Error("session slot remove failed", "error", err)
		removeErr = goerrors.Wrap(err, ErrSlotRemove.Category, ErrSlotRemove.Message).
			WithTextCode(ErrSlotRemove.TextCode)
	}

	s.mu.Lock()
	prev := s.state
	state := SignedOut()
	s.state = state
	s.restored = true
	s.mu.Unlock()

	s.notify(state)

	userID := ""
	if u := prev.CurrentUser(); u != nil {
		userID = u.ID.String()
	}
	s.emit(ctx, ActivityEventLogout, userID, nil)

	return removeErr
}

func (s *Store) emit(ctx context.Context, eventType ActivityEventType, userID string, metadata map[string]any) {
	event := ActivityEvent{
		EventType:  eventType,
		UserID:     userID,
		Metadata:   metadata,
		OccurredAt: time.Now(),
	}

	if event.Metadata == nil {
		event.Metadata = map[string]any{}
	}

	if err := normalizeActivitySink(s.activitySink).Record(ctx, event); err != nil {
		s.logger.Warn("activity sink record error: %v", err)
	}
}
