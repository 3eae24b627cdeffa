package store

import (
	"context"
	"sync"

	"github.com/sweetnest/storefront/internal/api"
	"github.com/sweetnest/storefront/internal/constants"
	"github.com/sweetnest/storefront/internal/logger"
	"github.com/sweetnest/storefront/internal/models"
)

// WishlistState the whitelisted subset of wishlist state written to storage
type WishlistState struct {
	Items []models.WishlistEntry `json:"items"`
}

// ReminderScheduler schedules the celebration notification for a reminder.
// Nil-able: scheduling is best-effort and never part of the action's outcome.
type ReminderScheduler interface {
	ScheduleReminder(cakeID, cakeName, date, note, email string) error
}

// WishlistStore owns the saved-cake set. Entries come in two shapes (bare id
// for guests, full record once synced); every lookup goes through
// models.WishlistEntry.CakeID rather than sniffing shapes in place.
type WishlistStore struct {
	mu      sync.Mutex
	entries []models.WishlistEntry
	synced  bool
	loading bool

	api       *api.WishlistAPI
	persister Persister
	scheduler ReminderScheduler
}

// NewWishlistStore creates the wishlist store
func NewWishlistStore(wishlistAPI *api.WishlistAPI, persister Persister) *WishlistStore {
	return &WishlistStore{api: wishlistAPI, persister: persister}
}

// SetReminderScheduler installs the optional notification scheduler
func (s *WishlistStore) SetReminderScheduler(scheduler ReminderScheduler) {
	s.scheduler = scheduler
}

// Restore hydrates the store from a persisted snapshot
func (s *WishlistStore) Restore(state WishlistState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = state.Items
}

// AddToWishlist saves a cake. A cake id appears at most once; adding an
// already-saved cake succeeds without duplicating.
func (s *WishlistStore) AddToWishlist(ctx context.Context, cake models.CakeRef, isLoggedIn bool) Result {
	if cake.ID == "" {
		return fail("Unknown cake")
	}
	if s.IsInWishlist(cake.ID) {
		return ok()
	}

	if !isLoggedIn {
		s.mu.Lock()
		s.entries = append(s.entries, models.NewLocalWishlistEntry(cake.ID))
		s.mu.Unlock()
		s.persist()
		return ok()
	}

	s.setLoading(true)
	defer s.setLoading(false)

	entries, err := s.api.Add(ctx, cake.ID)
	if err != nil {
		return fail(api.Message(err, "Could not save to wishlist"))
	}
	s.replace(entries)
	return ok()
}

// RemoveFromWishlist drops a saved cake
func (s *WishlistStore) RemoveFromWishlist(ctx context.Context, cakeID string, isLoggedIn bool) Result {
	if isLoggedIn {
		s.setLoading(true)
		defer s.setLoading(false)
		if err := s.api.Remove(ctx, cakeID); err != nil {
			return fail(api.Message(err, "Could not remove from wishlist"))
		}
	}

	s.mu.Lock()
	filtered := s.entries[:0]
	for _, entry := range s.entries {
		if entry.CakeID() != cakeID {
			filtered = append(filtered, entry)
		}
	}
	s.entries = filtered
	s.mu.Unlock()
	s.persist()
	return ok()
}

// ToggleWishlist adds or removes based on current membership
func (s *WishlistStore) ToggleWishlist(ctx context.Context, cake models.CakeRef, isLoggedIn bool) Result {
	if s.IsInWishlist(cake.ID) {
		return s.RemoveFromWishlist(ctx, cake.ID, isLoggedIn)
	}
	return s.AddToWishlist(ctx, cake, isLoggedIn)
}

// FetchWishlist replaces entries wholesale from the server. Server mode only.
func (s *WishlistStore) FetchWishlist(ctx context.Context) Result {
	s.setLoading(true)
	defer s.setLoading(false)

	entries, err := s.api.Get(ctx)
	if err != nil {
		return fail(api.Message(err, "Could not load wishlist"))
	}
	s.replace(entries)
	return ok()
}

// SyncWithServer merges guest entries into the server wishlist, once at the
// login transition; an empty guest wishlist falls back to a plain fetch
func (s *WishlistStore) SyncWithServer(ctx context.Context) Result {
	s.mu.Lock()
	if s.synced {
		s.mu.Unlock()
		return ok()
	}
	ids := make([]string, 0, len(s.entries))
	for _, entry := range s.entries {
		if id := entry.CakeID(); id != "" {
			ids = append(ids, id)
		}
	}
	s.mu.Unlock()

	if len(ids) == 0 {
		result := s.FetchWishlist(ctx)
		if result.Success {
			s.markSynced()
		}
		return result
	}

	s.setLoading(true)
	defer s.setLoading(false)

	entries, err := s.api.Sync(ctx, ids)
	if err != nil {
		return fail(api.Message(err, "Could not sync wishlist"))
	}
	s.replace(entries)
	s.markSynced()
	return ok()
}

// ClearWishlist drops every entry
func (s *WishlistStore) ClearWishlist(ctx context.Context, isLoggedIn bool) Result {
	if isLoggedIn {
		s.setLoading(true)
		defer s.setLoading(false)
		if err := s.api.Clear(ctx); err != nil {
			return fail(api.Message(err, "Could not clear wishlist"))
		}
	}
	s.Reset()
	return ok()
}

// Reset drops all local wishlist state without touching the server
func (s *WishlistStore) Reset() {
	s.mu.Lock()
	s.entries = nil
	s.synced = false
	s.mu.Unlock()
	s.persist()
}

// SetReminder attaches a date+note reminder to a saved cake. In server mode
// the reminder is applied optimistically: the change is visible immediately
// and rolled back to the exact pre-call state when the server call fails.
func (s *WishlistStore) SetReminder(ctx context.Context, cakeID, date, note string, isLoggedIn bool) Result {
	if !s.IsInWishlist(cakeID) {
		return fail("Cake is not in the wishlist")
	}
	reminder := &models.Reminder{Enabled: true, Date: date, Note: note}

	if !isLoggedIn {
		s.applyReminder(cakeID, reminder)
		s.persist()
		return ok()
	}

	err := applyOptimistic(
		s.snapshotEntries,
		s.restoreEntries,
		func() { s.applyReminder(cakeID, reminder) },
		func() error { return s.api.SetReminder(ctx, cakeID, date, note) },
	)
	if err != nil {
		return fail(api.Message(err, "Could not set reminder"))
	}
	s.persist()
	s.scheduleReminder(cakeID, date, note)
	return ok()
}

// IsInWishlist reports membership for a cake id across both entry shapes
func (s *WishlistStore) IsInWishlist(cakeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.entries {
		if entry.CakeID() == cakeID {
			return true
		}
	}
	return false
}

// Entries returns a copy of the current entries
func (s *WishlistStore) Entries() []models.WishlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]models.WishlistEntry, len(s.entries))
	copy(entries, s.entries)
	return entries
}

// Count returns the number of saved cakes
func (s *WishlistStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Loading reports whether a network action is in flight
func (s *WishlistStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *WishlistStore) applyReminder(cakeID string, reminder *models.Reminder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].CakeID() == cakeID {
			// A bare-id entry cannot carry a reminder through persistence.
			s.entries[i] = s.entries[i].Promote()
			r := *reminder
			s.entries[i].Reminder = &r
		}
	}
}

// snapshotEntries deep-copies the entry list so a rollback restores it
// exactly, pointers included
func (s *WishlistStore) snapshotEntries() []models.WishlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]models.WishlistEntry, len(s.entries))
	for i, entry := range s.entries {
		clone := entry
		if entry.Cake != nil {
			cake := *entry.Cake
			clone.Cake = &cake
		}
		if entry.Reminder != nil {
			reminder := *entry.Reminder
			clone.Reminder = &reminder
		}
		snapshot[i] = clone
	}
	return snapshot
}

func (s *WishlistStore) restoreEntries(entries []models.WishlistEntry) {
	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
}

func (s *WishlistStore) scheduleReminder(cakeID, date, note string) {
	if s.scheduler == nil {
		return
	}
	cakeName := ""
	s.mu.Lock()
	for _, entry := range s.entries {
		if entry.CakeID() == cakeID && entry.Cake != nil {
			cakeName = entry.Cake.Name
			break
		}
	}
	s.mu.Unlock()
	if err := s.scheduler.ScheduleReminder(cakeID, cakeName, date, note, ""); err != nil {
		logger.Warnw("reminder_schedule_failed", "cake_id", cakeID, "date", date, "error", err)
	}
}

func (s *WishlistStore) replace(entries []models.WishlistEntry) {
	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	s.persist()
}

func (s *WishlistStore) markSynced() {
	s.mu.Lock()
	s.synced = true
	s.mu.Unlock()
}

func (s *WishlistStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *WishlistStore) persist() {
	if s.persister == nil {
		return
	}
	s.mu.Lock()
	state := WishlistState{Items: s.entries}
	s.mu.Unlock()
	s.persister.Persist(constants.StorageKeyWishlist, state)
}
