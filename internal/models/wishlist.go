package models

import (
	"encoding/json"
	"time"
)

// Reminder a user-set date and note attached to a wishlist entry
type Reminder struct {
	Enabled bool   `json:"enabled"`
	Date    string `json:"date"`
	Note    string `json:"note,omitempty"`
}

// WishlistEntry one saved cake. The wire shape is dual: guest entries are bare
// cake-id strings, synced entries are objects with a populated cake field.
// CakeID is the single normalization point every lookup must go through.
type WishlistEntry struct {
	Cake     *CakeRef  `json:"cake,omitempty"`
	Reminder *Reminder `json:"reminder,omitempty"`
	AddedAt  time.Time `json:"addedAt,omitempty"`

	bareID string
}

// NewLocalWishlistEntry creates the guest-mode (bare id) form
func NewLocalWishlistEntry(cakeID string) WishlistEntry {
	return WishlistEntry{bareID: cakeID}
}

// NewSyncedWishlistEntry creates the server-mode (full record) form
func NewSyncedWishlistEntry(cake CakeRef, reminder *Reminder) WishlistEntry {
	return WishlistEntry{Cake: &cake, Reminder: reminder, AddedAt: time.Now()}
}

// CakeID resolves the referenced cake id across both representations
func (e WishlistEntry) CakeID() string {
	if e.Cake != nil && e.Cake.ID != "" {
		return e.Cake.ID
	}
	return e.bareID
}

// IsLocal reports whether the entry is still in the bare-id form
func (e WishlistEntry) IsLocal() bool {
	return e.Cake == nil
}

// Promote converts a bare-id entry to the object form with an id-only cake
// ref. The bare wire shape carries nothing but the id, so an entry must be
// promoted before any other field can survive a marshal round-trip.
func (e WishlistEntry) Promote() WishlistEntry {
	if !e.IsLocal() {
		return e
	}
	return WishlistEntry{Cake: &CakeRef{ID: e.bareID}, Reminder: e.Reminder, AddedAt: e.AddedAt}
}

// MarshalJSON preserves the wire shape the entry was created with
func (e WishlistEntry) MarshalJSON() ([]byte, error) {
	if e.IsLocal() {
		return json.Marshal(e.bareID)
	}
	type alias struct {
		Cake     *CakeRef  `json:"cake"`
		Reminder *Reminder `json:"reminder,omitempty"`
		AddedAt  time.Time `json:"addedAt,omitempty"`
	}
	return json.Marshal(alias{Cake: e.Cake, Reminder: e.Reminder, AddedAt: e.AddedAt})
}

// UnmarshalJSON accepts both the bare-id and the object form
func (e *WishlistEntry) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*e = WishlistEntry{bareID: id}
		return nil
	}
	type alias struct {
		Cake     *CakeRef  `json:"cake"`
		Reminder *Reminder `json:"reminder"`
		AddedAt  time.Time `json:"addedAt"`
	}
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*e = WishlistEntry{Cake: a.Cake, Reminder: a.Reminder, AddedAt: a.AddedAt}
	return nil
}
