package models

import (
	"encoding/json"
	"testing"
)

func TestWishlistEntryDualWireShapes(t *testing.T) {
	// a mixed server payload: bare ids next to full records
	payload := `["c1",{"cake":{"_id":"c2","name":"Black Forest"},"reminder":{"enabled":true,"date":"2026-12-24"}}]`

	var entries []WishlistEntry
	if err := json.Unmarshal([]byte(payload), &entries); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entry count %d", len(entries))
	}
	if entries[0].CakeID() != "c1" || !entries[0].IsLocal() {
		t.Fatalf("bare entry %+v", entries[0])
	}
	if entries[1].CakeID() != "c2" || entries[1].IsLocal() {
		t.Fatalf("object entry %+v", entries[1])
	}
	if entries[1].Reminder == nil || entries[1].Reminder.Date != "2026-12-24" {
		t.Fatalf("reminder %+v", entries[1].Reminder)
	}
}

func TestWishlistEntryMarshalPreservesShape(t *testing.T) {
	bare, err := json.Marshal(NewLocalWishlistEntry("c1"))
	if err != nil {
		t.Fatalf("marshal bare: %v", err)
	}
	if string(bare) != `"c1"` {
		t.Fatalf("bare shape %s", bare)
	}

	full, err := json.Marshal(NewSyncedWishlistEntry(CakeRef{ID: "c2", Name: "Cheesecake"}, nil))
	if err != nil {
		t.Fatalf("marshal full: %v", err)
	}
	var decoded WishlistEntry
	if err := json.Unmarshal(full, &decoded); err != nil {
		t.Fatalf("re-unmarshal: %v", err)
	}
	if decoded.CakeID() != "c2" || decoded.IsLocal() {
		t.Fatalf("full shape lost: %s", full)
	}
}

func TestWishlistEntryPromoteCarriesFieldsThroughMarshal(t *testing.T) {
	promoted := NewLocalWishlistEntry("c1").Promote()
	promoted.Reminder = &Reminder{Enabled: true, Date: "2026-12-25"}

	data, err := json.Marshal(promoted)
	if err != nil {
		t.Fatalf("marshal promoted: %v", err)
	}
	var decoded WishlistEntry
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("re-unmarshal: %v", err)
	}
	if decoded.IsLocal() || decoded.CakeID() != "c1" {
		t.Fatalf("promoted entry lost its id: %s", data)
	}
	if decoded.Reminder == nil || decoded.Reminder.Date != "2026-12-25" {
		t.Fatalf("promoted entry dropped the reminder: %s", data)
	}

	synced := NewSyncedWishlistEntry(CakeRef{ID: "c2"}, nil)
	if promoted := synced.Promote(); promoted.Cake != synced.Cake {
		t.Fatal("promote should be a no-op on the object form")
	}
}
