package api

import (
	"context"
	"net/url"

	"github.com/sweetnest/storefront/internal/models"
)

// WishlistAPI wrappers for the /wishlist resource group
type WishlistAPI struct {
	client *Client
}

// NewWishlistAPI creates the wishlist resource wrapper
func NewWishlistAPI(client *Client) *WishlistAPI {
	return &WishlistAPI{client: client}
}

// Get fetches the synced wishlist
func (a *WishlistAPI) Get(ctx context.Context) ([]models.WishlistEntry, error) {
	var entries []models.WishlistEntry
	if err := a.client.Get(ctx, "/wishlist", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Add saves a cake and returns the updated list
func (a *WishlistAPI) Add(ctx context.Context, cakeID string) ([]models.WishlistEntry, error) {
	var entries []models.WishlistEntry
	body := map[string]string{"cake": cakeID}
	if err := a.client.Post(ctx, "/wishlist", body, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Remove deletes a saved cake
func (a *WishlistAPI) Remove(ctx context.Context, cakeID string) error {
	return a.client.Delete(ctx, "/wishlist/"+url.PathEscape(cakeID), nil)
}

// Clear empties the wishlist
func (a *WishlistAPI) Clear(ctx context.Context) error {
	return a.client.Delete(ctx, "/wishlist", nil)
}

// Sync merges guest cake ids into the server wishlist, once per login
func (a *WishlistAPI) Sync(ctx context.Context, cakeIDs []string) ([]models.WishlistEntry, error) {
	var entries []models.WishlistEntry
	body := map[string]interface{}{"items": cakeIDs}
	if err := a.client.Post(ctx, "/wishlist/sync", body, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// SetReminder attaches or edits the reminder on a saved cake
func (a *WishlistAPI) SetReminder(ctx context.Context, cakeID, date, note string) error {
	body := map[string]string{"date": date, "note": note}
	return a.client.Put(ctx, "/wishlist/"+url.PathEscape(cakeID)+"/reminder", body, nil)
}
