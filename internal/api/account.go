package api

import (
	"context"
	"net/url"

	"github.com/sweetnest/storefront/internal/models"
)

// AddressAPI wrappers for the /addresses resource group
type AddressAPI struct {
	client *Client
}

// NewAddressAPI creates the address resource wrapper
func NewAddressAPI(client *Client) *AddressAPI {
	return &AddressAPI{client: client}
}

// List fetches the saved delivery addresses
func (a *AddressAPI) List(ctx context.Context) ([]models.Address, error) {
	var addresses []models.Address
	if err := a.client.Get(ctx, "/addresses", &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// Create saves a new address
func (a *AddressAPI) Create(ctx context.Context, address models.Address) (*models.Address, error) {
	var created models.Address
	if err := a.client.Post(ctx, "/addresses", address, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update edits a saved address
func (a *AddressAPI) Update(ctx context.Context, address models.Address) (*models.Address, error) {
	var updated models.Address
	if err := a.client.Put(ctx, "/addresses/"+url.PathEscape(address.ID), address, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a saved address
func (a *AddressAPI) Delete(ctx context.Context, addressID string) error {
	return a.client.Delete(ctx, "/addresses/"+url.PathEscape(addressID), nil)
}

// RewardAPI wrappers for the /rewards resource group (loyalty points)
type RewardAPI struct {
	client *Client
}

// NewRewardAPI creates the reward resource wrapper
func NewRewardAPI(client *Client) *RewardAPI {
	return &RewardAPI{client: client}
}

// Account fetches the loyalty balance and history
func (a *RewardAPI) Account(ctx context.Context) (*models.RewardAccount, error) {
	var account models.RewardAccount
	if err := a.client.Get(ctx, "/rewards", &account); err != nil {
		return nil, err
	}
	return &account, nil
}
