package models

import "encoding/json"

// User the authenticated identity. The backend is inconsistent about whether
// it returns `_id` or `id`; unmarshalling accepts either and `_id` is always
// what this side exposes.
type User struct {
	ID        string `json:"_id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	Role      string `json:"role,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	Points    int    `json:"points,omitempty"`
}

// UnmarshalJSON normalizes `_id` / `id` into ID
func (u *User) UnmarshalJSON(b []byte) error {
	type alias User
	var a struct {
		alias
		AltID string `json:"id"`
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*u = User(a.alias)
	if u.ID == "" {
		u.ID = a.AltID
	}
	return nil
}

// Merge shallow-merges non-empty fields of partial into the user
func (u *User) Merge(partial User) {
	if partial.Email != "" {
		u.Email = partial.Email
	}
	if partial.FirstName != "" {
		u.FirstName = partial.FirstName
	}
	if partial.LastName != "" {
		u.LastName = partial.LastName
	}
	if partial.Phone != "" {
		u.Phone = partial.Phone
	}
	if partial.Address != "" {
		u.Address = partial.Address
	}
	if partial.City != "" {
		u.City = partial.City
	}
	if partial.Role != "" {
		u.Role = partial.Role
	}
	if partial.Avatar != "" {
		u.Avatar = partial.Avatar
	}
	if partial.Points != 0 {
		u.Points = partial.Points
	}
}
