package model

import "time"

// User is the chat user that invoked a command or interaction.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
	IsOwner bool   `json:"is_owner"`
}

// IsHighHierarchy reports whether the user administers the workspace.
func (u User) IsHighHierarchy() bool {
	return u.IsAdmin || u.IsOwner
}

type Room struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// OAuthToken is the stored Todoist credential of one chat user.
type OAuthToken struct {
	UserID       string     `json:"user_id"`
	AccessToken  string     `json:"access_token"`
	TokenType    string     `json:"token_type"`
	RefreshToken string     `json:"refresh_token"`
	Expiry       *time.Time `json:"expiry,omitempty"`
}
