package models

// UserInfo is the profile shown next to the user's messages.
type UserInfo struct {
	Avatar      string `json:"avatar"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UserState is the persisted record. Wrapping UserInfo keeps the storage key
// stable if more user settings are added later.
type UserState struct {
	UserInfo UserInfo `json:"userInfo"`
}
