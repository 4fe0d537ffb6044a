package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ProfileStore_Service/internal/models"
	"ProfileStore_Service/internal/storage"
)

// DefaultKey is the storage key of the profile record.
const DefaultKey = "userStorage"

const (
	defaultAvatar      = "https://github.com/uesugieriislf/claude-web/blob/main/src/assets/avatar2.jpg"
	defaultName        = "uesugieriislf"
	defaultDescription = `Star on <a href="https://github.com/Chanzhaoyu/chatgpt-bot" class="text-blue-500" target="_blank" >GitHub</a>`
)

// DefaultState returns the profile used when nothing has been saved.
func DefaultState() models.UserState {
	return models.UserState{
		UserInfo: models.UserInfo{
			Avatar:      defaultAvatar,
			Name:        defaultName,
			Description: defaultDescription,
		},
	}
}

// KeyFor scopes base to one subject. An empty subject keeps the shared key.
func KeyFor(base, subject string) string {
	if subject == "" {
		return base
	}
	return base + ":" + subject
}

// Store loads and saves one profile record in a KV collaborator.
type Store struct {
	kv  storage.KV
	key string
}

func NewStore(kv storage.KV, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{kv: kv, key: key}
}

func (s *Store) Key() string {
	return s.key
}

// Load returns the defaults overlaid by the persisted record, if any.
func (s *Store) Load(ctx context.Context) (models.UserState, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		return DefaultState(), nil
	}
	if err != nil {
		return models.UserState{}, fmt.Errorf("profile.Load(): get %q: %w", s.key, err)
	}
	state, err := Overlay(DefaultState(), raw)
	if err != nil {
		return models.UserState{}, fmt.Errorf("profile.Load(): %q: %w", s.key, err)
	}
	return state, nil
}

// ErrInvalidRecord marks a record that cannot be overlaid on the defaults.
var ErrInvalidRecord = errors.New("invalid profile record")

// Save overwrites the persisted record with state.
func (s *Store) Save(ctx context.Context, state models.UserState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("profile.Save(): encode: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("profile.Save(): set %q: %w", s.key, err)
	}
	return nil
}

// SaveRaw stores a JSON object byte for byte and returns what Load will
// yield for it. Keys the record omits stay absent, so their defaults apply.
func (s *Store) SaveRaw(ctx context.Context, raw []byte) (models.UserState, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil || top == nil {
		return models.UserState{}, fmt.Errorf("profile.SaveRaw(): %w: not a JSON object", ErrInvalidRecord)
	}
	state, err := Overlay(DefaultState(), raw)
	if err != nil {
		return models.UserState{}, fmt.Errorf("profile.SaveRaw(): %w: %v", ErrInvalidRecord, err)
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		return models.UserState{}, fmt.Errorf("profile.SaveRaw(): set %q: %w", s.key, err)
	}
	return state, nil
}

// Reset removes the persisted record so the next Load yields DefaultState.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("profile.Reset(): delete %q: %w", s.key, err)
	}
	return nil
}

// Overlay merges a stored JSON record over base, one level deep.
//
// A top-level key present in raw replaces the base value as a whole. A stored
// userInfo starts from an empty UserInfo, so any field it omits is empty in
// the result rather than taken from base. Keys match exactly: "Name" is not
// "name".
func Overlay(base models.UserState, raw []byte) (models.UserState, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return models.UserState{}, fmt.Errorf("decode stored record: %w", err)
	}

	merged := base
	if info, ok := top["userInfo"]; ok {
		stored, err := decodeUserInfo(info)
		if err != nil {
			return models.UserState{}, fmt.Errorf("decode stored userInfo: %w", err)
		}
		merged.UserInfo = stored
	}
	return merged, nil
}

func decodeUserInfo(raw json.RawMessage) (models.UserInfo, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return models.UserInfo{}, err
	}

	var info models.UserInfo
	for key, dst := range map[string]*string{
		"avatar":      &info.Avatar,
		"name":        &info.Name,
		"description": &info.Description,
	} {
		value, ok := fields[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(value, dst); err != nil {
			return models.UserInfo{}, fmt.Errorf("%s: %w", key, err)
		}
	}
	return info, nil
}
