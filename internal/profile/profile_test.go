package profile

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ProfileStore_Service/internal/models"
	"ProfileStore_Service/internal/storage"
)

type failingKV struct {
	err error
}

func (f failingKV) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f failingKV) Set(context.Context, string, []byte) error { return f.err }
func (f failingKV) Delete(context.Context, string) error { return f.err }
func (f failingKV) Close() error { return nil }

func newStores(t *testing.T) map[string]*Store {
	t.Helper()
	sqliteKV, err := storage.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "profile.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { sqliteKV.Close() })

	return map[string]*Store{
		"memory": NewStore(storage.NewMemory(zap.NewNop()), DefaultKey),
		"sqlite": NewStore(sqliteKV, DefaultKey),
	}
}

func TestDefaultState(t *testing.T) {
	first := DefaultState()
	second := DefaultState()

	assert.Equal(t, first, second)
	assert.Equal(t, "https://github.com/uesugieriislf/claude-web/blob/main/src/assets/avatar2.jpg", first.UserInfo.Avatar)
	assert.Equal(t, "uesugieriislf", first.UserInfo.Name)
	assert.Contains(t, first.UserInfo.Description, "GitHub")
	assert.Equal(t,
		`Star on <a href="https://github.com/Chanzhaoyu/chatgpt-bot" class="text-blue-500" target="_blank" >GitHub</a>`,
		first.UserInfo.Description)
}

func TestLoad_EmptyStorageReturnsDefault(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			got, err := store.Load(context.Background())
			require.NoError(t, err)
			assert.Equal(t, DefaultState(), got)
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	ctx := context.Background()
	want := models.UserState{UserInfo: models.UserInfo{Avatar: "x", Name: "y", Description: "z"}}

	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save(ctx, want))

			got, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestSave_Idempotent(t *testing.T) {
	ctx := context.Background()
	state := models.UserState{UserInfo: models.UserInfo{Avatar: "a.png", Name: "kim", Description: "<b>hi</b>"}}

	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save(ctx, state))
			once, err := store.Load(ctx)
			require.NoError(t, err)

			require.NoError(t, store.Save(ctx, state))
			require.NoError(t, store.Save(ctx, state))
			twice, err := store.Load(ctx)
			require.NoError(t, err)

			assert.Equal(t, once, twice)
			again, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, twice, again)
		})
	}
}

func TestLoad_PartialUserInfoIsNotFilledFromDefault(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory(zap.NewNop())
	require.NoError(t, kv.Set(ctx, DefaultKey, []byte(`{"userInfo":{"avatar":"me.png","name":"me"}}`)))

	got, err := NewStore(kv, DefaultKey).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.UserInfo{Avatar: "me.png", Name: "me"}, got.UserInfo)
	assert.Empty(t, got.UserInfo.Description)
}

func TestLoad_MissingUserInfoKeepsDefault(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory(zap.NewNop())
	require.NoError(t, kv.Set(ctx, DefaultKey, []byte(`{"theme":"dark"}`)))

	got, err := NewStore(kv, DefaultKey).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultState(), got)
}

func TestLoad_MalformedRecord(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory(zap.NewNop())
	store := NewStore(kv, DefaultKey)

	require.NoError(t, kv.Set(ctx, DefaultKey, []byte(`[1,2,3]`)))
	_, err := store.Load(ctx)
	assert.ErrorContains(t, err, "decode stored record")

	require.NoError(t, kv.Set(ctx, DefaultKey, []byte(`{"userInfo":"nope"}`)))
	_, err = store.Load(ctx)
	assert.ErrorContains(t, err, "decode stored userInfo")
}

func TestStore_PropagatesStorageErrors(t *testing.T) {
	ctx := context.Background()
	quota := errors.New("quota exceeded")
	store := NewStore(failingKV{err: quota}, DefaultKey)

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, quota)

	err = store.Save(ctx, DefaultState())
	assert.ErrorIs(t, err, quota)

	err = store.Reset(ctx)
	assert.ErrorIs(t, err, quota)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save(ctx, models.UserState{UserInfo: models.UserInfo{Name: "temp"}}))
			require.NoError(t, store.Reset(ctx))

			got, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, DefaultState(), got)
		})
	}
}

func TestKeyFor(t *testing.T) {
	assert.Equal(t, "userStorage", KeyFor("userStorage", ""))
	assert.Equal(t, "userStorage:gildong", KeyFor("userStorage", "gildong"))
}

func TestScopedStoresAreIndependent(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory(zap.NewNop())
	alice := NewStore(kv, KeyFor(DefaultKey, "alice"))
	bob := NewStore(kv, KeyFor(DefaultKey, "bob"))

	require.NoError(t, alice.Save(ctx, models.UserState{UserInfo: models.UserInfo{Name: "alice"}}))

	got, err := bob.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultState(), got)
}

func TestOverlay(t *testing.T) {
	base := DefaultState()
	cases := []struct {
		name string
		raw  string
		want models.UserState
	}{
		{
			name: "null record",
			raw:  `null`,
			want: base,
		},
		{
			name: "empty object",
			raw:  `{}`,
			want: base,
		},
		{
			name: "empty userInfo replaces every field",
			raw:  `{"userInfo":{}}`,
			want: models.UserState{},
		},
		{
			name: "full userInfo",
			raw:  `{"userInfo":{"avatar":"x","name":"y","description":"z"},"extra":true}`,
			want: models.UserState{UserInfo: models.UserInfo{Avatar: "x", Name: "y", Description: "z"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Overlay(base, []byte(tc.raw))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestOverlay_KeysMatchExactly(t *testing.T) {
	got, err := Overlay(DefaultState(), []byte(`{"userInfo":{"Name":"y","AVATAR":"x","description":"z"},"UserInfo":{"name":"ignored"}}`))
	require.NoError(t, err)
	assert.Equal(t, models.UserState{UserInfo: models.UserInfo{Description: "z"}}, got)
}

func TestOverlay_NonStringField(t *testing.T) {
	_, err := Overlay(DefaultState(), []byte(`{"userInfo":{"name":5}}`))
	assert.ErrorContains(t, err, "decode stored userInfo")
}

func TestSaveRaw_StoresBodyVerbatim(t *testing.T) {
	ctx := context.Background()
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			state, err := store.SaveRaw(ctx, []byte(`{}`))
			require.NoError(t, err)
			assert.Equal(t, DefaultState(), state)

			loaded, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, DefaultState(), loaded)

			raw := `{"userInfo":{"avatar":"x","name":"y"},"theme":"dark"}`
			state, err = store.SaveRaw(ctx, []byte(raw))
			require.NoError(t, err)
			assert.Equal(t, models.UserInfo{Avatar: "x", Name: "y"}, state.UserInfo)

			loaded, err = store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, state, loaded)
		})
	}
}

func TestSaveRaw_RejectsNonObjects(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory(zap.NewNop())
	store := NewStore(kv, DefaultKey)

	for _, raw := range []string{`null`, `[1]`, `"text"`, `{"userInfo":`, `{"userInfo":{"name":5}}`} {
		_, err := store.SaveRaw(ctx, []byte(raw))
		assert.ErrorIs(t, err, ErrInvalidRecord, raw)
	}

	_, err := kv.Get(ctx, DefaultKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSaveRaw_PropagatesStorageErrors(t *testing.T) {
	quota := errors.New("quota exceeded")
	_, err := NewStore(failingKV{err: quota}, DefaultKey).SaveRaw(context.Background(), []byte(`{}`))
	assert.ErrorIs(t, err, quota)
	assert.NotErrorIs(t, err, ErrInvalidRecord)
}
