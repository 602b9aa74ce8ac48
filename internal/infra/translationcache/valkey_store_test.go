package translationcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/valkey-io/valkey-go/mock"
	"go.uber.org/mock/gomock"
)

func newMockValkeyStore(t *testing.T, prefix string) (*ValkeyStore, *mock.Client) {
	t.Helper()
	ctrl := gomock.NewController(t)
	client := mock.NewClient(ctrl)
	return NewValkeyStore(client, prefix), client
}

func TestValkeyStoreGetHit(t *testing.T) {
	store, client := newMockValkeyStore(t, "")
	client.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "translation:What is Django?:es")).
		Return(mock.Result(mock.ValkeyString("¿Qué es Django?")))

	got, ok, err := store.Get(context.Background(), "What is Django?", "es")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "¿Qué es Django?", got)
}

func TestValkeyStoreGetMiss(t *testing.T) {
	store, client := newMockValkeyStore(t, "")
	client.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "translation:Hello:fr")).
		Return(mock.Result(mock.ValkeyNil()))

	got, ok, err := store.Get(context.Background(), "Hello", "fr")
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, got)
}

func TestValkeyStoreGetError(t *testing.T) {
	store, client := newMockValkeyStore(t, "")
	boom := errors.New("connection reset")
	client.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "translation:Hello:es")).
		Return(mock.ErrorResult(boom))

	_, ok, err := store.Get(context.Background(), "Hello", "es")
	require.ErrorIs(t, err, boom)
	require.False(t, ok)
}

func TestValkeyStoreKeyPrefix(t *testing.T) {
	store, client := newMockValkeyStore(t, "faq:")
	client.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "faq:translation:Hello:hi")).
		Return(mock.Result(mock.ValkeyString("नमस्ते")))

	got, ok, err := store.Get(context.Background(), "Hello", "hi")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "नमस्ते", got)
}

func TestValkeyStoreSetTTL(t *testing.T) {
	cases := []struct {
		name string
		ttl  time.Duration
		args []string
	}{
		{name: "whole seconds", ttl: time.Hour, args: []string{"EX", "3600"}},
		{name: "fraction truncates", ttl: 1500 * time.Millisecond, args: []string{"EX", "1"}},
		{name: "sub-second clamps to one", ttl: 200 * time.Millisecond, args: []string{"EX", "1"}},
		{name: "zero keeps forever", ttl: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, client := newMockValkeyStore(t, "")
			want := append([]string{"SET", "translation:Hello:es", "Hola"}, tc.args...)
			client.EXPECT().
				Do(gomock.Any(), mock.Match(want...)).
				Return(mock.Result(mock.ValkeyString("OK")))

			require.NoError(t, store.Set(context.Background(), "Hello", "es", "Hola", tc.ttl))
		})
	}
}

func TestValkeyStoreSetError(t *testing.T) {
	store, client := newMockValkeyStore(t, "")
	boom := errors.New("READONLY")
	client.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		Return(mock.ErrorResult(boom))

	require.ErrorIs(t, store.Set(context.Background(), "Hello", "es", "Hola", time.Minute), boom)
}
