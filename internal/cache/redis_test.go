// internal/cache/redis_test.go
package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishRoomAction(t *testing.T) {
	mr := miniredis.RunT(t)
	require.NoError(t, ConnectRedis(mr.Addr(), 0))

	rec := RoomActionRecord{
		RoomID:    "r1",
		UserID:    "u1",
		Action:    "answer",
		Data:      json.RawMessage(`{"letter":"A"}`),
		Timestamp: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC).UnixMilli(),
	}
	require.NoError(t, PublishRoomAction(context.Background(), "test_actions", rec))

	items, err := mr.List("test_actions")
	require.NoError(t, err)
	require.Len(t, items, 1)

	var got RoomActionRecord
	require.NoError(t, json.Unmarshal([]byte(items[0]), &got))
	assert.Equal(t, rec.RoomID, got.RoomID)
	assert.Equal(t, rec.UserID, got.UserID)
	assert.Equal(t, rec.Action, got.Action)
	assert.JSONEq(t, string(rec.Data), string(got.Data))
}

func TestPublishRoomActionOrderPreserved(t *testing.T) {
	mr := miniredis.RunT(t)
	require.NoError(t, ConnectRedis(mr.Addr(), 0))

	for _, action := range []string{"spin", "answer", "pass-turn"} {
		rec := RoomActionRecord{RoomID: "r1", UserID: "u1", Action: action}
		require.NoError(t, PublishRoomAction(context.Background(), "test_actions", rec))
	}

	items, err := mr.List("test_actions")
	require.NoError(t, err)
	require.Len(t, items, 3)

	var first RoomActionRecord
	require.NoError(t, json.Unmarshal([]byte(items[0]), &first))
	assert.Equal(t, "spin", first.Action)
}
