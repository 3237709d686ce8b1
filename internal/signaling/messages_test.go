// internal/signaling/messages_test.go
package signaling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJoinRoom(t *testing.T) {
	msg, err := DecodeInbound([]byte(`{"type":"join-room","roomId":"r1","userId":"u1","username":"Ana","isPlayer":true}`))
	require.NoError(t, err)

	jr, ok := msg.(*JoinRoom)
	require.True(t, ok)
	assert.Equal(t, "r1", jr.RoomID)
	assert.Equal(t, "u1", jr.UserID)
	assert.Equal(t, "Ana", jr.Username)
	assert.True(t, jr.IsPlayer)
}

func TestDecodeSignalKeepsKindAndOpaquePayload(t *testing.T) {
	for _, kind := range []string{TypeWebRTCOffer, TypeWebRTCAnswer, TypeWebRTCICECandidate} {
		frame := []byte(`{"type":"` + kind + `","roomId":"r1","targetUserId":"u2","candidate":{"sdpMid":"0"}}`)
		msg, err := DecodeInbound(frame)
		require.NoError(t, err, kind)

		sig, ok := msg.(*Signal)
		require.True(t, ok, kind)
		assert.Equal(t, kind, sig.Kind)
		assert.Equal(t, "u2", sig.TargetUserID)
		assert.JSONEq(t, `{"sdpMid":"0"}`, string(sig.Candidate))
	}
}

func TestDecodeGameActionKeepsRawData(t *testing.T) {
	msg, err := DecodeInbound([]byte(`{"type":"game-action","roomId":"r1","action":"pass-turn","data":{"to":"u2"}}`))
	require.NoError(t, err)

	ga, ok := msg.(*GameAction)
	require.True(t, ok)
	assert.Equal(t, "pass-turn", ga.Action)
	assert.JSONEq(t, `{"to":"u2"}`, string(ga.Data))
}

func TestDecodeUnknownType(t *testing.T) {
	_, err := DecodeInbound([]byte(`{"type":"bogus"}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownMessageType)
}

func TestDecodeMalformedFrame(t *testing.T) {
	_, err := DecodeInbound([]byte(`{"type":`))
	assert.Error(t, err)

	_, err = DecodeInbound([]byte(`not json at all`))
	assert.Error(t, err)
}
