package websocket

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitWrapsEnvelope(t *testing.T) {
	c := NewClient("abc", nil)

	require.True(t, c.Emit("searching", map[string]int{"queueSize": 2}))

	var env Envelope
	require.NoError(t, json.Unmarshal(<-c.Send, &env))
	assert.Equal(t, "searching", env.Type)
	assert.JSONEq(t, `{"queueSize":2}`, string(env.Data))
}

func TestEmitLiteralPayload(t *testing.T) {
	c := NewClient("abc", nil)

	require.True(t, c.Emit("countdown", 3))
	assert.JSONEq(t, `{"type":"countdown","data":3}`, string(<-c.Send))
}

func TestEmitDropsWhenBufferFull(t *testing.T) {
	c := NewClient("abc", nil)
	for i := 0; i < cap(c.Send); i++ {
		require.True(t, c.Emit("countdown", 3))
	}

	assert.False(t, c.Emit("countdown", 3))
}

func TestEmitAfterClose(t *testing.T) {
	c := NewClient("abc", nil)
	c.Close()

	assert.False(t, c.Emit("countdown", 3))
}
