package control

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/normanking/animrig/internal/anim"
	"github.com/normanking/animrig/internal/character"
)

func dialTestServer(t *testing.T) (*websocket.Conn, *character.Manager) {
	t.Helper()

	chars := character.NewManager(zerolog.Nop())
	chars.Add(character.NewDefault("hannah"))

	srv := NewServer("", chars, zerolog.Nop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn, chars
}

func roundTrip(t *testing.T, conn *websocket.Conn, cmd Command) Response {
	t.Helper()
	require.NoError(t, conn.WriteJSON(cmd))
	var resp Response
	require.NoError(t, conn.ReadJSON(&resp))
	return resp
}

func TestSetEmotionCommand(t *testing.T) {
	conn, chars := dialTestServer(t)

	resp := roundTrip(t, conn, Command{
		Type:      "set_emotion",
		Character: "hannah",
		Emotion:   "happy",
		Intensity: 0.8,
		ID:        1,
	})

	assert.True(t, resp.OK)
	assert.Empty(t, resp.Error)
	assert.EqualValues(t, 1, resp.ID)

	target := chars.Get("hannah").Blender().Target()
	assert.Equal(t, anim.EmotionHappy, target.PrimaryEmotion)
	assert.InDelta(t, 0.8, float64(target.SmileIntensity), 1e-6)
}

func TestSetWindCommand(t *testing.T) {
	conn, chars := dialTestServer(t)

	resp := roundTrip(t, conn, Command{
		Type:      "set_wind",
		Character: "hannah",
		Wind:      &[3]float64{2, 0, -1},
	})

	assert.True(t, resp.OK)
	wind := chars.Get("hannah").WindForce()
	assert.Equal(t, float32(2), wind.X())
	assert.Equal(t, float32(-1), wind.Z())
}

func TestTriggerBlinkCommand(t *testing.T) {
	conn, chars := dialTestServer(t)

	resp := roundTrip(t, conn, Command{Type: "trigger_blink", Character: "hannah"})

	assert.True(t, resp.OK)
	assert.True(t, chars.Get("hannah").Blinking())
}

func TestAnimateFingersCommand(t *testing.T) {
	conn, chars := dialTestServer(t)

	resp := roundTrip(t, conn, Command{
		Type:      "animate_fingers",
		Character: "hannah",
		Hand:      "left",
		Bends:     &[5]float64{1, 1, 1, 1, 1},
	})
	assert.True(t, resp.OK)

	// Targets are approached over subsequent frames, not snapped.
	chars.Update(1.0)
	pose := chars.Get("hannah").FingerPose(anim.HandLeft)
	for _, bend := range pose.Bends {
		assert.InDelta(t, 1.0, float64(bend), 1e-3)
	}
}

func TestListCharactersCommand(t *testing.T) {
	conn, _ := dialTestServer(t)

	resp := roundTrip(t, conn, Command{Type: "list_characters"})
	assert.True(t, resp.OK)
	assert.Equal(t, []interface{}{"hannah"}, resp.Result)
}

func TestCommandErrors(t *testing.T) {
	conn, _ := dialTestServer(t)

	cases := []struct {
		name string
		cmd  Command
	}{
		{"unknown character", Command{Type: "set_emotion", Character: "ghost", Emotion: "happy"}},
		{"unknown emotion", Command{Type: "set_emotion", Character: "hannah", Emotion: "bored"}},
		{"missing wind vector", Command{Type: "set_wind", Character: "hannah"}},
		{"unknown hand", Command{Type: "animate_fingers", Character: "hannah", Hand: "middle", Bends: &[5]float64{}}},
		{"unknown type", Command{Type: "warp"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := roundTrip(t, conn, tc.cmd)
			assert.False(t, resp.OK)
			assert.NotEmpty(t, resp.Error)
		})
	}
}
