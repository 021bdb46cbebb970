package app

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/boxstage/internal/config"
	"github.com/Faultbox/boxstage/internal/placement"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Default()
	cfg.Window.Width = 800
	cfg.Window.Height = 600
	a, err := New(cfg, nil)
	require.NoError(t, err)
	return a
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Placement.OverlapMode = "nope"
	_, err := New(cfg, nil)
	assert.Error(t, err)

	cfg = config.Default()
	cfg.Spawn.Color = "green-ish"
	_, err = New(cfg, nil)
	assert.Error(t, err)
}

func TestMinDistanceAppliesToStartPosition(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.MinDistance = 120
	a, err := New(cfg, nil)
	require.NoError(t, err)

	pos := a.Camera().Position()
	assert.InDelta(t, 120, pos.Length(), 1e-3)
	assert.InDelta(t, 120, pos.X, 1e-3)
}

func TestInitialState(t *testing.T) {
	a := newTestApp(t)
	st := a.Snapshot()

	assert.Equal(t, Dimensions{Width: 50, Height: 25, Depth: 50}, st.Outer)
	assert.Empty(t, st.Boxes)
	assert.True(t, st.ControlsEnabled)
	assert.Equal(t, "ignored", st.LastResult)
	assert.InDelta(t, 100, st.Camera[0], 1e-3)
	assert.InDelta(t, 0, st.Camera[2], 1e-3)
	assert.Equal(t, [2]float32{800, 600}, st.Viewport)
}

func TestSpawnThenOccupied(t *testing.T) {
	a := newTestApp(t)

	box, err := a.SpawnDefault()
	require.NoError(t, err)
	assert.Equal(t, "#00ff00", box.Color.Hex())

	_, err = a.Spawn(placement.SpawnRequest{Width: 4, Height: 4, Depth: 4})
	assert.ErrorIs(t, err, placement.ErrSpawnOccupied)

	_, err = a.Spawn(placement.SpawnRequest{Width: 60, Height: 4, Depth: 4})
	assert.ErrorIs(t, err, placement.ErrInvalidDimensions)

	assert.Len(t, a.Snapshot().Boxes, 1)
}

// The default camera sits on +X looking at the origin, so screen right is
// world -Z.
func TestDragClampsAndReleases(t *testing.T) {
	a := newTestApp(t)
	box, err := a.SpawnDefault()
	require.NoError(t, err)

	res := a.HandlePointer(placement.PointerEvent{Action: placement.Press, X: 400, Y: 300})
	require.Equal(t, placement.Selected, res)

	st := a.Snapshot()
	assert.Equal(t, box.ID, st.Selected)
	assert.False(t, st.ControlsEnabled, "orbit controls are disabled while dragging")

	res = a.HandlePointer(placement.PointerEvent{Action: placement.Move, X: 800, Y: 300})
	require.Equal(t, placement.Moved, res)
	assert.InDelta(t, -20, box.Position.Z, 1e-3)
	assert.InDelta(t, 0, box.Position.X, 1e-3)
	assert.InDelta(t, 0, box.Position.Y, 1e-3)

	res = a.HandlePointer(placement.PointerEvent{Action: placement.Release})
	assert.Equal(t, placement.Released, res)

	st = a.Snapshot()
	assert.Empty(t, st.Selected)
	assert.True(t, st.ControlsEnabled)
	assert.Equal(t, "released", st.LastResult)
}

func TestOrbitIgnoredWhileDragging(t *testing.T) {
	a := newTestApp(t)
	_, err := a.SpawnDefault()
	require.NoError(t, err)

	a.HandlePointer(placement.PointerEvent{Action: placement.Press, X: 400, Y: 300})
	before := a.Camera().Position()
	a.Orbit(100, 40)
	a.Zoom(1)
	assert.Equal(t, before, a.Camera().Position())

	a.HandlePointer(placement.PointerEvent{Action: placement.Release})
	a.Orbit(100, 40)
	assert.NotEqual(t, before, a.Camera().Position())
}

func TestSetOuterDimensionKeepsBoxes(t *testing.T) {
	a := newTestApp(t)
	box, err := a.SpawnDefault()
	require.NoError(t, err)

	assert.True(t, a.SetOuterDimension(placement.AxisWidth, 8))
	assert.False(t, a.SetOuterDimension(placement.AxisHeight, -1))

	st := a.Snapshot()
	assert.Equal(t, float32(8), st.Outer.Width)
	assert.Equal(t, float32(25), st.Outer.Height)
	assert.Equal(t, [3]float32{0, 0, 0}, st.Boxes[0].Position)
	assert.Equal(t, box.ID, st.Boxes[0].ID)
}

func TestCameraCommands(t *testing.T) {
	a := newTestApp(t)

	require.NoError(t, a.CameraCommand(ZoomIn))
	assert.InDelta(t, 100/1.05, a.Camera().Position().Length(), 1e-3)

	require.NoError(t, a.CameraCommand(ZoomOut))
	assert.InDelta(t, 100, a.Camera().Position().Length(), 1e-3)

	require.NoError(t, a.CameraCommand(RotateUp))
	assert.Greater(t, a.Camera().Position().Y, float32(0))

	require.NoError(t, a.CameraCommand(RotateDown))
	assert.InDelta(t, 0, a.Camera().Position().Y, 1e-3)

	require.NoError(t, a.CameraCommand(RotateLeft))
	require.NoError(t, a.CameraCommand(RotateRight))
	assert.InDelta(t, 0, a.Camera().Position().Z, 1e-3)

	assert.ErrorIs(t, a.CameraCommand("spin"), ErrUnknownCommand)
}

func TestResizeIgnoresDegenerate(t *testing.T) {
	a := newTestApp(t)
	a.Resize(0, 100)

	w, h := a.Viewport()
	assert.Equal(t, float32(800), w)
	assert.Equal(t, float32(600), h)
}

func TestSnapshotJSON(t *testing.T) {
	a := newTestApp(t)
	_, err := a.Spawn(placement.SpawnRequest{Width: 10, Height: 4, Depth: 2, Color: "#ff0000"})
	require.NoError(t, err)

	data, err := json.Marshal(a.Snapshot())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	boxes := decoded["boxes"].([]any)
	require.Len(t, boxes, 1)
	first := boxes[0].(map[string]any)
	assert.Equal(t, "#ff0000", first["color"])
	assert.Equal(t, []any{10.0, 4.0, 2.0}, first["size"])
	assert.NotContains(t, decoded, "selected")
	assert.InDelta(t, 45.0, decoded["fov"], 1e-3)
}
