package placement

import (
	"errors"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/boxstage/pkg/math"
)

var (
	// ErrInvalidDimensions is returned when a requested size is not
	// positive or does not fit strictly inside the outer box.
	ErrInvalidDimensions = errors.New("placement: invalid box dimensions")
	// ErrSpawnOccupied is returned when the spawn point is already taken.
	ErrSpawnOccupied = errors.New("placement: spawn position occupied")
)

// SpawnRequest describes a box to create. Width is X, Height is Y and
// Depth is Z. Color is a "#rrggbb" string.
type SpawnRequest struct {
	Width  float32
	Height float32
	Depth  float32
	Color  string
}

// Size returns the requested dimensions as a vector.
func (r SpawnRequest) Size() math.Vec3 {
	return math.Vec3{X: r.Width, Y: r.Height, Z: r.Depth}
}

// Spawner validates spawn requests and adds new boxes at the origin.
type Spawner struct {
	outer        *OuterBox
	boxes        *Collection
	guard        Guard
	defaultColor Color
}

// NewSpawner creates a spawner adding into boxes. defaultColor is used when
// a request's color cannot be parsed.
func NewSpawner(outer *OuterBox, boxes *Collection, guard Guard, defaultColor Color) *Spawner {
	return &Spawner{
		outer:        outer,
		boxes:        boxes,
		guard:        guard,
		defaultColor: defaultColor,
	}
}

// Spawn creates a box at the origin. On any validation failure nothing is
// created and a sentinel error is returned.
func (s *Spawner) Spawn(req SpawnRequest) (*InnerBox, error) {
	size := req.Size()
	outer := s.outer.Size()

	for axis := 0; axis < 3; axis++ {
		v := size.Axis(axis)
		if v <= 0 || v >= outer.Axis(axis) {
			return nil, ErrInvalidDimensions
		}
	}

	if _, hit := s.guard.FirstOverlap(math.Vec3{}, size.Scale(0.5), s.boxes.All(), nil); hit {
		return nil, ErrSpawnOccupied
	}

	box := NewInnerBox(size, math.Vec3{}, s.parseColor(req.Color))
	s.boxes.Add(box)
	return box, nil
}

func (s *Spawner) parseColor(hex string) Color {
	c, err := ParseColor(hex)
	if err != nil {
		return s.defaultColor
	}
	return c
}

// Hex formats c as "#rrggbb".
func (c Color) Hex() string {
	return colorful.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2])}.Clamped().Hex()
}

// ParseColor converts "#rrggbb" to a Color.
func ParseColor(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, err
	}
	return Color{float32(c.R), float32(c.G), float32(c.B)}, nil
}
