package scene

import (
	"testing"

	"github.com/Faultbox/boxstage/internal/engine/picking"
	"github.com/Faultbox/boxstage/internal/placement"
	"github.com/Faultbox/boxstage/pkg/math"
)

var size10 = math.Vec3{X: 10, Y: 10, Z: 10}

func rayAlongNegZ(x, y float32) picking.Ray {
	return picking.Ray{Origin: math.Vec3{X: x, Y: y, Z: 100}, Direction: math.Vec3{Z: -1}}
}

func TestPickNearest(t *testing.T) {
	s := New(placement.NewOuterBox(50, 25, 50))
	back := placement.NewInnerBox(size10, math.Vec3{Z: -15}, placement.Color{})
	front := placement.NewInnerBox(size10, math.Vec3{Z: 15}, placement.Color{})
	s.Add(back)
	s.Add(front)

	got, ok := s.Pick(rayAlongNegZ(0, 0))
	if !ok || got != front {
		t.Errorf("Pick = %v, %v; want the front box", got, ok)
	}
}

func TestPickTieKeepsInsertionOrder(t *testing.T) {
	s := New(placement.NewOuterBox(50, 25, 50))
	first := placement.NewInnerBox(size10, math.Vec3{}, placement.Color{})
	second := placement.NewInnerBox(size10, math.Vec3{}, placement.Color{})
	s.Add(first)
	s.Add(second)

	got, ok := s.Pick(rayAlongNegZ(1, 1))
	if !ok || got != first {
		t.Error("coincident boxes must resolve to the first added")
	}
}

func TestPickMiss(t *testing.T) {
	s := New(placement.NewOuterBox(50, 25, 50))
	s.Add(placement.NewInnerBox(size10, math.Vec3{}, placement.Color{}))

	if _, ok := s.Pick(rayAlongNegZ(20, 0)); ok {
		t.Error("ray beside the box must miss")
	}
	if _, ok := New(placement.NewOuterBox(1, 1, 1)).Pick(rayAlongNegZ(0, 0)); ok {
		t.Error("empty scene must miss")
	}
}

func TestAddIsIdentityUnique(t *testing.T) {
	s := New(placement.NewOuterBox(50, 25, 50))
	b := placement.NewInnerBox(size10, math.Vec3{}, placement.Color{})

	if !s.Add(b) || s.Add(b) {
		t.Error("a box can be added once")
	}
	if len(s.Boxes()) != 1 || s.Collection().Len() != 1 {
		t.Errorf("Boxes = %d", len(s.Boxes()))
	}
}
