package gimbal

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// stepVec3 adds step to its value for a fixed number of updates.
type stepVec3 struct {
	min, value, step mgl32.Vec3
	left             int
	seeded           int
}

func (s *stepVec3) Update(dt float32) bool {
	if s.left == 0 {
		return false
	}
	s.left--
	s.value = s.value.Add(s.step)
	return true
}

func (s *stepVec3) Done() bool        { return s.left == 0 }
func (s *stepVec3) Value() mgl32.Vec3 { return s.value }

func (s *stepVec3) SetMin(v mgl32.Vec3) {
	s.min, s.value = v, v
	s.seeded++
}

// fixedQuat jumps to its target on the first update.
type fixedQuat struct {
	target mgl32.Quat
	done   bool
}

func (f *fixedQuat) Update(dt float32) bool {
	if f.done {
		return false
	}
	f.done = true
	return true
}

func (f *fixedQuat) Done() bool        { return f.done }
func (f *fixedQuat) Value() mgl32.Quat { return f.target }
func (f *fixedQuat) SetMin(mgl32.Quat) {}

// scalarOnly is an Interpolator with no usable value type.
type scalarOnly struct{}

func (scalarOnly) Update(float32) bool { return true }
func (scalarOnly) Done() bool          { return false }

func observeErrors(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.ErrorLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })
	return logs
}

func TestUpdateWithoutInterpolatorsIsNoop(t *testing.T) {
	n := New("n")
	n.SetPosition(mgl32.Vec3{1, 0, 0})
	flag := n.AddWorldDirtyFlag()
	n.WorldDirtyFlag(flag, true)

	n.Update(0.016)

	if n.WorldDirtyFlag(flag, false) {
		t.Error("Update with no interpolators must not invalidate")
	}
}

func TestUpdateAppliesAndDetachesFinished(t *testing.T) {
	n := New("n")
	it := &stepVec3{step: mgl32.Vec3{1, 0, 0}, left: 2}
	n.AddInterpolator(FieldPosition, it, false)

	n.Update(0.1)
	assertVec(t, "after 1", n.Position(), mgl32.Vec3{1, 0, 0})
	if n.NumInterpolators() != 1 {
		t.Fatalf("NumInterpolators = %d, want 1", n.NumInterpolators())
	}

	n.Update(0.1)
	assertVec(t, "after 2", n.Position(), mgl32.Vec3{2, 0, 0})
	if n.NumInterpolators() != 0 {
		t.Fatalf("NumInterpolators = %d, want 0 after finishing", n.NumInterpolators())
	}
	if n.IsIdentity() {
		t.Error("animated node should not be identity")
	}
}

func TestUpdateFinalStepInvalidates(t *testing.T) {
	parent := New("parent")
	child := New("child")
	child.SetParent(parent, false)
	child.SetPosition(mgl32.Vec3{0, 1, 0})
	_ = child.World()

	parent.AddInterpolator(FieldPosition, &stepVec3{step: mgl32.Vec3{5, 0, 0}, left: 1}, false)
	parent.Update(1)

	assertVec(t, "child world", child.World().Position, mgl32.Vec3{5, 1, 0})
}

func TestUpdateInvalidatesOncePerTick(t *testing.T) {
	parent := New("parent")
	child := New("child")
	child.SetParent(parent, false)
	flag := child.AddWorldDirtyFlag()
	child.WorldDirtyFlag(flag, true)

	parent.AddInterpolator(FieldPosition, &stepVec3{step: mgl32.Vec3{1, 0, 0}, left: 3}, false)
	parent.AddInterpolator(FieldScale, &stepVec3{value: oneVec3, step: mgl32.Vec3{1, 1, 1}, left: 3}, false)
	parent.AddInterpolator(FieldRotation, &fixedQuat{target: rotZ(90)}, false)

	parent.Update(0.1)

	if !child.WorldDirtyFlag(flag, true) {
		t.Fatal("descendant should observe the tick")
	}
	if child.WorldDirtyFlag(flag, true) {
		t.Fatal("one tick should be observed once")
	}
	assertVec(t, "position", parent.Position(), mgl32.Vec3{1, 0, 0})
	assertVec(t, "scale", parent.Scale(), mgl32.Vec3{2, 2, 2})
	if parent.Rotation() != rotZ(90) {
		t.Errorf("rotation = %v, want %v", parent.Rotation(), rotZ(90))
	}
	if parent.NumInterpolators() != 2 {
		t.Errorf("NumInterpolators = %d, want 2", parent.NumInterpolators())
	}
}

func TestAddInterpolatorFromCurrentSeedsOnFirstUpdate(t *testing.T) {
	n := New("n")
	it := &stepVec3{step: mgl32.Vec3{0, 1, 0}, left: 5}
	n.AddInterpolator(FieldPosition, it, true)

	// Moved between attach and first update: the seed must see this value.
	n.SetPosition(mgl32.Vec3{10, 0, 0})
	n.Update(0.1)
	n.Update(0.1)

	if it.seeded != 1 {
		t.Errorf("SetMin called %d times, want 1", it.seeded)
	}
	assertVec(t, "min", it.min, mgl32.Vec3{10, 0, 0})
	assertVec(t, "position", n.Position(), mgl32.Vec3{10, 2, 0})
}

func TestAddInterpolatorFromCurrentScale(t *testing.T) {
	n := New("n")
	n.SetScale(mgl32.Vec3{3, 3, 3})
	it := &stepVec3{step: mgl32.Vec3{1, 1, 1}, left: 1}
	n.AddInterpolator(FieldScale, it, true)
	n.Update(0.1)
	assertVec(t, "scale", n.Scale(), mgl32.Vec3{4, 4, 4})
}

func TestAddInterpolatorMismatchIsLoggedAndIgnored(t *testing.T) {
	cases := []struct {
		name  string
		field Field
		it    Interpolator
	}{
		{"vec3 on rotation", FieldRotation, &stepVec3{left: 1}},
		{"quat on position", FieldPosition, &fixedQuat{}},
		{"quat on scale", FieldScale, &fixedQuat{}},
		{"unknown field", Field("alpha"), &stepVec3{left: 1}},
		{"scalar", FieldPosition, scalarOnly{}},
		{"nil", FieldPosition, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logs := observeErrors(t)
			n := New("n")
			n.AddInterpolator(tc.field, tc.it, true)

			if n.NumInterpolators() != 0 {
				t.Errorf("NumInterpolators = %d, want 0", n.NumInterpolators())
			}
			if logs.Len() != 1 {
				t.Fatalf("logged %d entries, want 1", logs.Len())
			}
			if got := logs.All()[0].ContextMap()["field"]; got != string(tc.field) {
				t.Errorf("logged field = %v, want %q", got, tc.field)
			}
			n.Update(0.1)
			if !n.IsIdentity() {
				t.Error("rejected interpolator must not mutate the node")
			}
		})
	}
}

func TestStopInterpolators(t *testing.T) {
	n := New("n")
	n.AddInterpolator(FieldPosition, &stepVec3{step: mgl32.Vec3{1, 0, 0}, left: 3}, false)
	n.StopInterpolators()
	n.Update(0.1)
	if n.NumInterpolators() != 0 || !n.IsIdentity() {
		t.Error("stopped interpolators must not run")
	}
}
