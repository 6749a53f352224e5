package gimbal

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Interpolator drives one animatable value over time. Implementations live
// in the animation engine; Vec3Tween and QuatTween are the gween-backed ones
// shipped with this package.
type Interpolator interface {
	// Update advances the interpolator by dt seconds and reports whether its
	// value moved.
	Update(dt float32) bool
	// Done reports whether the interpolator reached its end value.
	Done() bool
}

// Vec3Interpolator produces vectors. It can drive FieldPosition and
// FieldScale.
type Vec3Interpolator interface {
	Interpolator
	Value() mgl32.Vec3
	// SetMin replaces the start value.
	SetMin(v mgl32.Vec3)
}

// QuatInterpolator produces rotations. It can drive FieldRotation.
type QuatInterpolator interface {
	Interpolator
	Value() mgl32.Quat
	// SetMin replaces the start value.
	SetMin(q mgl32.Quat)
}

// binding ties an interpolator to the local field it writes.
type binding struct {
	field       Field
	it          Interpolator
	fromCurrent bool
}

// AddInterpolator attaches it to the local field named by field. When
// fromCurrent is true the interpolator's start value is replaced with the
// field's value right before its first update.
//
// A field name that is unknown, or that does not match the interpolator's
// value type, is a configuration error: it is logged and the interpolator is
// not attached.
func (n *Node) AddInterpolator(field Field, it Interpolator, fromCurrent bool) {
	if err := checkBinding(field, it); err != nil {
		logger.Error("gimbal: interpolator not attached",
			zap.String("node", n.Name),
			zap.Uint32("id", n.ID),
			zap.String("field", string(field)),
			zap.Error(err))
		return
	}
	n.interpolators = append(n.interpolators, binding{field: field, it: it, fromCurrent: fromCurrent})
}

// NumInterpolators returns the number of attached, unfinished interpolators.
func (n *Node) NumInterpolators() int {
	return len(n.interpolators)
}

// StopInterpolators detaches every interpolator without applying them.
func (n *Node) StopInterpolators() {
	clear(n.interpolators)
	n.interpolators = n.interpolators[:0]
}

// Update advances every attached interpolator by dt seconds and writes their
// values into the local pose. Finished interpolators are detached. The node
// is invalidated at most once per call, however many channels moved.
func (n *Node) Update(dt float32) {
	if len(n.interpolators) == 0 {
		return
	}

	changed := false
	live := n.interpolators[:0]
	for _, b := range n.interpolators {
		if b.fromCurrent {
			n.seed(b)
			b.fromCurrent = false
		}
		if b.it.Update(dt) {
			n.apply(b)
			changed = true
		}
		if !b.it.Done() {
			live = append(live, b)
		}
	}
	clear(n.interpolators[len(live):])
	n.interpolators = live

	if changed {
		n.markDirty()
	}
}

// seed resets the interpolator's start value to the field's current value.
func (n *Node) seed(b binding) {
	switch b.field {
	case FieldPosition:
		b.it.(Vec3Interpolator).SetMin(n.position)
	case FieldScale:
		b.it.(Vec3Interpolator).SetMin(n.scale)
	case FieldRotation:
		b.it.(QuatInterpolator).SetMin(n.rotation)
	}
}

// apply writes the interpolator's value without invalidating; Update
// invalidates once afterwards.
func (n *Node) apply(b binding) {
	switch b.field {
	case FieldPosition:
		n.position = b.it.(Vec3Interpolator).Value()
	case FieldScale:
		n.scale = b.it.(Vec3Interpolator).Value()
	case FieldRotation:
		n.rotation = b.it.(QuatInterpolator).Value()
	}
}

func checkBinding(field Field, it Interpolator) error {
	if it == nil {
		return errors.New("nil interpolator")
	}
	switch field {
	case FieldPosition, FieldScale:
		if _, ok := it.(Vec3Interpolator); !ok {
			return errors.Errorf("field %q needs a Vec3Interpolator, got %T", field, it)
		}
	case FieldRotation:
		if _, ok := it.(QuatInterpolator); !ok {
			return errors.Errorf("field %q needs a QuatInterpolator, got %T", field, it)
		}
	default:
		return errors.Errorf("unknown field %q", field)
	}
	return nil
}
