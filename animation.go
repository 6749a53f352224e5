package gimbal

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Vec3Tween eases a vector from a start value to an end value, one gween
// tween per axis. It implements Vec3Interpolator.
type Vec3Tween struct {
	from, to mgl32.Vec3
	duration float32
	fn       ease.TweenFunc
	tweens   [3]*gween.Tween
	value    mgl32.Vec3
	done     bool
}

// NewVec3Tween creates a tween from from to to over duration seconds.
func NewVec3Tween(from, to mgl32.Vec3, duration float32, fn ease.TweenFunc) *Vec3Tween {
	t := &Vec3Tween{to: to, duration: duration, fn: fn}
	t.SetMin(from)
	return t
}

// SetMin restarts the tween from v.
func (t *Vec3Tween) SetMin(v mgl32.Vec3) {
	t.from = v
	t.value = v
	t.done = false
	for i := range t.tweens {
		t.tweens[i] = gween.New(v[i], t.to[i], t.duration, t.fn)
	}
}

// Update advances all three axes by dt seconds.
func (t *Vec3Tween) Update(dt float32) bool {
	if t.done {
		return false
	}
	allDone := true
	for i, tw := range t.tweens {
		val, finished := tw.Update(dt)
		t.value[i] = val
		if !finished {
			allDone = false
		}
	}
	t.done = allDone
	return true
}

// Done reports whether every axis reached its end value.
func (t *Vec3Tween) Done() bool { return t.done }

// Value returns the current vector.
func (t *Vec3Tween) Value() mgl32.Vec3 { return t.value }

// QuatTween eases a rotation with spherical interpolation. A single gween
// tween drives the interpolation factor from 0 to 1. It implements
// QuatInterpolator.
type QuatTween struct {
	from, to mgl32.Quat
	duration float32
	fn       ease.TweenFunc
	progress *gween.Tween
	value    mgl32.Quat
	done     bool
}

// NewQuatTween creates a tween from from to to over duration seconds.
func NewQuatTween(from, to mgl32.Quat, duration float32, fn ease.TweenFunc) *QuatTween {
	t := &QuatTween{to: to, duration: duration, fn: fn}
	t.SetMin(from)
	return t
}

// SetMin restarts the tween from q.
func (t *QuatTween) SetMin(q mgl32.Quat) {
	t.from = q
	t.value = q
	t.done = false
	t.progress = gween.New(0, 1, t.duration, t.fn)
}

// Update advances the interpolation factor by dt seconds.
func (t *QuatTween) Update(dt float32) bool {
	if t.done {
		return false
	}
	f, finished := t.progress.Update(dt)
	if finished {
		t.value = t.to
	} else {
		t.value = mgl32.QuatSlerp(t.from, t.to, f)
	}
	t.done = finished
	return true
}

// Done reports whether the end rotation was reached.
func (t *QuatTween) Done() bool { return t.done }

// Value returns the current rotation.
func (t *QuatTween) Value() mgl32.Quat { return t.value }

// TweenPosition animates the local position of n from its value at the next
// Update to to, over duration seconds.
func (n *Node) TweenPosition(to mgl32.Vec3, duration float32, fn ease.TweenFunc) *Vec3Tween {
	t := NewVec3Tween(n.position, to, duration, fn)
	n.AddInterpolator(FieldPosition, t, true)
	return t
}

// TweenRotation animates the local rotation of n towards to.
func (n *Node) TweenRotation(to mgl32.Quat, duration float32, fn ease.TweenFunc) *QuatTween {
	t := NewQuatTween(n.rotation, to, duration, fn)
	n.AddInterpolator(FieldRotation, t, true)
	return t
}

// TweenScale animates the local scale of n towards to.
func (n *Node) TweenScale(to mgl32.Vec3, duration float32, fn ease.TweenFunc) *Vec3Tween {
	t := NewVec3Tween(n.scale, to, duration, fn)
	n.AddInterpolator(FieldScale, t, true)
	return t
}
