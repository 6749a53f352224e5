// Package sim builds a gimbal scene from a config file, runs it for a fixed
// number of ticks and reports the resulting world poses.
package sim

import (
	"io"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/gimbal"
	"github.com/phanxgames/gimbal/internal/config"
)

var easings = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"inquad":     ease.InQuad,
	"outquad":    ease.OutQuad,
	"inoutquad":  ease.InOutQuad,
	"incubic":    ease.InCubic,
	"outcubic":   ease.OutCubic,
	"inoutcubic": ease.InOutCubic,
	"insine":     ease.InSine,
	"outsine":    ease.OutSine,
	"inoutsine":  ease.InOutSine,
	"inexpo":     ease.InExpo,
	"outexpo":    ease.OutExpo,
	"inoutexpo":  ease.InOutExpo,
	"outbounce":  ease.OutBounce,
	"outelastic": ease.OutElastic,
}

// Easing looks up an easing function by name. Names are case-insensitive and
// may contain dashes or underscores ("in-out-quad").
func Easing(name string) (ease.TweenFunc, bool) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(name))
	fn, ok := easings[key]
	return fn, ok
}

// Build creates the scene described by cfg. The config should already be
// validated; Build still fails on references it cannot resolve.
func Build(cfg *config.Config, log *zap.Logger) (*gimbal.Scene, error) {
	scene := gimbal.NewScene()
	for _, nc := range cfg.Nodes {
		n := gimbal.New(nc.Name)
		n.SetPosition(nc.Position)
		n.SetRotation(eulerDegrees(nc.Rotation))
		n.SetScale(nc.Scale)
		if nc.Parent != "" {
			parent := scene.Find(nc.Parent)
			if parent == nil {
				return nil, errors.Errorf("node %q: unknown parent %q", nc.Name, nc.Parent)
			}
			n.SetParent(parent, nc.Relocate)
		}
		scene.Add(n)
	}

	for i, tc := range cfg.Tweens {
		n := scene.Find(tc.Node)
		if n == nil {
			return nil, errors.Errorf("tweens[%d]: unknown node %q", i, tc.Node)
		}
		fn, ok := Easing(tc.Ease)
		if !ok {
			return nil, errors.Errorf("tweens[%d]: unknown ease %q", i, tc.Ease)
		}
		if err := attachTween(n, tc, fn); err != nil {
			return nil, errors.Wrapf(err, "tweens[%d]", i)
		}
		log.Debug("tween attached",
			zap.String("node", tc.Node),
			zap.String("field", tc.Field),
			zap.String("ease", tc.Ease),
			zap.Float32("duration", tc.Duration))
	}

	log.Info("scene built", zap.Int("nodes", scene.Len()), zap.Int("tweens", len(cfg.Tweens)))
	return scene, nil
}

func attachTween(n *gimbal.Node, tc config.TweenConfig, fn ease.TweenFunc) error {
	to := mgl32.Vec3(tc.To)
	switch gimbal.Field(tc.Field) {
	case gimbal.FieldPosition:
		n.AddInterpolator(gimbal.FieldPosition, gimbal.NewVec3Tween(n.Position(), to, tc.Duration, fn), tc.FromCurrent)
	case gimbal.FieldScale:
		n.AddInterpolator(gimbal.FieldScale, gimbal.NewVec3Tween(n.Scale(), to, tc.Duration, fn), tc.FromCurrent)
	case gimbal.FieldRotation:
		n.AddInterpolator(gimbal.FieldRotation, gimbal.NewQuatTween(n.Rotation(), eulerDegrees(tc.To), tc.Duration, fn), tc.FromCurrent)
	default:
		return errors.Errorf("unknown field %q", tc.Field)
	}
	return nil
}

// Run advances scene by ticks steps of dt seconds.
func Run(scene *gimbal.Scene, ticks int, dt float32) {
	for i := 0; i < ticks; i++ {
		scene.Update(dt)
	}
}

// Entry is one node in a report.
type Entry struct {
	Name   string       `yaml:"name"`
	Parent string       `yaml:"parent,omitempty"`
	Local  gimbal.State `yaml:"local"`
	World  gimbal.State `yaml:"world"`
}

// Snapshot captures the local and world pose of every node in scene, in
// scene order.
func Snapshot(scene *gimbal.Scene) []Entry {
	nodes := scene.Nodes()
	out := make([]Entry, 0, len(nodes))
	for _, n := range nodes {
		e := Entry{Name: n.Name, Local: n.State(), World: n.World().State()}
		if p := n.Parent(); p != nil {
			e.Parent = p.Name
		}
		out = append(out, e)
	}
	return out
}

// Report writes Snapshot(scene) to w as YAML.
func Report(w io.Writer, scene *gimbal.Scene) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string][]Entry{"nodes": Snapshot(scene)}); err != nil {
		return errors.Wrap(err, "encode report")
	}
	return errors.Wrap(enc.Close(), "encode report")
}

func eulerDegrees(d [3]float32) mgl32.Quat {
	return gimbal.EulerToQuat(mgl32.Vec3{
		mgl32.DegToRad(d[0]),
		mgl32.DegToRad(d[1]),
		mgl32.DegToRad(d[2]),
	})
}
