package gimbal

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// State is the persisted form of a Node: its local pose and nothing else.
// Parent links and caches are rebuilt after loading.
type State struct {
	Position [3]float32 `yaml:"position" toml:"position"`
	Rotation [4]float32 `yaml:"rotation" toml:"rotation"` // x, y, z, w
	Scale    [3]float32 `yaml:"scale" toml:"scale"`
}

// State returns the persistable local pose of n.
func (n *Node) State() State {
	return n.Local().State()
}

// Load replaces the local pose of n with st and fully re-dirties n and its
// subtree. The rotation is normalized; a zero-length rotation is rejected.
func (n *Node) Load(st State) error {
	q := mgl32.Quat{W: st.Rotation[3], V: mgl32.Vec3{st.Rotation[0], st.Rotation[1], st.Rotation[2]}}
	if q.Len() < Epsilon {
		return errors.Errorf("gimbal: node %q: zero-length rotation", n.Name)
	}
	n.position = st.Position
	n.rotation = q.Normalize()
	n.scale = st.Scale
	n.markDirty()
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (n *Node) MarshalYAML() (interface{}, error) {
	return n.State(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Missing fields keep the
// identity pose values.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	st := IdentityPose.State()
	if err := value.Decode(&st); err != nil {
		return errors.Wrap(err, "gimbal: decode node state")
	}
	if n.localDirty.Len() == 0 {
		// Decoding into a zero Node: give it the same setup as New.
		n.setup(n.Name)
	}
	return n.Load(st)
}

// State converts p to its persisted form.
func (p Pose) State() State {
	return State{
		Position: p.Position,
		Rotation: [4]float32{p.Rotation.V[0], p.Rotation.V[1], p.Rotation.V[2], p.Rotation.W},
		Scale:    p.Scale,
	}
}
