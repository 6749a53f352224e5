package gimbal

import "github.com/go-gl/mathgl/mgl32"

// Field names a local channel that an Interpolator can drive.
type Field string

const (
	FieldPosition Field = "position" // local position, driven by a Vec3Interpolator
	FieldRotation Field = "rotation" // local rotation, driven by a QuatInterpolator
	FieldScale    Field = "scale"    // local scale, driven by a Vec3Interpolator
)

// Channel indices accepted by Node.Set.
const (
	IndexPosition = iota // value is a position
	IndexRotation        // value is Euler angles in radians (X, Y, Z)
	IndexScale           // value is a per-axis scale
)

// Reserved dirty flag slots. External subsystems register their own slots
// with Node.AddLocalDirtyFlag and Node.AddWorldDirtyFlag.
const (
	LocalMatrixFlag = 0 // local matrix cache

	WorldPoseFlag   = 0 // world Pose cache
	WorldMatrixFlag = 1 // world matrix cache

	reservedLocalFlags = 1
	reservedWorldFlags = 2
)

// Epsilon is the magnitude below which a scale component is treated as zero
// when inverting.
const Epsilon float32 = 1e-6

var (
	zeroVec3 = mgl32.Vec3{}
	oneVec3  = mgl32.Vec3{1, 1, 1}
)

// IdentityPose is the pose with no translation, no rotation and unit scale.
var IdentityPose = Pose{
	Rotation: mgl32.QuatIdent(),
	Scale:    oneVec3,
}

// nodeIDCounter is a plain counter; nodes are only touched from one goroutine.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}
