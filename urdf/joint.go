package urdf

import (
	"fmt"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/dynbridge/spatialmath"
)

// JointType is the kind of a URDF joint.
type JointType int

// The joint kinds a URDF description can declare.
const (
	UnknownJoint JointType = iota
	RevoluteJoint
	ContinuousJoint
	PrismaticJoint
	FloatingJoint
	PlanarJoint
	FixedJoint
)

// NumJointTypes is the count of declared JointType values.
const NumJointTypes = int(FixedJoint) + 1

var jointTypeNames = map[JointType]string{
	UnknownJoint:    "unknown",
	RevoluteJoint:   "revolute",
	ContinuousJoint: "continuous",
	PrismaticJoint:  "prismatic",
	FloatingJoint:   "floating",
	PlanarJoint:     "planar",
	FixedJoint:      "fixed",
}

func (t JointType) String() string {
	if name, ok := jointTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("JointType(%d)", int(t))
}

// ParseJointType maps the `type` attribute of a joint element to a JointType. Unrecognized
// strings map to UnknownJoint.
func ParseJointType(s string) JointType {
	for t, name := range jointTypeNames {
		if name == s {
			return t
		}
	}
	return UnknownJoint
}

// Limit holds the motion limits of a joint. Lower and Upper are radians for revolute joints and
// meters for prismatic ones.
type Limit struct {
	Lower    float64
	Upper    float64
	Effort   float64
	Velocity float64
}

// Pose is a URDF origin: a position and a rotation quaternion.
type Pose struct {
	Position r3.Vector
	Rotation quat.Number
}

// NewPose returns the identity origin.
func NewPose() Pose {
	return Pose{Rotation: quat.Number{Real: 1}}
}

// NewPoseFromXYZRPY builds an origin from URDF xyz and rpy values.
func NewPoseFromXYZRPY(xyz r3.Vector, roll, pitch, yaw float64) Pose {
	return Pose{Position: xyz, Rotation: spatialmath.NewQuatFromRPY(roll, pitch, yaw)}
}

// Matrix converts the origin to a homogeneous transform.
func (p Pose) Matrix() spatialmath.Pose {
	return spatialmath.NewPoseFromQuat(p.Position, p.Rotation)
}

// Joint is a joint of the source description. It connects ParentLinkName to ChildLinkName.
type Joint struct {
	Name           string
	Type           JointType
	Limits         *Limit
	Axis           r3.Vector
	ParentLinkName string
	ChildLinkName  string

	// ParentToJointTransform places the joint frame in its parent link's frame.
	ParentToJointTransform Pose
}

// Inertial is the mass description of a link. The center of mass is the origin position.
type Inertial struct {
	Origin Pose
	Mass   float64
	Ixx    float64
	Ixy    float64
	Ixz    float64
	Iyy    float64
	Iyz    float64
	Izz    float64
}

// Link is a rigid link of the source description.
type Link struct {
	Name     string
	Inertial *Inertial

	// ParentJoint is nil for the root link.
	ParentJoint *Joint
	ChildJoints []*Joint
}
