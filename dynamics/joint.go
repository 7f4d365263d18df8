package dynamics

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/dynbridge/spatialmath"
)

// JointType is the kind of a typed joint.
type JointType int

// The supported typed joint kinds.
const (
	// AnchorJoint is rigid, 0 DoF.
	AnchorJoint JointType = iota
	// RotationJoint rotates about a single axis, 1 DoF.
	RotationJoint
	// TranslationJoint slides along a single axis, 1 DoF.
	TranslationJoint
	// FreeFlyerJoint is unconstrained, 6 DoF.
	FreeFlyerJoint
)

func (t JointType) String() string {
	switch t {
	case AnchorJoint:
		return "anchor"
	case RotationJoint:
		return "rotation"
	case TranslationJoint:
		return "translation"
	case FreeFlyerJoint:
		return "freeflyer"
	}
	return fmt.Sprintf("JointType(%d)", int(t))
}

// DoF returns the number of degrees of freedom of the joint kind.
func (t JointType) DoF() int {
	switch t {
	case RotationJoint, TranslationJoint:
		return 1
	case FreeFlyerJoint:
		return 6
	case AnchorJoint:
	}
	return 0
}

// JointID addresses a joint inside the Robot that owns it.
type JointID int

// NoJoint is the ID of an absent joint, e.g. the parent of the root.
const NoJoint JointID = -1

// Limit represents the limits of motion of one degree of freedom.
type Limit struct {
	Min float64
	Max float64
}

// Joint is a typed joint of a kinematic tree. Parent and children are stored as IDs into the
// owning Robot.
type Joint struct {
	id       JointID
	name     string
	jtype    JointType
	pose     spatialmath.Pose
	bounds   []Limit
	parent   JointID
	children []JointID
	body     *Body
}

// NewJoint returns a detached joint of the given kind. Factories outside this package build their
// joints with it.
func NewJoint(jtype JointType, pose spatialmath.Pose) *Joint {
	return &Joint{id: NoJoint, jtype: jtype, pose: pose, parent: NoJoint}
}

// ID returns the joint's ID, or NoJoint until it is added to a Robot.
func (j *Joint) ID() JointID {
	return j.id
}

// Name returns the joint name.
func (j *Joint) Name() string {
	return j.name
}

// SetName sets the joint name.
func (j *Joint) SetName(name string) {
	j.name = name
}

// Type returns the joint kind.
func (j *Joint) Type() JointType {
	return j.jtype
}

// Pose returns the joint's transform as given at construction.
func (j *Joint) Pose() spatialmath.Pose {
	return j.pose
}

// SetPose replaces the joint's transform.
func (j *Joint) SetPose(pose spatialmath.Pose) {
	j.pose = pose
}

// SetBounds sets the bounds of degree of freedom dof.
func (j *Joint) SetBounds(dof int, lower, upper float64) error {
	if dof < 0 || dof >= j.jtype.DoF() {
		return errors.Errorf("joint %q of type %s has no degree of freedom %d", j.name, j.jtype, dof)
	}
	for len(j.bounds) <= dof {
		j.bounds = append(j.bounds, Limit{})
	}
	j.bounds[dof] = Limit{Min: lower, Max: upper}
	return nil
}

// Bounds returns the bounds set so far, one per bounded degree of freedom.
func (j *Joint) Bounds() []Limit {
	return append([]Limit(nil), j.bounds...)
}

// Parent returns the ID of the parent joint, or NoJoint.
func (j *Joint) Parent() JointID {
	return j.parent
}

// Children returns the IDs of the child joints in attachment order.
func (j *Joint) Children() []JointID {
	return append([]JointID(nil), j.children...)
}

// LinkedBody returns the attached body or nil.
func (j *Joint) LinkedBody() *Body {
	return j.body
}

// SetLinkedBody attaches a body, replacing any previous one.
func (j *Joint) SetLinkedBody(body *Body) {
	j.body = body
}

// Body holds the rigid body properties attached to a joint.
type Body struct {
	mass              float64
	localCenterOfMass r3.Vector
	inertia           spatialmath.Inertia
}

// Mass returns the body mass.
func (b *Body) Mass() float64 {
	return b.mass
}

// SetMass sets the body mass.
func (b *Body) SetMass(mass float64) {
	b.mass = mass
}

// LocalCenterOfMass returns the center of mass in the body frame.
func (b *Body) LocalCenterOfMass() r3.Vector {
	return b.localCenterOfMass
}

// SetLocalCenterOfMass sets the center of mass in the body frame.
func (b *Body) SetLocalCenterOfMass(com r3.Vector) {
	b.localCenterOfMass = com
}

// InertiaMatrix returns the inertia tensor.
func (b *Body) InertiaMatrix() spatialmath.Inertia {
	return b.inertia
}

// SetInertiaMatrix sets the inertia tensor.
func (b *Body) SetInertiaMatrix(inertia spatialmath.Inertia) {
	b.inertia = inertia
}
