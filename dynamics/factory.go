package dynamics

import "go.viam.com/dynbridge/spatialmath"

// Factory creates the objects a Robot is assembled from. Implementations may return an error
// when they cannot build an object.
type Factory interface {
	NewRobot() (*Robot, error)
	NewRotationJoint(pose spatialmath.Pose) (*Joint, error)
	NewTranslationJoint(pose spatialmath.Pose) (*Joint, error)
	NewFreeFlyerJoint(pose spatialmath.Pose) (*Joint, error)
	NewAnchorJoint(pose spatialmath.Pose) (*Joint, error)
	NewBody() (*Body, error)
}

// ObjectFactory is the default Factory. It holds no state and is safe for concurrent use.
type ObjectFactory struct{}

// NewObjectFactory returns the default Factory.
func NewObjectFactory() Factory {
	return ObjectFactory{}
}

// NewRobot returns an empty robot.
func (ObjectFactory) NewRobot() (*Robot, error) {
	return NewRobot(), nil
}

// NewRotationJoint returns a 1 DoF rotation joint.
func (ObjectFactory) NewRotationJoint(pose spatialmath.Pose) (*Joint, error) {
	return NewJoint(RotationJoint, pose), nil
}

// NewTranslationJoint returns a 1 DoF translation joint.
func (ObjectFactory) NewTranslationJoint(pose spatialmath.Pose) (*Joint, error) {
	return NewJoint(TranslationJoint, pose), nil
}

// NewFreeFlyerJoint returns an unbounded 6 DoF joint.
func (ObjectFactory) NewFreeFlyerJoint(pose spatialmath.Pose) (*Joint, error) {
	return NewJoint(FreeFlyerJoint, pose), nil
}

// NewAnchorJoint returns a 0 DoF joint.
func (ObjectFactory) NewAnchorJoint(pose spatialmath.Pose) (*Joint, error) {
	return NewJoint(AnchorJoint, pose), nil
}

// NewBody returns a body with zero mass at the origin and a zero inertia tensor.
func (ObjectFactory) NewBody() (*Body, error) {
	return &Body{}, nil
}
