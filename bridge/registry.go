package bridge

import (
	"go.viam.com/dynbridge/dynamics"
	"go.viam.com/dynbridge/spatialmath"
	"go.viam.com/dynbridge/urdf"
)

// ContinuousJointBound is the symmetric bound given to continuous joints, which have no limits
// in the source.
const ContinuousJointBound = 3.14

// parseActuatedJoints creates the free-flyer root, then one typed joint per source joint.
func (c *conversion) parseActuatedJoints(rootJointName string) error {
	if err := c.makeRootJoint(rootJointName); err != nil {
		return err
	}
	for _, sj := range c.model.Joints() {
		if sj == nil {
			return newMalformedInputError("null joint in source model")
		}
		pose := spatialmath.NewZeroPose()
		if c.poses != nil {
			var err error
			if pose, err = c.poses.PoseInReferenceFrame(c.cfg.PoseReference, sj.Name); err != nil {
				return err
			}
		}
		if _, err := c.makeJoint(pose, sj); err != nil {
			return err
		}
	}
	return nil
}

func (c *conversion) makeRootJoint(name string) error {
	if name == "" {
		return newMalformedInputError("root joint name is empty")
	}
	j, err := c.factory.NewFreeFlyerJoint(spatialmath.NewZeroPose())
	if err != nil {
		return newMalformedInputError("failed to create root joint (free floating): %v", err)
	}
	if j == nil {
		return newMalformedInputError("failed to create root joint (free floating)")
	}
	id, err := c.register(name, j)
	if err != nil {
		return err
	}
	if err := c.robot.SetRootJoint(id); err != nil {
		return newStructuralInconsistencyError("failed to set root joint: %v", err)
	}
	c.root = id
	return nil
}

// makeJoint dispatches on the source joint kind. Every urdf.JointType is handled explicitly.
func (c *conversion) makeJoint(pose spatialmath.Pose, sj *urdf.Joint) (dynamics.JointID, error) {
	var (
		create func(spatialmath.Pose) (*dynamics.Joint, error)
		bounds *dynamics.Limit
	)
	switch sj.Type {
	case urdf.UnknownJoint:
		return dynamics.NoJoint, newMalformedInputError("parsed joint %q has UNKNOWN type, this should not happen", sj.Name)
	case urdf.RevoluteJoint:
		if sj.Limits == nil {
			return dynamics.NoJoint, newMalformedInputError("revolute joint %q has no limits", sj.Name)
		}
		create, bounds = c.factory.NewRotationJoint, &dynamics.Limit{Min: sj.Limits.Lower, Max: sj.Limits.Upper}
	case urdf.ContinuousJoint:
		create, bounds = c.factory.NewRotationJoint, &dynamics.Limit{Min: -ContinuousJointBound, Max: ContinuousJointBound}
	case urdf.PrismaticJoint:
		if sj.Limits == nil {
			return dynamics.NoJoint, newMalformedInputError("prismatic joint %q has no limits", sj.Name)
		}
		create, bounds = c.factory.NewTranslationJoint, &dynamics.Limit{Min: sj.Limits.Lower, Max: sj.Limits.Upper}
	case urdf.FloatingJoint:
		create = c.factory.NewFreeFlyerJoint
	case urdf.PlanarJoint:
		return dynamics.NoJoint, NewUnsupportedJointKindError(sj.Name, sj.Type)
	case urdf.FixedJoint:
		create = c.factory.NewAnchorJoint
	default:
		return dynamics.NoJoint, &UnknownJointKindError{Joint: sj.Name, Kind: sj.Type}
	}

	j, err := create(pose)
	if err != nil {
		return dynamics.NoJoint, newMalformedInputError("failed to create %s joint %q: %v", sj.Type, sj.Name, err)
	}
	if j == nil {
		return dynamics.NoJoint, newMalformedInputError("failed to create %s joint %q", sj.Type, sj.Name)
	}
	if bounds != nil {
		if err := j.SetBounds(0, bounds.Min, bounds.Max); err != nil {
			return dynamics.NoJoint, newMalformedInputError("%v", err)
		}
	}
	return c.register(sj.Name, j)
}

// register names j and adds it to the robot and the registry. Names are unique.
func (c *conversion) register(name string, j *dynamics.Joint) (dynamics.JointID, error) {
	if _, ok := c.registry[name]; ok {
		return dynamics.NoJoint, newStructuralInconsistencyError("duplicate joint name %q", name)
	}
	j.SetName(name)
	id, err := c.robot.AddJoint(j)
	if err != nil {
		return dynamics.NoJoint, newStructuralInconsistencyError("failed to register joint %q: %v", name, err)
	}
	c.registry[name] = id
	c.order = append(c.order, name)
	return id, nil
}
