package bridge

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/dynbridge/spatialmath"
)

// addBodiesToJoints attaches to every registered joint a body built from the inertial data of
// its source joint's child link. Joints without a source joint, like the root, get no body.
func (c *conversion) addBodiesToJoints() error {
	for _, name := range c.order {
		sj := c.model.Joint(name)
		if sj == nil {
			continue
		}
		link := c.model.Link(sj.ChildLinkName)
		if link == nil {
			return newStructuralInconsistencyError("inconsistent model: child link %q of joint %q not found", sj.ChildLinkName, name)
		}

		com := r3.Vector{}
		inertia := spatialmath.NewIdentityInertia()
		mass := 0.
		// The inertial frame is not re-oriented into the joint frame.
		if in := link.Inertial; in != nil {
			com = in.Origin.Position
			mass = in.Mass
			inertia = spatialmath.NewInertia(in.Ixx, in.Ixy, in.Ixz, in.Iyy, in.Iyz, in.Izz)
		} else {
			c.logger.Warnw("missing inertial information in model", "link", link.Name, "joint", name)
		}

		body, err := c.factory.NewBody()
		if err != nil {
			return errors.Wrapf(err, "failed to create body for joint %q", name)
		}
		if body == nil {
			return errors.Errorf("failed to create body for joint %q", name)
		}
		body.SetMass(mass)
		body.SetLocalCenterOfMass(com)
		body.SetInertiaMatrix(inertia)
		c.robot.Joint(c.registry[name]).SetLinkedBody(body)
	}
	return nil
}
