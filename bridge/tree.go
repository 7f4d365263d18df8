package bridge

import (
	"sort"

	"github.com/samber/lo"

	"go.viam.com/dynbridge/dynamics"
	"go.viam.com/dynbridge/urdf"
)

// actuatedJoints lists the registered joints of every source joint that is not fixed, floating
// or unknown, in source order.
func (c *conversion) actuatedJoints() ([]dynamics.JointID, error) {
	var ids []dynamics.JointID
	for _, sj := range c.model.Joints() {
		if sj == nil {
			return nil, newMalformedInputError("null joint in source model")
		}
		switch sj.Type {
		case urdf.UnknownJoint, urdf.FloatingJoint, urdf.FixedJoint:
			continue
		case urdf.RevoluteJoint, urdf.ContinuousJoint, urdf.PrismaticJoint, urdf.PlanarJoint:
		}
		id, ok := c.registry[sj.Name]
		if !ok {
			return nil, newStructuralInconsistencyError("failed to compute actuated joints: %q is not registered", sj.Name)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// connectTree attaches the joints below the source root link to the synthesized root and
// recurses depth first. Every registered joint must be reached exactly once.
func (c *conversion) connectTree() error {
	rootLink := c.model.Root()
	if rootLink == nil {
		return newMalformedInputError("URDF model is missing a root link")
	}
	visited := map[string]bool{}
	if err := c.connectJoints(c.root, rootLink, visited); err != nil {
		return err
	}

	unreached := lo.Filter(c.order, func(name string, _ int) bool {
		return c.registry[name] != c.root && !visited[name]
	})
	if len(unreached) > 0 {
		sort.Strings(unreached)
		return newStructuralInconsistencyError("joints %v are not connected to root link %q", unreached, rootLink.Name)
	}
	return nil
}

func (c *conversion) connectJoints(parent dynamics.JointID, link *urdf.Link, visited map[string]bool) error {
	for _, sj := range link.ChildJoints {
		if sj == nil {
			return newMalformedInputError("null joint below link %q", link.Name)
		}
		child, ok := c.registry[sj.Name]
		if !ok {
			return NewMissingNodeError(sj.Name)
		}
		if visited[sj.Name] {
			return newStructuralInconsistencyError("joint %q is reached twice, the source model contains a cycle", sj.Name)
		}
		visited[sj.Name] = true
		if err := c.robot.AddChildJoint(parent, child); err != nil {
			return newStructuralInconsistencyError("failed to connect joints: %v", err)
		}

		childLink := c.model.Link(sj.ChildLinkName)
		if childLink == nil {
			// reported when bodies are attached
			c.logger.Debugw("child link not found, joint has no children", "joint", sj.Name, "link", sj.ChildLinkName)
			continue
		}
		if err := c.connectJoints(child, childLink, visited); err != nil {
			return err
		}
	}
	return nil
}

// bindRoles looks up the conventional joint name of every role. Missing names leave the role
// unbound.
func (c *conversion) bindRoles() error {
	for _, role := range dynamics.Roles {
		name := c.cfg.RoleJointName(role)
		id, ok := c.registry[name]
		if !ok {
			c.logger.Debugw("no joint for role", "role", role, "joint", name)
			continue
		}
		if err := c.robot.SetRole(role, id); err != nil {
			return newStructuralInconsistencyError("failed to bind role %q: %v", role, err)
		}
	}
	return nil
}
