// Package dynamics defines the typed kinematic tree consumed by dynamics computations: joints
// with degree of freedom bounds, the rigid bodies attached to them, and the robot that owns them.
//
// A Robot is an arena. Joints are added once and addressed by JointID afterwards; parent/child
// relations are stored as IDs.
package dynamics

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Role is a semantic label bound to a joint by name convention.
type Role string

// The roles a humanoid robot exposes.
const (
	Waist      = Role("waist")
	Chest      = Role("chest")
	LeftWrist  = Role("left_wrist")
	RightWrist = Role("right_wrist")
)

// Roles lists every Role in a fixed order.
var Roles = []Role{Waist, Chest, LeftWrist, RightWrist}

// Robot owns a tree of typed joints.
type Robot struct {
	joints   []*Joint
	root     JointID
	actuated []JointID
	roles    map[Role]JointID
}

// NewRobot returns an empty robot.
func NewRobot() *Robot {
	return &Robot{root: NoJoint, roles: map[Role]JointID{}}
}

// AddJoint moves j into the robot and returns its ID. A joint can belong to one robot only.
func (r *Robot) AddJoint(j *Joint) (JointID, error) {
	if j == nil {
		return NoJoint, errors.New("cannot add a nil joint")
	}
	if j.id != NoJoint {
		return NoJoint, errors.Errorf("joint %q already belongs to a robot", j.name)
	}
	j.id = JointID(len(r.joints))
	r.joints = append(r.joints, j)
	return j.id, nil
}

// Joint returns the joint with the given ID, or nil.
func (r *Robot) Joint(id JointID) *Joint {
	if id < 0 || int(id) >= len(r.joints) {
		return nil
	}
	return r.joints[id]
}

// Joints returns every joint in the order they were added.
func (r *Robot) Joints() []*Joint {
	return append([]*Joint(nil), r.joints...)
}

// JointByName returns the first joint with the given name, or nil.
func (r *Robot) JointByName(name string) *Joint {
	j, _ := lo.Find(r.joints, func(j *Joint) bool { return j.name == name })
	return j
}

// AddChildJoint makes child a child of parent. A joint has at most one parent and cannot be its
// own ancestor.
func (r *Robot) AddChildJoint(parent, child JointID) error {
	p, c := r.Joint(parent), r.Joint(child)
	if p == nil || c == nil {
		return errors.Errorf("unknown joint id %d or %d", parent, child)
	}
	if c.parent != NoJoint {
		return errors.Errorf("joint %q already has parent %q", c.name, r.joints[c.parent].name)
	}
	if child == r.root {
		return errors.Errorf("root joint %q cannot have a parent", c.name)
	}
	for anc := parent; anc != NoJoint; anc = r.joints[anc].parent {
		if anc == child {
			return errors.Errorf("attaching %q under %q would create a cycle", c.name, p.name)
		}
	}
	c.parent = parent
	p.children = append(p.children, child)
	return nil
}

// SetRootJoint marks the joint as the root of the tree.
func (r *Robot) SetRootJoint(id JointID) error {
	j := r.Joint(id)
	if j == nil {
		return errors.Errorf("unknown joint id %d", id)
	}
	if j.parent != NoJoint {
		return errors.Errorf("joint %q has a parent and cannot be the root", j.name)
	}
	r.root = id
	return nil
}

// RootJoint returns the root joint, or nil if none is set.
func (r *Robot) RootJoint() *Joint {
	return r.Joint(r.root)
}

// SetActuatedJoints sets the ordered list of actuated joints.
func (r *Robot) SetActuatedJoints(ids []JointID) error {
	for _, id := range ids {
		if r.Joint(id) == nil {
			return errors.Errorf("unknown joint id %d", id)
		}
	}
	r.actuated = append([]JointID(nil), ids...)
	return nil
}

// ActuatedJoints returns the actuated joints in order.
func (r *Robot) ActuatedJoints() []*Joint {
	return lo.Map(r.actuated, func(id JointID, _ int) *Joint { return r.joints[id] })
}

// NumberDof returns the summed degrees of freedom of every joint reachable from the root.
func (r *Robot) NumberDof() int {
	dof := 0
	r.Walk(func(j *Joint, _ int) bool {
		dof += j.jtype.DoF()
		return true
	})
	return dof
}

// SetRole binds a role to a joint. NoJoint unbinds it.
func (r *Robot) SetRole(role Role, id JointID) error {
	if id == NoJoint {
		delete(r.roles, role)
		return nil
	}
	if r.Joint(id) == nil {
		return errors.Errorf("unknown joint id %d", id)
	}
	r.roles[role] = id
	return nil
}

// Role returns the joint bound to role, or nil.
func (r *Robot) Role(role Role) *Joint {
	id, ok := r.roles[role]
	if !ok {
		return nil
	}
	return r.joints[id]
}

// Waist returns the waist joint, or nil.
func (r *Robot) Waist() *Joint { return r.Role(Waist) }

// Chest returns the chest joint, or nil.
func (r *Robot) Chest() *Joint { return r.Role(Chest) }

// LeftWrist returns the left wrist joint, or nil.
func (r *Robot) LeftWrist() *Joint { return r.Role(LeftWrist) }

// RightWrist returns the right wrist joint, or nil.
func (r *Robot) RightWrist() *Joint { return r.Role(RightWrist) }

// Walk visits the tree depth first from the root, children in attachment order. fn receives the
// depth of each joint; returning false skips that joint's subtree.
func (r *Robot) Walk(fn func(j *Joint, depth int) bool) {
	if r.root == NoJoint {
		return
	}
	var visit func(id JointID, depth int)
	visit = func(id JointID, depth int) {
		j := r.joints[id]
		if !fn(j, depth) {
			return
		}
		for _, c := range j.children {
			visit(c, depth+1)
		}
	}
	visit(r.root, 0)
}

// String prints out a table of each joint reachable from the root, with columns of name, type,
// parent, bounds, mass and role.
func (r *Robot) String() string {
	roleOf := map[JointID][]string{}
	for _, role := range Roles {
		if id, ok := r.roles[role]; ok {
			roleOf[id] = append(roleOf[id], string(role))
		}
	}
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Name", "Type", "Parent", "Bounds", "Mass", "Role"})
	i := 0
	r.Walk(func(j *Joint, depth int) bool {
		parent := ""
		if p := r.Joint(j.parent); p != nil {
			parent = p.name
		}
		bounds := ""
		if len(j.bounds) > 0 {
			bounds = fmt.Sprintf("[%.4f, %.4f]", j.bounds[0].Min, j.bounds[0].Max)
		}
		mass := ""
		if j.body != nil {
			mass = fmt.Sprintf("%.4f", j.body.mass)
		}
		t.AppendRow(table.Row{i, fmt.Sprintf("%*s%s", 2*depth, "", j.name), j.jtype, parent, bounds, mass, strings.Join(roleOf[j.id], ",")})
		i++
		return true
	})
	return t.Render()
}
