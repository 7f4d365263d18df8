// Package urdf provides the in-memory link/joint graph of a Unified Robot Description Format
// file, and functions to load it from XML.
package urdf

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Extension is the file extension associated with URDF files.
const Extension string = "urdf"

// ErrNoModelInformation is used when there is no model information.
var ErrNoModelInformation = errors.New("no model information")

// Model is a linked tree of links and joints. Links and joints are addressed by name; the
// declaration order of joints is preserved.
type Model struct {
	name       string
	root       *Link
	links      map[string]*Link
	joints     map[string]*Joint
	jointOrder []*Joint
}

// NewModel links the given elements into a tree: every joint is attached to its parent link's
// children and set as its child link's parent. The model must have exactly one root link, the
// only link without a parent joint.
func NewModel(name string, links []*Link, joints []*Joint) (*Model, error) {
	m := &Model{
		name:   name,
		links:  make(map[string]*Link, len(links)),
		joints: make(map[string]*Joint, len(joints)),
	}

	var errs error
	for _, l := range links {
		if _, ok := m.links[l.Name]; ok {
			errs = multierr.Append(errs, errors.Errorf("duplicate link %q", l.Name))
			continue
		}
		l.ParentJoint = nil
		l.ChildJoints = nil
		m.links[l.Name] = l
	}
	for _, j := range joints {
		if _, ok := m.joints[j.Name]; ok {
			errs = multierr.Append(errs, errors.Errorf("duplicate joint %q", j.Name))
			continue
		}
		m.joints[j.Name] = j
		m.jointOrder = append(m.jointOrder, j)

		parent, ok := m.links[j.ParentLinkName]
		if !ok {
			errs = multierr.Append(errs, errors.Errorf("joint %q has unknown parent link %q", j.Name, j.ParentLinkName))
			continue
		}
		child, ok := m.links[j.ChildLinkName]
		if !ok {
			errs = multierr.Append(errs, errors.Errorf("joint %q has unknown child link %q", j.Name, j.ChildLinkName))
			continue
		}
		if child.ParentJoint != nil {
			errs = multierr.Append(errs, errors.Errorf("link %q has two parent joints: %q and %q",
				child.Name, child.ParentJoint.Name, j.Name))
			continue
		}
		child.ParentJoint = j
		parent.ChildJoints = append(parent.ChildJoints, j)
	}
	if errs != nil {
		return nil, errs
	}

	for _, l := range links {
		if l.ParentJoint != nil {
			continue
		}
		if m.root != nil {
			return nil, errors.Errorf("two root links found: %q and %q", m.root.Name, l.Name)
		}
		m.root = l
	}
	if m.root == nil {
		return nil, errors.New("no root link found")
	}
	return m, nil
}

// Name returns the robot name.
func (m *Model) Name() string {
	return m.name
}

// Root returns the root link.
func (m *Model) Root() *Link {
	return m.root
}

// Link returns the link with the given name, or nil.
func (m *Model) Link(name string) *Link {
	return m.links[name]
}

// Joint returns the joint with the given name, or nil.
func (m *Model) Joint(name string) *Joint {
	return m.joints[name]
}

// Joints returns every joint in declaration order.
func (m *Model) Joints() []*Joint {
	return m.jointOrder
}
