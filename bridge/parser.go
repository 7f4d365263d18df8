// Package bridge converts a URDF link/joint graph into a typed dynamics kinematic tree.
//
// The conversion registers one typed joint per source joint plus a synthesized free-flyer
// root, derives the actuated joints, rebuilds the hierarchy from the source root link, binds
// the humanoid roles by name and attaches a body built from each joint's child link.
//
// Joint poses are identity unless Config.ResolvePoses is set: by default joints are not placed
// in a common frame.
package bridge

import (
	"github.com/pkg/errors"

	"go.viam.com/dynbridge/dynamics"
	"go.viam.com/dynbridge/logging"
	"go.viam.com/dynbridge/urdf"
)

// Model is the source graph a Parser reads. *urdf.Model implements it.
type Model interface {
	// Root returns the root link, or nil.
	Root() *urdf.Link
	// Joint returns the joint with the given name, or nil.
	Joint(name string) *urdf.Joint
	// Link returns the link with the given name, or nil.
	Link(name string) *urdf.Link
	// Joints returns every joint in a deterministic order.
	Joints() []*urdf.Joint
}

// Parser converts source models into robots. It keeps no state between calls; concurrent use is
// safe as long as the Factory is.
type Parser struct {
	cfg     *Config
	factory dynamics.Factory
	logger  logging.Logger
}

// NewParser returns a Parser. A nil cfg uses DefaultConfig and a nil factory uses the
// dynamics.ObjectFactory.
func NewParser(cfg *Config, factory dynamics.Factory, logger logging.Logger) (*Parser, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid conversion config")
	}
	if factory == nil {
		factory = dynamics.NewObjectFactory()
	}
	if logger == nil {
		logger = logging.Global()
	}
	return &Parser{cfg: cfg, factory: factory, logger: logger.Sublogger("bridge")}, nil
}

// Convert builds a robot from model with a default Parser.
func Convert(model Model, rootJointName string, logger logging.Logger) (*dynamics.Robot, error) {
	p, err := NewParser(nil, nil, logger)
	if err != nil {
		return nil, err
	}
	return p.Parse(model, rootJointName)
}

// ParseFile reads a URDF file and converts it.
func (p *Parser) ParseFile(filename, rootJointName string) (*dynamics.Robot, error) {
	model, err := urdf.ParseModelXMLFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open URDF file. Is the filename location correct?")
	}
	return p.Parse(model, rootJointName)
}

// Parse converts model into a robot whose root is a free-flyer named rootJointName. On error no
// robot is returned.
func (p *Parser) Parse(model Model, rootJointName string) (*dynamics.Robot, error) {
	if model == nil {
		return nil, newMalformedInputError("no source model")
	}
	robot, err := p.factory.NewRobot()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create robot")
	}
	c := &conversion{
		cfg:      p.cfg,
		factory:  p.factory,
		logger:   p.logger,
		model:    model,
		robot:    robot,
		registry: map[string]dynamics.JointID{},
		root:     dynamics.NoJoint,
	}
	if p.cfg.ResolvePoses {
		c.poses = NewPoseResolver(model)
	}

	if err := c.parseActuatedJoints(rootJointName); err != nil {
		return nil, err
	}
	actuated, err := c.actuatedJoints()
	if err != nil {
		return nil, err
	}
	if err := robot.SetActuatedJoints(actuated); err != nil {
		return nil, newStructuralInconsistencyError("failed to set actuated joints: %v", err)
	}
	if err := c.connectTree(); err != nil {
		return nil, err
	}
	if err := c.bindRoles(); err != nil {
		return nil, err
	}
	if err := c.addBodiesToJoints(); err != nil {
		return nil, err
	}

	p.logger.Debugw("converted model",
		"root", rootJointName, "joints", len(c.order), "actuated", len(actuated), "dof", robot.NumberDof())
	return robot, nil
}

// conversion holds the state of a single Parse call.
type conversion struct {
	cfg     *Config
	factory dynamics.Factory
	logger  logging.Logger
	model   Model
	robot   *dynamics.Robot
	poses   *PoseResolver

	// registry indexes the robot's joints by name; order is the registration order.
	registry map[string]dynamics.JointID
	order    []string
	root     dynamics.JointID
}
