package bridge

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/go-viper/mapstructure/v2"
	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/dynbridge/dynamics"
)

// DefaultRootJointName is the root joint name front ends use when none is configured.
const DefaultRootJointName = "base_joint"

// DefaultRoleJointNames are the conventional joint names of a PR2-style humanoid.
var DefaultRoleJointNames = map[dynamics.Role]string{
	dynamics.Waist:      "base_footprint_joint",
	dynamics.Chest:      "torso_lift_joint",
	dynamics.LeftWrist:  "l_gripper_joint",
	dynamics.RightWrist: "r_gripper_joint",
}

// Config describes how a source model is converted.
type Config struct {
	// RootJoint is the name of the synthesized free-flyer root used by front ends.
	RootJoint string `json:"root_joint,omitempty"`
	// Roles overrides the joint name bound to a role, keyed by role name.
	Roles map[string]string `json:"roles,omitempty"`
	// ResolvePoses sets each joint's pose from the source origins instead of identity.
	ResolvePoses bool `json:"resolve_poses,omitempty"`
	// PoseReference is the joint poses are resolved against. Empty means the root link.
	PoseReference string `json:"pose_reference,omitempty"`
}

// DefaultConfig returns identity poses and PR2 role names.
func DefaultConfig() *Config {
	cfg := &Config{RootJoint: DefaultRootJointName, Roles: map[string]string{}}
	for role, name := range DefaultRoleJointNames {
		cfg.Roles[string(role)] = name
	}
	return cfg
}

// Validate checks every field and reports all problems at once.
func (cfg *Config) Validate() error {
	var errs error
	if cfg.RootJoint == "" {
		errs = multierr.Append(errs, errors.New(`"root_joint" is required`))
	}
	known := map[string]bool{}
	for _, role := range dynamics.Roles {
		known[string(role)] = true
	}
	roles := make([]string, 0, len(cfg.Roles))
	for role := range cfg.Roles {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	for _, role := range roles {
		if !known[role] {
			errs = multierr.Append(errs, errors.Errorf("unknown role %q", role))
			continue
		}
		if cfg.Roles[role] == "" {
			errs = multierr.Append(errs, errors.Errorf("role %q has an empty joint name", role))
		}
	}
	if !cfg.ResolvePoses && cfg.PoseReference != "" {
		errs = multierr.Append(errs, errors.New(`"pose_reference" requires "resolve_poses"`))
	}
	return errs
}

// RoleJointName returns the joint name bound to role.
func (cfg *Config) RoleJointName(role dynamics.Role) string {
	if name, ok := cfg.Roles[string(role)]; ok {
		return name
	}
	return DefaultRoleJointNames[role]
}

// withDefaults fills unset fields from DefaultConfig.
func (cfg *Config) withDefaults() *Config {
	out := *cfg
	out.Roles = map[string]string{}
	for role, name := range DefaultConfig().Roles {
		out.Roles[role] = name
	}
	for role, name := range cfg.Roles {
		out.Roles[role] = name
	}
	if out.RootJoint == "" {
		out.RootJoint = DefaultRootJointName
	}
	return &out
}

// NewConfigFromAttributes decodes a generic attribute map, such as one read from JSON, into a
// Config. Unknown keys are an error. Unset fields take their defaults.
func NewConfigFromAttributes(attributes map[string]interface{}) (*Config, error) {
	cfg := &Config{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		Result:      cfg,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(attributes); err != nil {
		return nil, errors.Wrap(err, "failed to decode conversion config")
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid conversion config")
	}
	return cfg, nil
}

// ReadConfig reads a JSON config file.
func ReadConfig(filename string) (*Config, error) {
	//nolint:gosec
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}
	attributes := map[string]interface{}{}
	if err := json.Unmarshal(data, &attributes); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config file")
	}
	return NewConfigFromAttributes(attributes)
}

// ConfigSchema returns the JSON schema of Config.
func ConfigSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}
