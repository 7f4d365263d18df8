package bridge

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/multierr"
	"go.viam.com/test"

	"go.viam.com/dynbridge/dynamics"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	test.That(t, cfg.Validate(), test.ShouldBeNil)
	test.That(t, cfg.RootJoint, test.ShouldEqual, DefaultRootJointName)
	for _, role := range dynamics.Roles {
		test.That(t, cfg.RoleJointName(role), test.ShouldEqual, DefaultRoleJointNames[role])
	}
	test.That(t, cfg.ResolvePoses, test.ShouldBeFalse)
}

func TestConfigValidate(t *testing.T) {
	cfg := &Config{
		Roles:         map[string]string{"elbow": "x", "chest": ""},
		PoseReference: "j1",
	}
	err := cfg.Validate()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, multierr.Errors(err), test.ShouldHaveLength, 4)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"root_joint" is required`)
	test.That(t, err.Error(), test.ShouldContainSubstring, `unknown role "elbow"`)
	test.That(t, err.Error(), test.ShouldContainSubstring, `role "chest" has an empty joint name`)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"pose_reference" requires "resolve_poses"`)

	_, err = NewParser(cfg, nil, nil)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "invalid conversion config")
}

func TestNewConfigFromAttributes(t *testing.T) {
	cfg, err := NewConfigFromAttributes(map[string]interface{}{
		"roles":          map[string]interface{}{"right_wrist": "r_wrist_roll_joint"},
		"resolve_poses":  true,
		"pose_reference": "torso_lift_joint",
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.RootJoint, test.ShouldEqual, DefaultRootJointName)
	test.That(t, cfg.RoleJointName(dynamics.RightWrist), test.ShouldEqual, "r_wrist_roll_joint")
	test.That(t, cfg.RoleJointName(dynamics.Chest), test.ShouldEqual, "torso_lift_joint")
	test.That(t, cfg.ResolvePoses, test.ShouldBeTrue)
	test.That(t, cfg.PoseReference, test.ShouldEqual, "torso_lift_joint")

	_, err = NewConfigFromAttributes(map[string]interface{}{"root": "base"})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "failed to decode conversion config")

	_, err = NewConfigFromAttributes(map[string]interface{}{"roles": map[string]interface{}{"knee": "j"}})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `unknown role "knee"`)
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bridge.json")
	data, err := json.Marshal(map[string]interface{}{
		"root_joint": "world_joint",
		"roles":      map[string]string{"waist": "pelvis_joint"},
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, os.WriteFile(path, data, 0o600), test.ShouldBeNil)

	cfg, err := ReadConfig(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.RootJoint, test.ShouldEqual, "world_joint")
	test.That(t, cfg.RoleJointName(dynamics.Waist), test.ShouldEqual, "pelvis_joint")

	_, err = ReadConfig(filepath.Join(dir, "missing.json"))
	test.That(t, err.Error(), test.ShouldContainSubstring, "failed to read config file")

	bad := filepath.Join(dir, "bad.json")
	test.That(t, os.WriteFile(bad, []byte("{"), 0o600), test.ShouldBeNil)
	_, err = ReadConfig(bad)
	test.That(t, err.Error(), test.ShouldContainSubstring, "failed to unmarshal config file")
}

func TestConfigSchema(t *testing.T) {
	data, err := json.Marshal(ConfigSchema())
	test.That(t, err, test.ShouldBeNil)
	for _, key := range []string{"root_joint", "roles", "resolve_poses", "pose_reference"} {
		test.That(t, string(data), test.ShouldContainSubstring, key)
	}
}
