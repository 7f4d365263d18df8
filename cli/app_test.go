package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/dynbridge/logging"
)

var miniPR2 = filepath.Join("..", "urdf", "testdata", "mini_pr2.urdf")

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	err := NewApp(out, errOut).Run(append([]string{defaultAppName}, args...))
	return out.String(), err
}

func TestConvertAction(t *testing.T) {
	out, err := runApp(t, "convert", miniPR2)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "base_joint")
	test.That(t, out, test.ShouldContainSubstring, "actuated joints (9 dof): torso_lift_joint, head_pan_joint, l_wrist_roll_joint")
	test.That(t, out, test.ShouldContainSubstring, "waist: base_footprint_joint")
	test.That(t, out, test.ShouldContainSubstring, "chest: torso_lift_joint")
	test.That(t, out, test.ShouldContainSubstring, "left_wrist: l_gripper_joint")
	test.That(t, out, test.ShouldContainSubstring, "right_wrist: "+unboundRolePlaceholder)

	out, err = runApp(t, "convert", "--root", "floating_base", miniPR2)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "floating_base")

	_, err = runApp(t, "convert")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "exactly one URDF file")

	_, err = runApp(t, "convert", filepath.Join(t.TempDir(), "missing.urdf"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "Is the filename location correct?")
}

func TestConvertWithConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bridge.json")
	cfg := `{"root_joint": "world", "roles": {"right_wrist": "l_wrist_roll_joint"}}`
	test.That(t, os.WriteFile(path, []byte(cfg), 0o600), test.ShouldBeNil)

	out, err := runApp(t, "--config", path, "convert", miniPR2)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "world")
	test.That(t, out, test.ShouldContainSubstring, "right_wrist: l_wrist_roll_joint")

	bad := filepath.Join(t.TempDir(), "bad.json")
	test.That(t, os.WriteFile(bad, []byte(`{"roles": {"knee": "j"}}`), 0o600), test.ShouldBeNil)
	_, err = runApp(t, "--config", bad, "convert", miniPR2)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `unknown role "knee"`)
}

func TestPoseAction(t *testing.T) {
	out, err := runApp(t, "pose", "--reference", "torso_lift_joint", miniPR2, "l_gripper_joint")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "l_gripper_joint relative to torso_lift_joint")
	test.That(t, out, test.ShouldContainSubstring, "translation: [-0.050000 0.368000 0.739675]")

	out, err = runApp(t, "pose", miniPR2, "base_footprint_joint")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "relative to base_footprint")
	test.That(t, out, test.ShouldContainSubstring, "translation: [0.000000 0.000000 0.051000]")

	_, err = runApp(t, "pose", miniPR2)
	test.That(t, err, test.ShouldNotBeNil)

	_, err = runApp(t, "pose", "--reference", "head_pan_joint", miniPR2, "l_gripper_joint")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "not an ancestor")
}

func TestSchemaAction(t *testing.T) {
	out, err := runApp(t, "schema")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "root_joint")
	test.That(t, out, test.ShouldContainSubstring, "resolve_poses")
}

func TestWatchFile(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	path := filepath.Join(t.TempDir(), "robot.urdf")
	test.That(t, os.WriteFile(path, []byte("<robot/>"), 0o600), test.ShouldBeNil)

	watcher, err := newFileWatcher(path)
	test.That(t, err, test.ShouldBeNil)
	defer watcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, watcher, path, logger, func() error {
			calls++
			cancel()
			return errors.New("still broken")
		})
	}()

	test.That(t, os.WriteFile(path, []byte("<robot name=\"x\"/>"), 0o600), test.ShouldBeNil)
	select {
	case err := <-done:
		test.That(t, err, test.ShouldBeNil)
	case <-time.After(10 * time.Second):
		t.Fatal("watcher did not report the change")
	}
	test.That(t, calls, test.ShouldBeGreaterThanOrEqualTo, 1)
	test.That(t, logs.FilterMessage("conversion failed").Len(), test.ShouldBeGreaterThanOrEqualTo, 1)

	_, err = newFileWatcher(filepath.Join(t.TempDir(), "missing", "robot.urdf"))
	test.That(t, err, test.ShouldNotBeNil)
}
