package cli

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"go.viam.com/dynbridge/bridge"
	"go.viam.com/dynbridge/dynamics"
	"go.viam.com/dynbridge/logging"
	"go.viam.com/dynbridge/urdf"
)

func newLogger(c *cli.Context) logging.Logger {
	if c.Bool(generalFlagDebug) {
		return logging.NewDebugLogger(defaultAppName)
	}
	return logging.NewLogger(defaultAppName)
}

func loadConfig(c *cli.Context) (*bridge.Config, error) {
	if path := c.String(generalFlagConfig); path != "" {
		return bridge.ReadConfig(path)
	}
	return bridge.DefaultConfig(), nil
}

// ConvertAction is the corresponding Action for 'convert'.
func ConvertAction(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return errors.New("convert requires exactly one URDF file argument")
	}
	filename := c.Args().First()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.Bool(convertFlagPoses) {
		cfg.ResolvePoses = true
	}
	root := c.String(convertFlagRoot)
	if root == "" {
		root = cfg.RootJoint
	}
	logger := newLogger(c)
	parser, err := bridge.NewParser(cfg, nil, logger)
	if err != nil {
		return err
	}

	convert := func() error {
		robot, err := parser.ParseFile(filename, root)
		if err != nil {
			return err
		}
		printRobot(c.App.Writer, robot)
		return nil
	}
	if !c.Bool(convertFlagWatch) {
		return convert()
	}

	if err := convert(); err != nil {
		logger.Errorw("conversion failed", "file", filename, "error", err)
	}
	watcher, err := newFileWatcher(filename)
	if err != nil {
		return err
	}
	//nolint:errcheck
	defer watcher.Close()
	logger.Infow("watching for changes", "file", filename)
	return watchFile(c.Context, watcher, filename, logger, convert)
}

// PoseAction is the corresponding Action for 'pose'.
func PoseAction(c *cli.Context) error {
	if c.Args().Len() != 2 {
		return errors.New("pose requires a URDF file and a joint name")
	}
	model, err := urdf.ParseModelXMLFile(c.Args().Get(0))
	if err != nil {
		return err
	}
	target := c.Args().Get(1)
	reference := c.String(poseFlagReference)
	pose, err := bridge.NewPoseResolver(model).PoseInReferenceFrame(reference, target)
	if err != nil {
		return err
	}
	frame := reference
	if frame == "" {
		frame = model.Root().Name
	}
	p := pose.Point()
	printf(c.App.Writer, "%s relative to %s", target, frame)
	printf(c.App.Writer, "translation: [%.6f %.6f %.6f]", p.X, p.Y, p.Z)
	printf(c.App.Writer, "matrix: %s", pose)
	return nil
}

// SchemaAction is the corresponding Action for 'schema'.
func SchemaAction(c *cli.Context) error {
	data, err := json.MarshalIndent(bridge.ConfigSchema(), "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal config schema")
	}
	printf(c.App.Writer, "%s", data)
	return nil
}

func printRobot(w io.Writer, robot *dynamics.Robot) {
	printf(w, "%s", robot)
	names := lo.Map(robot.ActuatedJoints(), func(j *dynamics.Joint, _ int) string { return j.Name() })
	printf(w, "actuated joints (%d dof): %s", robot.NumberDof(), strings.Join(names, ", "))
	printf(w, "roles:")
	for _, role := range dynamics.Roles {
		name := unboundRolePlaceholder
		if j := robot.Role(role); j != nil {
			name = j.Name()
		}
		printf(w, "\t%s: %s", role, name)
	}
}
