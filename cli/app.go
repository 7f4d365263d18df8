// Package cli contains the urdf2dyn command line application.
package cli

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"
)

const (
	// Flags.
	generalFlagConfig = "config"
	generalFlagDebug  = "debug"
	convertFlagRoot   = "root"
	convertFlagWatch  = "watch"
	convertFlagPoses  = "resolve-poses"
	poseFlagReference = "reference"

	defaultAppName         = "urdf2dyn"
	unboundRolePlaceholder = "<unbound>"
)

var app = &cli.App{
	Name:            defaultAppName,
	Usage:           "convert URDF robot descriptions into dynamics kinematic trees",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    generalFlagConfig,
			Aliases: []string{"c"},
			Usage:   "load conversion configuration from `FILE`",
		},
		&cli.BoolFlag{
			Name:    generalFlagDebug,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging",
		},
	},
	Commands: []*cli.Command{
		{
			Name:      "convert",
			Usage:     "convert a URDF file and print the resulting joint tree, actuated joints and roles",
			UsageText: "urdf2dyn [global options] convert [command options] <urdf file>",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  convertFlagRoot,
					Usage: "name of the synthesized free-flyer root joint (defaults to the configured root_joint)",
				},
				&cli.BoolFlag{
					Name:  convertFlagPoses,
					Usage: "place joints using the URDF origins instead of identity poses",
				},
				&cli.BoolFlag{
					Name:  convertFlagWatch,
					Usage: "convert again every time the file changes",
				},
			},
			Action: ConvertAction,
		},
		{
			Name:      "pose",
			Usage:     "print the transform of a joint relative to a reference joint",
			UsageText: "urdf2dyn [global options] pose [command options] <urdf file> <joint>",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  poseFlagReference,
					Usage: "reference joint; the root link when empty",
				},
			},
			Action: PoseAction,
		},
		{
			Name:   "schema",
			Usage:  "print the JSON schema of the conversion configuration",
			Action: SchemaAction,
		},
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}

// printf prints a message with a newline.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}
