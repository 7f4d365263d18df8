package bridge

import (
	"fmt"

	"github.com/pkg/errors"

	"go.viam.com/dynbridge/urdf"
)

// Every conversion failure wraps one of these, so callers can test the category with errors.Is.
var (
	// ErrMalformedInput is returned for missing or unusable source data.
	ErrMalformedInput = errors.New("malformed input")
	// ErrUnsupportedJointKind is returned for joint kinds the dynamics model cannot represent.
	ErrUnsupportedJointKind = errors.New("unsupported joint kind")
	// ErrUnknownJointKind is returned for joint kinds outside the known enumeration.
	ErrUnknownJointKind = errors.New("unknown joint kind")
	// ErrStructuralInconsistency is returned when names and topology do not agree.
	ErrStructuralInconsistency = errors.New("structural inconsistency")
)

// UnknownJointKindError carries the joint kind value that could not be dispatched.
type UnknownJointKindError struct {
	Joint string
	Kind  urdf.JointType
}

func (e *UnknownJointKindError) Error() string {
	return fmt.Sprintf("unknown joint type %d for joint %q: should never happen", int(e.Kind), e.Joint)
}

// Is matches ErrUnknownJointKind.
func (e *UnknownJointKindError) Is(target error) bool {
	return target == ErrUnknownJointKind
}

func newMalformedInputError(format string, args ...interface{}) error {
	return errors.Wrapf(ErrMalformedInput, format, args...)
}

func newStructuralInconsistencyError(format string, args ...interface{}) error {
	return errors.Wrapf(ErrStructuralInconsistency, format, args...)
}

// NewUnsupportedJointKindError is returned for a joint whose kind has no typed counterpart.
func NewUnsupportedJointKindError(joint string, kind urdf.JointType) error {
	return errors.Wrapf(ErrUnsupportedJointKind, "%s joints are not supported (joint %q)", kind, joint)
}

// NewMissingNodeError is returned when a joint of the source tree was never registered.
func NewMissingNodeError(joint string) error {
	return newStructuralInconsistencyError("missing node %q in kinematics tree", joint)
}
