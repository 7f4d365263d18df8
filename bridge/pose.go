package bridge

import (
	"go.viam.com/dynbridge/spatialmath"
)

// PoseResolver places source joints relative to one another by chaining their origins.
//
// The default conversion does not use it: every typed joint gets an identity pose unless
// Config.ResolvePoses is set.
type PoseResolver struct {
	model Model
}

// NewPoseResolver returns a resolver reading model.
func NewPoseResolver(model Model) *PoseResolver {
	return &PoseResolver{model: model}
}

// PoseInReferenceFrame returns the transform of the target joint relative to the parent link of
// the reference joint. When reference is target this is the target's own origin. Otherwise it
// is the reference-to-parent-joint transform composed on the left of the target's origin,
// following the target's parent links up to the reference. An empty reference resolves up to
// the root link. The reference must be an ancestor of the target.
func (pr *PoseResolver) PoseInReferenceFrame(reference, target string) (spatialmath.Pose, error) {
	if reference != "" && pr.model.Joint(reference) == nil {
		return spatialmath.Pose{}, newMalformedInputError("unknown reference joint %q", reference)
	}
	return pr.poseInReferenceFrame(reference, target, target, map[string]bool{})
}

func (pr *PoseResolver) poseInReferenceFrame(reference, target, current string, seen map[string]bool) (spatialmath.Pose, error) {
	joint := pr.model.Joint(current)
	if joint == nil {
		return spatialmath.Pose{}, newMalformedInputError("unknown joint %q", current)
	}
	local := joint.ParentToJointTransform.Matrix()
	if reference == current {
		return local, nil
	}
	if seen[current] {
		return spatialmath.Pose{}, newStructuralInconsistencyError("cycle through joint %q while resolving %q", current, target)
	}
	seen[current] = true

	parentLink := pr.model.Link(joint.ParentLinkName)
	if parentLink == nil {
		return spatialmath.Pose{}, newStructuralInconsistencyError("parent link %q of joint %q not found", joint.ParentLinkName, current)
	}
	if parentLink.ParentJoint == nil {
		if reference == "" {
			return local, nil
		}
		return spatialmath.Pose{}, newStructuralInconsistencyError("joint %q is not an ancestor of %q", reference, target)
	}
	parentPose, err := pr.poseInReferenceFrame(reference, target, parentLink.ParentJoint.Name, seen)
	if err != nil {
		return spatialmath.Pose{}, err
	}
	return spatialmath.Compose(parentPose, local), nil
}
