package urdf

import (
	"encoding/xml"
	"math"
	"os"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/dynbridge/utils"
)

// robotXML represents the supported fields of a URDF file.
type robotXML struct {
	XMLName xml.Name   `xml:"robot"`
	Name    string     `xml:"name,attr"`
	Links   []linkXML  `xml:"link"`
	Joints  []jointXML `xml:"joint"`
}

// linkXML is a struct which details the XML used in a URDF link element.
type linkXML struct {
	XMLName  xml.Name     `xml:"link"`
	Name     string       `xml:"name,attr"`
	Inertial *inertialXML `xml:"inertial,omitempty"`
}

type inertialXML struct {
	Origin *poseXML `xml:"origin,omitempty"`
	Mass   struct {
		Value float64 `xml:"value,attr"`
	} `xml:"mass"`
	Inertia struct {
		Ixx float64 `xml:"ixx,attr"`
		Ixy float64 `xml:"ixy,attr"`
		Ixz float64 `xml:"ixz,attr"`
		Iyy float64 `xml:"iyy,attr"`
		Iyz float64 `xml:"iyz,attr"`
		Izz float64 `xml:"izz,attr"`
	} `xml:"inertia"`
}

// jointXML is a struct which details the XML used in a URDF joint element.
type jointXML struct {
	XMLName xml.Name  `xml:"joint"`
	Name    string    `xml:"name,attr"`
	Type    string    `xml:"type,attr"`
	Parent  frameXML  `xml:"parent"`
	Child   frameXML  `xml:"child"`
	Origin  *poseXML  `xml:"origin,omitempty"`
	Axis    *axisXML  `xml:"axis,omitempty"`
	Limit   *limitXML `xml:"limit,omitempty"`
}

type frameXML struct {
	Link string `xml:"link,attr"`
}

type poseXML struct {
	XYZ string `xml:"xyz,attr"`
	RPY string `xml:"rpy,attr"`
}

type axisXML struct {
	XYZ string `xml:"xyz,attr"`
}

type limitXML struct {
	Lower    float64 `xml:"lower,attr"`
	Upper    float64 `xml:"upper,attr"`
	Effort   float64 `xml:"effort,attr"`
	Velocity float64 `xml:"velocity,attr"`
}

func (p *poseXML) parse() (Pose, error) {
	if p == nil {
		return NewPose(), nil
	}
	xyz, err := vector3(p.XYZ, "xyz")
	if err != nil {
		return Pose{}, err
	}
	rpy, err := vector3(p.RPY, "rpy")
	if err != nil {
		return Pose{}, err
	}
	return NewPoseFromXYZRPY(xyz, rpy.X, rpy.Y, rpy.Z), nil
}

// vector3 parses a space delimited triple. An empty attribute is the zero vector.
func vector3(s, attr string) (r3.Vector, error) {
	values := utils.SpaceDelimitedStringToFloatSlice(s)
	switch len(values) {
	case 0:
		return r3.Vector{}, nil
	case 3:
		for _, v := range values {
			if math.IsNaN(v) {
				return r3.Vector{}, errors.Errorf("%s attribute %q is not numeric", attr, s)
			}
		}
		return r3.Vector{X: values[0], Y: values[1], Z: values[2]}, nil
	default:
		return r3.Vector{}, errors.Errorf("%s attribute %q must have 3 values", attr, s)
	}
}

// UnmarshalModelXML parses URDF XML data into a linked Model.
func UnmarshalModelXML(xmlData []byte) (*Model, error) {
	// empty data probably means that the read URDF has no actionable information
	if len(xmlData) == 0 {
		return nil, ErrNoModelInformation
	}

	robot := &robotXML{}
	if err := xml.Unmarshal(xmlData, robot); err != nil {
		return nil, errors.Wrap(err, "failed to convert URDF data to equivalent URDF struct")
	}

	links := make([]*Link, 0, len(robot.Links))
	for _, linkElem := range robot.Links {
		link := &Link{Name: linkElem.Name}
		if in := linkElem.Inertial; in != nil {
			origin, err := in.Origin.parse()
			if err != nil {
				return nil, errors.Wrapf(err, "link %q inertial origin", linkElem.Name)
			}
			link.Inertial = &Inertial{
				Origin: origin,
				Mass:   in.Mass.Value,
				Ixx:    in.Inertia.Ixx,
				Ixy:    in.Inertia.Ixy,
				Ixz:    in.Inertia.Ixz,
				Iyy:    in.Inertia.Iyy,
				Iyz:    in.Inertia.Iyz,
				Izz:    in.Inertia.Izz,
			}
		}
		links = append(links, link)
	}

	joints := make([]*Joint, 0, len(robot.Joints))
	for _, jointElem := range robot.Joints {
		origin, err := jointElem.Origin.parse()
		if err != nil {
			return nil, errors.Wrapf(err, "joint %q origin", jointElem.Name)
		}
		joint := &Joint{
			Name:                   jointElem.Name,
			Type:                   ParseJointType(jointElem.Type),
			ParentLinkName:         jointElem.Parent.Link,
			ChildLinkName:          jointElem.Child.Link,
			ParentToJointTransform: origin,
			// URDF default axis
			Axis: r3.Vector{X: 1},
		}
		if jointElem.Axis != nil {
			if joint.Axis, err = vector3(jointElem.Axis.XYZ, "axis"); err != nil {
				return nil, errors.Wrapf(err, "joint %q", jointElem.Name)
			}
		}
		if l := jointElem.Limit; l != nil {
			joint.Limits = &Limit{Lower: l.Lower, Upper: l.Upper, Effort: l.Effort, Velocity: l.Velocity}
		}
		joints = append(joints, joint)
	}

	return NewModel(robot.Name, links, joints)
}

// ParseModelXMLFile will read a given file and parse the contained URDF XML data into a Model.
func ParseModelXMLFile(filename string) (*Model, error) {
	//nolint:gosec
	xmlData, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read URDF file")
	}
	return UnmarshalModelXML(xmlData)
}
