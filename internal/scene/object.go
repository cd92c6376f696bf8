// Package scene provides the transformable 3D objects driven by gestures.
package scene

import (
	"fmt"

	"github.com/Faultbox/midgard-gesture/pkg/math"
)

// Object is a 3D node with a position, a quaternion orientation and a
// per-axis scale. It implements gesture.Target.
type Object struct {
	Name     string
	Position math.Vec3
	Rotation math.Quat

	baseScale    math.Vec3
	scale        math.Vec3
	initialScale math.Vec3
	scaleFactor  float64
	visible      bool
}

// NewObject creates a visible object with identity rotation and the given scale.
func NewObject(name string, scale math.Vec3) *Object {
	return &Object{
		Name:         name,
		Rotation:     math.QuatIdentity(),
		baseScale:    scale,
		scale:        scale,
		initialScale: scale,
		scaleFactor:  1,
		visible:      true,
	}
}

// Visible reports whether the object reacts to gestures.
func (o *Object) Visible() bool { return o.visible }

// SetVisible shows or hides the object.
func (o *Object) SetVisible(v bool) { o.visible = v }

// ScaleFactor returns the accumulated pinch factor.
func (o *Object) ScaleFactor() float64 { return o.scaleFactor }

// SetScaleFactor stores the accumulated pinch factor.
func (o *Object) SetScaleFactor(f float64) { o.scaleFactor = f }

// InitialScale returns the scale the pinch factor is relative to.
func (o *Object) InitialScale() math.Vec3 { return o.initialScale }

// SetInitialScale sets the scale the pinch factor is relative to.
func (o *Object) SetInitialScale(s math.Vec3) { o.initialScale = s }

// Scale returns the current scale.
func (o *Object) Scale() math.Vec3 { return o.scale }

// SetScale replaces all three scale components at once.
func (o *Object) SetScale(s math.Vec3) { o.scale = s }

// Reset restores the rotation and scale the object was created with.
func (o *Object) Reset() {
	o.Rotation = math.QuatIdentity()
	o.scale = o.baseScale
	o.initialScale = o.baseScale
	o.scaleFactor = 1
}

// RotateX rotates the object about its local X axis.
func (o *Object) RotateX(angle float64) {
	o.rotateOnAxis(math.AxisX, angle)
}

// RotateY rotates the object about its local Y axis.
func (o *Object) RotateY(angle float64) {
	o.rotateOnAxis(math.AxisY, angle)
}

// rotateOnAxis post-multiplies so the axis is interpreted in object space.
func (o *Object) rotateOnAxis(axis math.Vec3, angle float64) {
	o.Rotation = o.Rotation.Mul(math.QuatFromAxisAngle(axis, angle)).Normalize()
}

// Forward returns the object's local -Z axis in world space.
func (o *Object) Forward() math.Vec3 {
	return o.Rotation.Rotate(math.Vec3{Z: -1})
}

// String summarizes the transform for logs.
func (o *Object) String() string {
	r := o.Rotation
	return fmt.Sprintf("%s rot=(%.4f %.4f %.4f %.4f) scale=(%.4f %.4f %.4f) factor=%.4f",
		o.Name, r.X, r.Y, r.Z, r.W, o.scale.X, o.scale.Y, o.scale.Z, o.scaleFactor)
}
