package component

import "github.com/jakecoffman/cp"

// BodyKind selects the collision type a body is registered with.
type BodyKind int

const (
	BodySolid BodyKind = iota
	BodyPlayer
	BodyCollectible
)

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
type PhysicsBody struct {
	Body         *cp.Body
	Shape        *cp.Shape
	Kind         BodyKind
	Width        float64
	Height       float64
	OffsetX      float64
	OffsetY      float64
	Mass         float64
	Friction     float64
	Elasticity   float64
	Static       bool
	Sensor       bool
	AlignTopLeft bool
	// FixedRotation gives dynamic bodies an infinite moment.
	FixedRotation bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
