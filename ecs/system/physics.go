package system

import (
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/treasurerun/common"
	"github.com/milk9111/treasurerun/ecs"
	"github.com/milk9111/treasurerun/ecs/component"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypePlayerGround
	collisionTypeSolid
	collisionTypeCollectible
)

// PhysicsSystem mirrors PhysicsBody components into a cp space and steps it
// once per tick. Overlaps between the player and collectible sensors are
// pushed as EventOverlap after the step, ordered by collectible entity.
type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool
	gravity       float64
	iterations    uint
	dt            float64

	entities     map[ecs.Entity]*bodyInfo
	playerShapes map[*cp.Shape]ecs.Entity
	groundShapes map[*cp.Shape]ecs.Entity
	sensorShapes map[*cp.Shape]ecs.Entity
	grounded     map[ecs.Entity]bool
	overlaps     map[overlapPair]struct{}
}

type bodyInfo struct {
	body        *cp.Body
	mainShape   *cp.Shape
	groundShape *cp.Shape
	shapes      []*cp.Shape
	static      bool
}

type overlapPair struct {
	player ecs.Entity
	other  ecs.Entity
}

// NewPhysicsSystem creates a space with downward gravity in px/s². Zero
// values fall back to common.Gravity and 10 solver iterations.
func NewPhysicsSystem(gravity float64, iterations int) *PhysicsSystem {
	if gravity == 0 {
		gravity = common.Gravity
	}
	if iterations <= 0 {
		iterations = 10
	}
	ps := &PhysicsSystem{
		gravity:    gravity,
		iterations: uint(iterations),
		dt:         1.0 / common.TPS,
	}
	ps.reset()
	return ps
}

func (ps *PhysicsSystem) reset() {
	ps.space = cp.NewSpace()
	ps.space.Iterations = ps.iterations
	ps.space.SetGravity(cp.Vector{X: 0, Y: ps.gravity})
	ps.handlersReady = false
	ps.entities = make(map[ecs.Entity]*bodyInfo)
	ps.playerShapes = make(map[*cp.Shape]ecs.Entity)
	ps.groundShapes = make(map[*cp.Shape]ecs.Entity)
	ps.sensorShapes = make(map[*cp.Shape]ecs.Entity)
	ps.grounded = make(map[ecs.Entity]bool)
	ps.overlaps = make(map[overlapPair]struct{})
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if levelComplete(w) {
		return
	}

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.syncWorldBounds(w)

	clear(ps.overlaps)
	for e := range ps.grounded {
		ps.grounded[e] = false
	}

	ps.space.Step(ps.dt)

	ps.syncTransforms(w)
	ps.flushPlayerContacts(w)
	ps.flushOverlaps(w)
}

func playerFromArbiter(arb *cp.Arbiter, shapes map[*cp.Shape]ecs.Entity) (ecs.Entity, *cp.Shape, bool, bool) {
	a, b := arb.Shapes()
	if e, ok := shapes[a]; ok {
		return e, b, true, true
	}
	if e, ok := shapes[b]; ok {
		return e, a, false, true
	}
	return 0, nil, false, false
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	groundHandler := ps.space.NewCollisionHandler(collisionTypePlayerGround, collisionTypeSolid)
	groundHandler.UserData = ps
	groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		player, _, sensorIsA, ok := playerFromArbiter(arb, sys.groundShapes)
		if !ok {
			return true
		}
		n := arb.Normal()
		if !sensorIsA {
			n = n.Neg()
		}
		// screen-down coordinates: a floor pushes the sensor toward +Y
		if n.Y > 0.5 {
			sys.grounded[player] = true
		}
		return true
	}

	pickupHandler := ps.space.NewCollisionHandler(collisionTypePlayer, collisionTypeCollectible)
	pickupHandler.UserData = ps
	pickupHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return false
		}
		player, other, _, ok := playerFromArbiter(arb, sys.playerShapes)
		if !ok {
			return false
		}
		if target, ok := sys.sensorShapes[other]; ok {
			sys.overlaps[overlapPair{player: player, other: target}] = struct{}{}
		}
		return false
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if info := ps.entities[e]; info != nil {
			if bodyComp.Body == nil {
				bodyComp.Body = info.body
				bodyComp.Shape = info.mainShape
			}
			return
		}

		info := ps.createBodyInfo(e, transform, bodyComp)
		if info == nil {
			return
		}
		ps.entities[e] = info
		bodyComp.Body = info.body
		bodyComp.Shape = info.mainShape
	})
}

func (ps *PhysicsSystem) createBodyInfo(e ecs.Entity, transform *component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	width, height := bodyComp.Width, bodyComp.Height
	if width <= 0 || height <= 0 {
		return nil
	}

	topLeftX := transform.X + bodyComp.OffsetX
	topLeftY := transform.Y + bodyComp.OffsetY
	if !bodyComp.AlignTopLeft {
		topLeftX -= width / 2
		topLeftY -= height / 2
	}

	info := &bodyInfo{static: bodyComp.Static}

	if bodyComp.Static {
		bb := cp.BB{L: topLeftX, B: topLeftY, R: topLeftX + width, T: topLeftY + height}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		ps.configureShape(e, shape, bodyComp)
		ps.space.AddShape(shape)

		info.body = ps.space.StaticBody
		info.mainShape = shape
		info.shapes = []*cp.Shape{shape}
		return info
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}
	moment := cp.MomentForBox(mass, width, height)
	if bodyComp.FixedRotation {
		moment = cp.INFINITY
	}

	body := cp.NewBody(mass, moment)
	body.SetPosition(cp.Vector{X: topLeftX + width/2, Y: topLeftY + height/2})
	body.SetAngle(transform.Rotation)

	shape := cp.NewBox(body, width, height, 0)
	ps.configureShape(e, shape, bodyComp)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	info.body = body
	info.mainShape = shape
	info.shapes = []*cp.Shape{shape}

	if bodyComp.Kind == component.BodyPlayer {
		ground := createGroundSensor(width, height, body)
		ps.space.AddShape(ground)
		ps.groundShapes[ground] = e
		ps.grounded[e] = false
		info.groundShape = ground
		info.shapes = append(info.shapes, ground)
	}
	return info
}

func (ps *PhysicsSystem) configureShape(e ecs.Entity, shape *cp.Shape, bodyComp *component.PhysicsBody) {
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetSensor(bodyComp.Sensor)

	switch bodyComp.Kind {
	case component.BodyPlayer:
		shape.SetCollisionType(collisionTypePlayer)
		ps.playerShapes[shape] = e
	case component.BodyCollectible:
		shape.SetCollisionType(collisionTypeCollectible)
		ps.sensorShapes[shape] = e
	default:
		shape.SetCollisionType(collisionTypeSolid)
	}
}

func createGroundSensor(width, height float64, body *cp.Body) *cp.Shape {
	groundBB := cp.BB{
		L: -width * 0.45,
		B: height / 2.0,
		R: width * 0.45,
		T: height/2.0 + 2,
	}
	groundShape := cp.NewBox2(body, groundBB, 0)
	groundShape.SetSensor(true)
	groundShape.SetCollisionType(collisionTypePlayerGround)
	return groundShape
}

func (ps *PhysicsSystem) syncWorldBounds(w *ecs.World) {
	boundsEntity, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	if _, exists := ps.entities[boundsEntity]; exists {
		return
	}
	bounds, ok := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind())
	if !ok || bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}

	worldW, worldH := bounds.Width, bounds.Height
	segments := [][2]cp.Vector{
		{{X: 0, Y: 0}, {X: worldW, Y: 0}},
		{{X: 0, Y: worldH}, {X: worldW, Y: worldH}},
		{{X: 0, Y: 0}, {X: 0, Y: worldH}},
		{{X: worldW, Y: 0}, {X: worldW, Y: worldH}},
	}

	info := &bodyInfo{static: true, body: ps.space.StaticBody}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg[0], seg[1], 1)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		info.shapes = append(info.shapes, shape)
	}
	ps.entities[boundsEntity] = info
}

func (ps *PhysicsSystem) flushPlayerContacts(w *ecs.World) {
	for e, grounded := range ps.grounded {
		if pc, ok := ecs.Get(w, e, component.PlayerCollisionComponent.Kind()); ok {
			pc.Grounded = grounded
		}
	}
}

func (ps *PhysicsSystem) flushOverlaps(w *ecs.World) {
	if len(ps.overlaps) == 0 {
		return
	}
	pairs := make([]overlapPair, 0, len(ps.overlaps))
	for p := range ps.overlaps {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].other != pairs[j].other {
			return pairs[i].other < pairs[j].other
		}
		return pairs[i].player < pairs[j].player
	})
	for _, p := range pairs {
		w.Events().Push(ecs.Event{Type: ecs.EventOverlap, Entity: p.player, Other: p.other})
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Body == nil || bodyComp.Static {
			return
		}
		pos := bodyComp.Body.Position()
		if bodyComp.AlignTopLeft {
			transform.X = pos.X - bodyComp.Width/2.0 - bodyComp.OffsetX
			transform.Y = pos.Y - bodyComp.Height/2.0 - bodyComp.OffsetY
		} else {
			transform.X = pos.X - bodyComp.OffsetX
			transform.Y = pos.Y - bodyComp.OffsetY
		}
		transform.Rotation = bodyComp.Body.Angle()
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && (ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) || ecs.Has(w, e, component.LevelBoundsComponent.Kind())) {
			continue
		}

		for _, shape := range info.shapes {
			ps.space.RemoveShape(shape)
			delete(ps.playerShapes, shape)
			delete(ps.groundShapes, shape)
			delete(ps.sensorShapes, shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
		delete(ps.grounded, e)
	}
}
