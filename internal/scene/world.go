package scene

import (
	"math"

	"github.com/jakecoffman/cp"
)

// PointsPerMeter converts gravity in m/s² into the scene's point units.
const PointsPerMeter = 150.0

// Kind tags what a body is so contact handlers can tell them apart.
type Kind int

const (
	KindWall Kind = iota + 1
	KindPlayer
	KindFinish
	KindBottle
	KindSpinner
)

// Body is one rigid body in a World.
type Body struct {
	Kind Kind
	ID   int

	body  *cp.Body
	shape *cp.Shape
	size  Size
}

// Position returns the body center in points.
func (b *Body) Position() Vec {
	p := b.body.Position()
	return Vec{p.X, p.Y}
}

// Velocity returns the body velocity in points per second.
func (b *Body) Velocity() Vec {
	v := b.body.Velocity()
	return Vec{v.X, v.Y}
}

// Angle returns the body rotation in radians.
func (b *Body) Angle() float64 {
	return b.body.Angle()
}

// Box returns the unrotated bounding box at the current position.
func (b *Body) Box() Box {
	return Box{Center: b.Position(), Size: b.size}
}

// Contact is a pair of bodies that started touching during a step. A is
// always of the first kind given to World.Watch.
type Contact struct {
	A, B *Body
}

// World wraps a Chipmunk2D space. Contacts raised inside the solver are
// queued and handed back from Step, so callers mutate the world only between
// steps.
type World struct {
	space    *cp.Space
	bodies   map[int]*Body
	nextID   int
	gravity  Vec
	contacts []Contact
}

// NewWorld creates an empty world with zero gravity.
func NewWorld() *World {
	space := cp.NewSpace()
	space.Iterations = 20
	return &World{space: space, bodies: make(map[int]*Body)}
}

// SetGravity sets world gravity in m/s².
func (w *World) SetGravity(g Vec) {
	w.gravity = g
	w.space.SetGravity(cp.Vector{X: g.X * PointsPerMeter, Y: g.Y * PointsPerMeter})
}

// Gravity returns world gravity in m/s².
func (w *World) Gravity() Vec {
	return w.gravity
}

// Watch reports begin contacts between bodies of kinds a and b from Step.
func (w *World) Watch(a, b Kind) {
	h := w.space.NewCollisionHandler(cp.CollisionType(a), cp.CollisionType(b))
	h.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
		sa, sb := arb.Shapes()
		ba, okA := sa.UserData.(*Body)
		bb, okB := sb.UserData.(*Body)
		if okA && okB {
			if ba.Kind != a {
				ba, bb = bb, ba
			}
			w.contacts = append(w.contacts, Contact{A: ba, B: bb})
		}
		return true
	}
}

// AddStatic adds an immovable box.
func (w *World) AddStatic(kind Kind, box Box, elasticity float64) *Body {
	body := cp.NewStaticBody()
	body.SetPosition(cp.Vector{X: box.Center.X, Y: box.Center.Y})
	w.space.AddBody(body)
	return w.attach(kind, body, box.Size, elasticity, false)
}

// AddSensor adds an immovable box that reports contacts without
// pushing anything.
func (w *World) AddSensor(kind Kind, box Box) *Body {
	body := cp.NewStaticBody()
	body.SetPosition(cp.Vector{X: box.Center.X, Y: box.Center.Y})
	w.space.AddBody(body)
	return w.attach(kind, body, box.Size, 0, true)
}

// AddKinematic adds a box pinned at its center spinning at omega rad/s.
func (w *World) AddKinematic(kind Kind, box Box, omega, elasticity float64) *Body {
	body := cp.NewKinematicBody()
	body.SetPosition(cp.Vector{X: box.Center.X, Y: box.Center.Y})
	body.SetAngularVelocity(omega)
	w.space.AddBody(body)
	return w.attach(kind, body, box.Size, elasticity, false)
}

// DynamicOptions tunes a dynamic body.
type DynamicOptions struct {
	Mass       float64
	Elasticity float64
	Damping    float64 // linear damping per second, 0 for none
	FixedAngle bool
	Friction   float64
}

// AddDynamic adds a body moved by gravity and collisions.
func (w *World) AddDynamic(kind Kind, box Box, opts DynamicOptions) *Body {
	mass := opts.Mass
	if mass <= 0 {
		mass = 1
	}
	moment := cp.MomentForBox(mass, box.Size.W, box.Size.H)
	if opts.FixedAngle {
		moment = cp.INFINITY
	}
	body := cp.NewBody(mass, moment)
	body.SetPosition(cp.Vector{X: box.Center.X, Y: box.Center.Y})
	if opts.Damping > 0 {
		linear := opts.Damping
		body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping, dt float64) {
			cp.BodyUpdateVelocity(b, gravity, damping*math.Exp(-linear*dt), dt)
		})
	}
	w.space.AddBody(body)
	b := w.attach(kind, body, box.Size, opts.Elasticity, false)
	b.shape.SetFriction(opts.Friction)
	return b
}

func (w *World) attach(kind Kind, body *cp.Body, size Size, elasticity float64, sensor bool) *Body {
	shape := cp.NewBox(body, size.W, size.H, 0)
	shape.SetElasticity(elasticity)
	shape.SetCollisionType(cp.CollisionType(kind))
	shape.SetSensor(sensor)
	w.nextID++
	b := &Body{Kind: kind, ID: w.nextID, body: body, shape: shape, size: size}
	shape.UserData = b
	body.UserData = b
	w.space.AddShape(shape)
	w.bodies[b.ID] = b
	return b
}

// Remove takes a body out of the world. Removing twice is a no-op.
func (w *World) Remove(b *Body) {
	if b == nil {
		return
	}
	if _, ok := w.bodies[b.ID]; !ok {
		return
	}
	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.body)
	delete(w.bodies, b.ID)
}

// Contains reports whether b is still part of the world.
func (w *World) Contains(b *Body) bool {
	if b == nil {
		return false
	}
	_, ok := w.bodies[b.ID]
	return ok
}

// Teleport moves a dynamic body to pos and stops it.
func (w *World) Teleport(b *Body, pos Vec) {
	b.body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
	b.body.SetVelocityVector(cp.Vector{})
	b.body.SetAngularVelocity(0)
	b.body.Activate()
}

// Count returns the number of bodies of a kind.
func (w *World) Count(kind Kind) int {
	n := 0
	for _, b := range w.bodies {
		if b.Kind == kind {
			n++
		}
	}
	return n
}

// Bodies returns the bodies of a kind in insertion order.
func (w *World) Bodies(kind Kind) []*Body {
	out := make([]*Body, 0, len(w.bodies))
	for id := 1; id <= w.nextID; id++ {
		if b, ok := w.bodies[id]; ok && b.Kind == kind {
			out = append(out, b)
		}
	}
	return out
}

// Step advances the simulation by dt seconds and returns the contacts that
// began during the step.
func (w *World) Step(dt float64) []Contact {
	w.contacts = w.contacts[:0]
	if dt > 0 {
		w.space.Step(dt)
	}
	out := make([]Contact, len(w.contacts))
	copy(out, w.contacts)
	return out
}
