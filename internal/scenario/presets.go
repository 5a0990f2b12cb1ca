package scenario

import (
	"math"
	"math/rand"

	"github.com/san-kum/gravsim/internal/gravity"
	"github.com/san-kum/gravsim/internal/vecmath"
)

func at(origin vecmath.Vec2, x, y float64) vecmath.Vec2 {
	return origin.Add(vecmath.V(x, y))
}

func Solar(o vecmath.Vec2, _ *rand.Rand) gravity.SpawnRequest {
	return gravity.SpawnRequest{Bodies: []gravity.BodyParams{
		{Pos: at(o, 0, 0), Density: 10, Radius: 20, Color: "red"},
		{Pos: at(o, 0, 130), Vel: vecmath.V(130, 0), Density: 5, Radius: 5},
		{Pos: at(o, 0, 140), Vel: vecmath.V(110, -5), Density: 1, Radius: 1},
		{Pos: at(o, 0, -240), Vel: vecmath.V(-130, 0), Density: 3.5, Radius: 3},
		{Pos: at(o, -250, 0), Vel: vecmath.V(0, 130), Density: 2, Radius: 10},
		{Pos: at(o, -270, 0), Vel: vecmath.V(0, 95), Density: 1, Radius: 1},
		{Pos: at(o, -230, 0), Vel: vecmath.V(-10, 95), Density: 1, Radius: 1},
	}}
}

func PlanetMoon(o vecmath.Vec2, _ *rand.Rand) gravity.SpawnRequest {
	return gravity.SpawnRequest{Bodies: []gravity.BodyParams{
		{Pos: at(o, 0, 0), Density: 3, Radius: 10},
		{Pos: at(o, -15, 0), Vel: vecmath.V(0, 35), Density: 1, Radius: 1},
	}}
}

func SunPlanet(o vecmath.Vec2, _ *rand.Rand) gravity.SpawnRequest {
	return gravity.SpawnRequest{Bodies: []gravity.BodyParams{
		{Pos: at(o, 0, 0), Density: 4, Radius: 20, Color: "red"},
		{Pos: at(o, -150, 0), Vel: vecmath.V(0, 100), Density: 3, Radius: 10},
		{Pos: at(o, -165, 0), Vel: vecmath.V(0, 135), Density: 1, Radius: 1},
	}}
}

const (
	orbitPrimaryMass   = 10.0
	orbitSatelliteMass = 1.0
	orbitSeparation    = 100.0
)

// Orbit places a satellite on a circular orbit around a primary at rest,
// assuming G = 1. Under the 1/d force law the circular relative speed is
// sqrt(G·(M+m)) at any separation.
func Orbit(o vecmath.Vec2, _ *rand.Rand) gravity.SpawnRequest {
	v := math.Sqrt(orbitPrimaryMass + orbitSatelliteMass)
	return gravity.SpawnRequest{Bodies: []gravity.BodyParams{
		{Pos: at(o, 0, 0), Density: gravity.DensityForMass(orbitPrimaryMass, 5), Radius: 5, Color: "gold"},
		{Pos: at(o, orbitSeparation, 0), Vel: vecmath.V(0, v), Density: gravity.DensityForMass(orbitSatelliteMass, 1), Radius: 1},
	}}
}

const (
	randomSuns       = 5
	randomSatellites = 30
	randomFieldW     = 1200.0
	randomFieldH     = 800.0
)

// Random scatters suns and satellites over a field centered on origin.
func Random(o vecmath.Vec2, rng *rand.Rand) gravity.SpawnRequest {
	req := gravity.SpawnRequest{Bodies: make([]gravity.BodyParams, 0, randomSuns+randomSatellites)}
	place := func() vecmath.Vec2 {
		return at(o, (rng.Float64()-0.5)*randomFieldW, (rng.Float64()-0.5)*randomFieldH)
	}
	for i := 0; i < randomSuns; i++ {
		req.Bodies = append(req.Bodies, gravity.BodyParams{
			Pos:      place(),
			Density:  1,
			Radius:   math.Max(1, rng.Float64()*50),
			Color:    "red",
			Gradient: true,
		})
	}
	for i := 0; i < randomSatellites; i++ {
		req.Bodies = append(req.Bodies, gravity.BodyParams{
			Pos:     place(),
			Density: 1,
			Radius:  math.Max(1, rng.Float64()*10),
			Color:   "black",
		})
	}
	return req
}

// Siege puts an invulnerable anchor at origin, a planet carrying four
// cannons on one side, and three targets on the far orbit.
func Siege(o vecmath.Vec2, _ *rand.Rand) gravity.SpawnRequest {
	const (
		anchorDensity = 20.0
		anchorRadius  = 8.0
		orbitRadius   = 300.0
	)
	v := math.Sqrt(gravity.MassOf(anchorDensity, anchorRadius))

	return gravity.SpawnRequest{
		Bodies: []gravity.BodyParams{
			{Pos: at(o, 0, 0), Density: anchorDensity, Radius: anchorRadius, Color: "#111111", Gradient: true, Invulnerable: true},
			{Pos: at(o, -orbitRadius, 0), Vel: vecmath.V(0, v), Density: 2, Radius: 15, Color: "steelblue"},
			{Pos: at(o, orbitRadius, 0), Vel: vecmath.V(0, -v), Density: 1, Radius: 10, Color: "green", Health: 30},
			{Pos: at(o, 0, orbitRadius), Vel: vecmath.V(v, 0), Density: 1, Radius: 10, Color: "green", Health: 30},
			{Pos: at(o, 0, -orbitRadius), Vel: vecmath.V(-v, 0), Density: 1, Radius: 10, Color: "green", Health: 30},
		},
		Cannons: []gravity.CannonParams{
			{Parent: 1, Angle: 0},
			{Parent: 1, Angle: math.Pi / 2},
			{Parent: 1, Angle: math.Pi},
			{Parent: 1, Angle: 3 * math.Pi / 2},
		},
	}
}
