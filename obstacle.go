package main

// BorderThickness is the depth of the synthesized arena walls
const BorderThickness = 50.0

// Obstacle is a static wall. Obstacles never change after the arena is built.
type Obstacle struct {
	Rect
	Border bool
}

// ToState converts to protocol state
func (o Obstacle) ToState() ObstacleState {
	return ObstacleState{X: o.X, Y: o.Y, W: o.W, H: o.H}
}

// tankLayout is the fixed interior wall layout of the tank arena (800x600)
var tankLayout = []Rect{
	{X: 100, Y: 100, W: 50, H: 200},
	{X: 650, Y: 100, W: 50, H: 200},
	{X: 300, Y: 300, W: 200, H: 50},
	{X: 100, Y: 500, W: 600, H: 50},
}

// planeLayout is the fixed floating-block layout of the plane arena (2000x1200)
var planeLayout = []Rect{
	{X: 400, Y: 300, W: 120, H: 40},
	{X: 900, Y: 550, W: 200, H: 60},
	{X: 1450, Y: 300, W: 120, H: 40},
	{X: 600, Y: 850, W: 160, H: 50},
	{X: 1250, Y: 850, W: 160, H: 50},
}

// BorderWalls returns four walls hugging the outside of a w x h arena
func BorderWalls(w, h float64) []Obstacle {
	return []Obstacle{
		{Rect: Rect{X: -BorderThickness, Y: 0, W: BorderThickness, H: h}, Border: true}, // left
		{Rect: Rect{X: w, Y: 0, W: BorderThickness, H: h}, Border: true},                // right
		{Rect: Rect{X: 0, Y: -BorderThickness, W: w, H: BorderThickness}, Border: true}, // top
		{Rect: Rect{X: 0, Y: h, W: w, H: BorderThickness}, Border: true},                // bottom
	}
}

// BuildObstacles returns the obstacle set for an arena
func BuildObstacles(cfg ArenaConfig) []Obstacle {
	layout := tankLayout
	if cfg.Mode == ModePlane {
		layout = planeLayout
	}
	obstacles := make([]Obstacle, 0, len(layout)+4)
	for _, r := range layout {
		obstacles = append(obstacles, Obstacle{Rect: r})
	}
	if cfg.BorderWalls {
		obstacles = append(obstacles, BorderWalls(cfg.Width, cfg.Height)...)
	}
	return obstacles
}
