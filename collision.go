package main

// Rect is an axis-aligned rectangle with its origin at the top-left corner
type Rect struct {
	X, Y float64
	W, H float64
}

// CirclesOverlap checks if two circles overlap. Touching circles do not.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	dx := x2 - x1
	dy := y2 - y1
	radSum := r1 + r2
	return dx*dx+dy*dy < radSum*radSum
}

// CircleRectOverlap reports whether the circle (cx, cy, r) overlaps rect.
// The nearest point of the rectangle must be strictly closer than r.
func CircleRectOverlap(cx, cy, r float64, rect Rect) bool {
	closestX := Clamp(cx, rect.X, rect.X+rect.W)
	closestY := Clamp(cy, rect.Y, rect.Y+rect.H)
	dx := cx - closestX
	dy := cy - closestY
	return dx*dx+dy*dy < r*r
}

// CircleHitsAny returns the first obstacle the circle overlaps
func CircleHitsAny(cx, cy, r float64, obstacles []Obstacle) (*Obstacle, bool) {
	for i := range obstacles {
		if CircleRectOverlap(cx, cy, r, obstacles[i].Rect) {
			return &obstacles[i], true
		}
	}
	return nil, false
}

// OutOfBounds reports whether (x, y) lies outside [0,w]x[0,h]
func OutOfBounds(x, y, w, h float64) bool {
	return x < 0 || x > w || y < 0 || y > h
}
