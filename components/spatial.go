package components

// Collider is a circular exclusion region. A collider is owned by the collision grid once
// accepted and never changes afterwards.
type Collider struct {
	Position Position
	Radius   float64
}
