package object

import "time"

// Shot is a projectile fired by the player. It rises one row every step and
// is tracked independently of the player's position.
type Shot struct {
	X, Y int
	step Timer
}

// NewShot creates a shot at (x, y) rising one row every step.
func NewShot(x, y int, step time.Duration) Shot {
	return Shot{X: x, Y: y, step: NewTimer(step)}
}

// Update advances the shot. Returns true when it has left the top of the grid.
func (s *Shot) Update(delta time.Duration) (gone bool) {
	s.step.Tick(delta)
	if !s.step.Finished() {
		return false
	}
	s.step.Reset()
	if s.Y == 0 {
		return true
	}
	s.Y--
	return false
}

// Blast marks the cell of a hit for a short while. It is cosmetic only.
type Blast struct {
	X, Y int
	ttl  Timer
}

// NewBlast creates a blast marker that lasts for d.
func NewBlast(x, y int, d time.Duration) Blast {
	return Blast{X: x, Y: y, ttl: NewTimer(d)}
}

// Update ages the blast. Returns true once it has expired.
func (b *Blast) Update(delta time.Duration) (expired bool) {
	b.ttl.Tick(delta)
	return b.ttl.Finished()
}
