// Package object holds the game entities: the invader formation, the player and its shots.
// Entities are owned by the game loop goroutine and are never shared.
package object

// Glyphs painted by the entities.
const (
	GlyphPlayer      = 'A'
	GlyphShot        = '|'
	GlyphBlast       = '*'
	GlyphInvader     = 'x'
	GlyphInvaderStep = '+'
)
