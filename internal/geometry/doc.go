// Package geometry holds the affine transforms and float rectangles used to
// move the content box between the canonical working space and the caller's
// coordinate space.
//
// Rectangles never cross spaces implicitly: a Rect is just four numbers, and
// the only way to carry it from one space to another is through an Affine.
package geometry
