// Package bitmap provides the bitonal raster used by the content box pipeline.
//
// A Bitmap stores one byte per pixel (1 = black, 0 = white) and is treated as a
// value: every operation in this package (raster ops, morphology, seed fill)
// returns a new Bitmap and leaves its inputs untouched. Callers drop their
// reference to an intermediate as soon as it is no longer needed and the
// garbage collector reclaims it.
//
// # Coordinate System
//
// Bitmaps always start at (0, 0). Rectangles use the image.Rectangle convention:
// Min is inclusive, Max is exclusive.
//
// # Morphology
//
// Structuring elements are axis-aligned bricks described by their size. The
// Surroundings argument decides what colour the pixels outside the bitmap are
// assumed to have, which matters for features touching the border: eroding
// with black surroundings keeps a shadow band that touches the page edge,
// eroding with white surroundings removes it.
//
// # Connected Components
//
// Components are produced lazily by a Scanner that never mutates its source;
// see NewScanner.
package bitmap
