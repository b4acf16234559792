// Package imaging provides the file and raster operations around the content
// box search: loading page scans, choosing a binarization level, cropping to
// a detected box and drawing the box over the page.
//
// All operations work with standard Go image.Image types and use a coordinate
// system where (0,0) is at the top-left corner, X increases rightward, and Y
// increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// Content boxes arrive with fractional edges. ContentRect widens them to the
// enclosing pixels before cropping or drawing.
//
// # Supported Formats
//
// ImageCache decodes PNG, JPEG, GIF, TIFF and BMP. The format is detected
// from the file contents; the extension is ignored.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Individual image operations
// are stateless and never modify their input, so they can run concurrently on
// the same cached image.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Coordinates outside image bounds
//   - Invalid region specifications (x1 >= x2 or y1 >= y2)
//   - Unparsable overlay colours
//   - File I/O errors during image loading
//   - Encoding errors during image output
//
// # Performance Considerations
//
// Page scans are large. For repeated operations on the same page, use
// ImageCache to avoid redundant disk reads, and Evict() pages that are done
// with in long-running processes.
package imaging
