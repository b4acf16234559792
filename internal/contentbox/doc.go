// Package contentbox finds the content box of a scanned page: the rectangle
// holding the printed matter, without binding shadows, page-edge noise or
// margins.
//
// # Pipeline
//
// Find runs these stages on one goroutine, checking the context between
// every stage and on every iteration of its loops:
//
//  1. Normalize: render the source at the canonical density (150 DPI by
//     default) through the caller's transform. Areas uncovered by rotation
//     are filled black so that shadows at the page edge stay distinguishable.
//  2. Binarize at the caller's reference threshold.
//  3. Detect shadows with directional openings and a seed fill, then drop
//     false positives such as dark table headers. Content = binarized image
//     minus shadows.
//  4. Binarize again at a lighter threshold (restricted to the content mask)
//     so that shadow gradients and pencil strokes can be told apart from
//     genuinely dark content.
//  5. Converge: alternately trim the box left/right and top/bottom. Each trim
//     splits a projection histogram into spans and walks inward from both
//     ends, keeping the first span whose connected components look like real
//     content.
//  6. Map the box back to the caller's coordinate space.
//
// # Results
//
// Find distinguishes three outcomes: a box, an empty result (the page has no
// detectable content, reported with Result.Empty) and cancellation (an error
// matching ErrCancelled). Callers should retry cancelled work and treat
// empty pages as final.
//
// # Diagnostics
//
// A DebugSink attached with WithDebugSink receives named intermediate images.
// Images are only rendered when a sink is attached and never influence the
// result.
package contentbox
