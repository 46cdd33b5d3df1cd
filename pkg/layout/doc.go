// Package layout computes printable image sizes and assigns images to pages.
//
// This is the core of picbook. It has two halves:
//
//   - ResolveSize converts raw pixel dimensions into a printable size in
//     inches, applying the user's scaling factor and clamping to the usable
//     page area while preserving aspect ratio exactly.
//
//   - Pack assigns an ordered sequence of placed images to pages with a
//     single-pass greedy vertical packer: a page accepts images until the
//     next one would overflow its usable height, then a new page starts.
//
// Both halves are pure functions over in-memory data. The packer never
// reorders or looks ahead, so it can leave slack on a page that a later
// image would have filled. That is a deliberate trade-off for one-pass,
// deterministic O(n) behavior.
package layout
