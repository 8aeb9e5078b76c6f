// Package pipeline implements the text stages around a Markdown backend.
//
// Before rendering:
//   - Multiline preprocessing (@lookup directives, fenced and indented code,
//     section anchors, inline references)
//   - Line ending normalization and plain-text paragraph breaks
//
// After rendering:
//   - Redundant outer paragraph removal
//   - Link base rewriting
//   - Standalone page assembly with stylesheet injection
//
// Rendering itself is handled by the render package. This separation keeps
// the pipeline focused on documentation markup while backends own Markdown.
package pipeline
