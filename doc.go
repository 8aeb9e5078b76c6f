// Package docmark turns documentation comment text into hyperlinked HTML.
//
// # Quick Start
//
// Create a processor with a lookup into your documentation model, then
// process text:
//
//	proc, err := docmark.New(
//	    docmark.WithLookup(project.Lookup),
//	    docmark.WithPackage("pl"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	html, err := proc.Process("Opens a file, see @{io.read}.", docmark.Item{
//	    SourceName: "init.lua",
//	})
//
// # Reference Tags
//
//   - @{name} links to name, labelled with the reference label
//   - @{name|label} uses an explicit label
//   - @{\name} is written out literally as @{name}
//   - @{prefix:rest} goes to a custom resolver registered for prefix
//
// Unresolved tags become "???" and a warning goes to the item's ErrorSink,
// or to the session logger when the item has none. Lookups retry with the
// package prefix and then with the prefix set by an "@lookup mod" line.
//
// # Processing Pipeline
//
// Module and file text goes through these stages:
//
//  1. Sectionizing (Sectionize): heading lines at the document's depth
//     receive anchors
//  2. Preprocessing: @lookup directives, fenced and indented code
//     highlighting, anchors, reference tags
//  3. Markdown rendering with the selected backend (goldmark, blackfriday
//     or the built-in minimal renderer)
//  4. Removal of one redundant outer paragraph
//
// Item text skips steps 1 and 2 apart from reference resolution.
//
// # Formats
//
// WithFormat picks the rendering path. "plain" and "backtick" never use a
// backend. Any other name selects a backend; when it cannot be constructed
// the first available backend in registry order is used instead and the
// substitution is logged.
//
// # Concurrency
//
// A Processor is immutable after New. Each Process call builds its own
// lookup state, so one Processor can serve many goroutines.
package docmark
