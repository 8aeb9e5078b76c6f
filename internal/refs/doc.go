// Package refs resolves symbolic cross-references in documentation text.
//
// A reference names a documented entity by a dotted qualified name. The
// Resolver looks names up through a caller-supplied LookupFunc, retrying
// with the session-wide global prefix and the per-document local prefix
// held in a Context value:
//
//	r := refs.NewResolver(project.Lookup)
//	ctx := refs.Context{Global: "mylib."}
//	ref, err := r.Resolve("open", false, ctx)
//
// ResolveText rewrites inline tags in a block of text:
//
//	@{name}          link labelled with the reference's own label
//	@{name|label}    link with an explicit label
//	@{prefix:name}   tried against a registered custom resolver first
//	@{\name}         literal "@{name}", never resolved
//
// Tags that fail to resolve are replaced by a "???" placeholder and
// reported as Diagnostics; the caller decides where they are written.
package refs
