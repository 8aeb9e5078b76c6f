// Package assets supplies the stylesheets and page templates that wrap
// generated documentation pages.
//
// Built-in assets are embedded in the binary. A project may point at an
// asset directory to add or override them:
//
//	{assetPath}/
//	├── styles/{name}.css
//	└── templates/{name}.html   # html/template: .Title .Heading .Body .Updated
//
// Names are bare identifiers. Anything with a separator or a dot is
// rejected, and files reached through symlinks must stay inside the
// asset directory.
package assets
