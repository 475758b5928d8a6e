// Package assets provides the CSS styles and HTML templates used for
// diagram rendering and PDF export.
//
// # Loaders
//
// Three Loader implementations cover the lookup paths:
//
//	EmbeddedLoader    - the compiled-in print stylesheet and diagram template
//	FilesystemLoader  - a custom asset directory on disk
//	AssetResolver     - custom directory first, embedded fallback
//
// The render service uses an AssetResolver, so a deployment can override
// the print stylesheet or the diagram page shell by dropping replacement
// files into its asset directory while keeping the built-ins for
// everything else.
//
// # Directory Structure
//
// Custom directories mirror the embedded layout:
//
//	{basePath}/
//	├── styles/
//	│   └── print.css        # injected before PDF export
//	└── templates/
//	    └── diagram.html     # standalone page each diagram renders in
//
// # Lookup Safety
//
// Asset names must be bare file names; ValidateAssetName rejects
// separators and dots, and FilesystemLoader additionally resolves
// symlinks and confirms every read stays under its base path.
package assets
