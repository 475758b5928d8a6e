package assets

import "errors"

// Sentinel errors for asset loading. Not-found errors are the only
// class the resolver falls back on; everything else surfaces.
var (
	// ErrStyleNotFound reports a stylesheet name with no backing file.
	ErrStyleNotFound = errors.New("style not found")

	// ErrTemplateNotFound reports a template name with no backing file.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInvalidAssetName reports a name that is not a bare file name.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath reports a custom asset directory that does not
	// exist or cannot be read.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead reports an I/O failure on an existing asset file.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrPathTraversal reports a lookup resolving outside the asset
	// directory.
	ErrPathTraversal = errors.New("path traversal detected")
)
