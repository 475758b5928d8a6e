package assets

import (
	"errors"
)

// AssetResolver answers asset lookups from a custom directory first and
// the compiled-in set second. The render service holds one per run: a
// deployment can restyle the PDF or reshape the diagram page by
// dropping files into its asset directory without rebuilding, while
// anything it does not override keeps the built-in behavior.
type AssetResolver struct {
	custom   Loader // nil when no asset directory is configured
	embedded Loader
}

var _ Loader = (*AssetResolver)(nil)

// NewAssetResolver builds a resolver. An empty customBasePath serves
// embedded assets only; otherwise the directory must exist and be
// readable, checked here so a bad path fails at service construction
// rather than mid-render.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadStyle resolves a stylesheet, custom directory first.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.resolve(func(loader Loader) (string, error) {
		return loader.LoadStyle(name)
	})
}

// LoadTemplate resolves a page template, custom directory first.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.resolve(func(loader Loader) (string, error) {
		return loader.LoadTemplate(name)
	})
}

// resolve tries the custom loader and falls back to the embedded set,
// but only for a missing asset. A validation or read error from the
// custom directory surfaces as-is: masking an unreadable override with
// the built-in asset would silently print the wrong styles.
func (r *AssetResolver) resolve(load func(Loader) (string, error)) (string, error) {
	if r.custom == nil {
		return load(r.embedded)
	}

	content, err := load(r.custom)
	if err == nil {
		return content, nil
	}

	if !errors.Is(err, ErrStyleNotFound) && !errors.Is(err, ErrTemplateNotFound) {
		return "", err
	}

	return load(r.embedded)
}

// HasCustomLoader reports whether an asset directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}
