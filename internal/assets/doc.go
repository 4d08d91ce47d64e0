// Package assets picks the visual assets for a resolved entity.
//
// Backdrop and poster are selected independently: an image tagged with the
// target language wins, then a language-neutral image, then the best-voted
// image of any language. No similarity logic lives here, but the resolver's
// no-image invariant depends on this package's result: an entity with
// neither asset is discarded upstream.
package assets
