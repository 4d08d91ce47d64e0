package assets

import (
	"sort"
	"strings"

	"mediaresolve/internal/catalog"
	"mediaresolve/internal/langutil"
)

// Selection holds the chosen asset paths. Either field may be empty when the
// catalog has nothing of that kind.
type Selection struct {
	BackdropPath string
	PosterPath   string
}

// Empty reports whether neither asset kind was available.
func (s Selection) Empty() bool {
	return s.BackdropPath == "" && s.PosterPath == ""
}

// Select picks a backdrop and a poster from the catalog's image set,
// preferring the target language, then language-neutral images, then the
// best-voted image of any language.
func Select(images *catalog.ImageSet, targetLanguage string) Selection {
	if images == nil {
		return Selection{}
	}
	return Selection{
		BackdropPath: pick(images.Backdrops, targetLanguage),
		PosterPath:   pick(images.Posters, targetLanguage),
	}
}

func pick(images []catalog.Image, targetLanguage string) string {
	if len(images) == 0 {
		return ""
	}

	// Re-sort by vote average; the catalog's own ordering mixes in a
	// quality score that is not stable across requests.
	sorted := make([]catalog.Image, len(images))
	copy(sorted, images)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].VoteAverage > sorted[b].VoteAverage
	})

	var neutral, any string
	for _, image := range sorted {
		if image.FilePath == "" {
			continue
		}
		code := strings.TrimSpace(image.LanguageCode)
		switch {
		case code != "" && langutil.Match(code, targetLanguage):
			return image.FilePath
		case code == "" && neutral == "":
			neutral = image.FilePath
		case any == "":
			any = image.FilePath
		}
	}
	if neutral != "" {
		return neutral
	}
	return any
}
