package render

import (
	"fmt"
	"sync"

	"codeberg.org/go-fonts/liberation/liberationsansbold"
	"codeberg.org/go-fonts/liberation/liberationsansregular"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// Liberation Sans ships embedded so renders never depend on system fonts.
// Parsing is cached; faces are cheap and sized per render call.
var (
	parseFontsOnce sync.Once
	sansRegular    *opentype.Font
	sansBold       *opentype.Font
	parseFontsErr  error
)

func newFace(bold bool, size float64) (font.Face, error) {
	parseFontsOnce.Do(func() {
		sansRegular, parseFontsErr = opentype.Parse(liberationsansregular.TTF)
		if parseFontsErr != nil {
			parseFontsErr = fmt.Errorf("failed to parse regular font: %w", parseFontsErr)
			return
		}
		sansBold, parseFontsErr = opentype.Parse(liberationsansbold.TTF)
		if parseFontsErr != nil {
			parseFontsErr = fmt.Errorf("failed to parse bold font: %w", parseFontsErr)
		}
	})
	if parseFontsErr != nil {
		return nil, parseFontsErr
	}

	src := sansRegular
	if bold {
		src = sansBold
	}

	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}
