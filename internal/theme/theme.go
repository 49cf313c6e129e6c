package theme

import (
	"image/color"
)

// Theme defines the colours of the editor window and the selection overlay.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window area outside the canvas
	Foreground color.RGBA // Status and message text

	// Toolbar
	ToolbarBackground     color.RGBA
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonText            color.RGBA
	ButtonBorder          color.RGBA

	// Status bar and toast
	StatusBackground  color.RGBA
	MessageBackground color.RGBA

	// Canvas
	CanvasBackdrop color.RGBA // Shown where the background image is transparent
	Selection      color.RGBA // Stroke of the selected shape
	HandleFill     color.RGBA
	HandleBorder   color.RGBA
	Caret          color.RGBA
}

// Default returns the built-in light theme.
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{220, 220, 220, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		ToolbarBackground:     color.RGBA{220, 220, 220, 255},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover: color.RGBA{180, 180, 180, 255},
		ButtonBackgroundPress: color.RGBA{150, 150, 150, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonBorder:          color.RGBA{0, 0, 0, 255},
		StatusBackground:      color.RGBA{220, 220, 220, 255},
		MessageBackground:     color.RGBA{255, 255, 255, 230},
		CanvasBackdrop:        color.RGBA{255, 255, 255, 255},
		Selection:             color.RGBA{0, 255, 255, 255},
		HandleFill:            color.RGBA{255, 255, 255, 255},
		HandleBorder:          color.RGBA{0, 0, 0, 255},
		Caret:                 color.RGBA{0, 0, 0, 255},
	}
}
