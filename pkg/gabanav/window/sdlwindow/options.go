package sdlwindow

import "github.com/veandco/go-sdl2/sdl"

type Options struct {
	Title             string
	Borderless        bool // Remove window decorations (SDL_WINDOW_BORDERLESS)
	Resizable         bool // Allow window resizing (SDL_WINDOW_RESIZABLE)
	Fullscreen        bool // Fullscreen mode (SDL_WINDOW_FULLSCREEN)
	FullscreenDesktop bool // Fullscreen at desktop resolution (SDL_WINDOW_FULLSCREEN_DESKTOP)
	Hidden            bool // Start hidden (omits SDL_WINDOW_SHOWN)

	// SwitchDevice is the input device carrying the lid and tablet-mode
	// switches. Layout info is only reported when it is set.
	SwitchDevice string
}

func (o Options) flags() uint32 {
	var flags uint32

	if !o.Hidden {
		flags |= sdl.WINDOW_SHOWN
	}
	if o.Resizable {
		flags |= sdl.WINDOW_RESIZABLE
	}
	if o.Borderless {
		flags |= sdl.WINDOW_BORDERLESS
	}
	if o.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}
	if o.FullscreenDesktop {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	return flags
}
