package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/sakura-forest/internal/engine/input"
)

// wheelScale converts SDL wheel notches into pixel-style scroll deltas.
const wheelScale = 100

// PollEvents drains the SDL queue into inbox.
// Returns true once the user asked to quit.
func (w *Window) PollEvents(inbox *input.Inbox) bool {
	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		ev, ok := translate(event)
		if !ok {
			continue
		}
		if ev.Type == input.EventQuit || (ev.Type == input.EventKeyDown && ev.Key == input.KeyEscape) {
			quit = true
		}
		inbox.Push(ev)
	}
	return quit
}

func translate(event sdl.Event) (input.Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return input.Event{Type: input.EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return input.Event{
				Type:   input.EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			}, true
		}

	case *sdl.KeyboardEvent:
		if e.Repeat != 0 {
			return input.Event{}, false
		}
		key := keyFor(e.Keysym.Scancode)
		if key == input.KeyUnknown {
			return input.Event{}, false
		}
		typ := input.EventKeyUp
		if e.Type == sdl.KEYDOWN {
			typ = input.EventKeyDown
		}
		return input.Event{Type: typ, Key: key}, true

	case *sdl.MouseMotionEvent:
		return input.Event{
			Type: input.EventPointerMove,
			X:    float32(e.X),
			Y:    float32(e.Y),
		}, true

	case *sdl.MouseButtonEvent:
		typ := input.EventPointerUp
		if e.Type == sdl.MOUSEBUTTONDOWN {
			typ = input.EventPointerDown
		}
		return input.Event{
			Type:   typ,
			Button: buttonFor(e.Button),
			X:      float32(e.X),
			Y:      float32(e.Y),
		}, true

	case *sdl.MouseWheelEvent:
		dy := float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			dy = -dy
		}
		// Scrolling toward the user zooms out.
		return input.Event{Type: input.EventWheel, Wheel: -dy * wheelScale}, true
	}
	return input.Event{}, false
}

func keyFor(sc sdl.Scancode) input.Key {
	switch sc {
	case sdl.SCANCODE_W, sdl.SCANCODE_UP:
		return input.KeyForward
	case sdl.SCANCODE_S, sdl.SCANCODE_DOWN:
		return input.KeyBackward
	case sdl.SCANCODE_A, sdl.SCANCODE_LEFT:
		return input.KeyLeft
	case sdl.SCANCODE_D, sdl.SCANCODE_RIGHT:
		return input.KeyRight
	case sdl.SCANCODE_LSHIFT, sdl.SCANCODE_RSHIFT:
		return input.KeyRun
	case sdl.SCANCODE_ESCAPE:
		return input.KeyEscape
	}
	return input.KeyUnknown
}

func buttonFor(b uint8) input.Button {
	switch b {
	case sdl.BUTTON_LEFT:
		return input.ButtonPrimary
	case sdl.BUTTON_MIDDLE:
		return input.ButtonMiddle
	case sdl.BUTTON_RIGHT:
		return input.ButtonSecondary
	}
	return input.ButtonNone
}
