package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{
		prevKeys: make(map[glfw.Key]bool),
	}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// JustPressedAny reports whether any of the keys went down this frame. Every
// key's edge tracker advances even after a hit, so alternate bindings for
// one action cannot re-fire a frame late.
func (in *Input) JustPressedAny(window *glfw.Window, keys ...glfw.Key) bool {
	hit := false
	for _, k := range keys {
		if in.JustPressed(window, k) {
			hit = true
		}
	}
	return hit
}

func keyDown(window *glfw.Window, keys ...glfw.Key) bool {
	for _, k := range keys {
		if window.GetKey(k) == glfw.Press {
			return true
		}
	}
	return false
}

// ReadControls samples the held driving keys. Arrows and WASD are
// interchangeable; throttle and brake may be held together.
func ReadControls(window *glfw.Window) Controls {
	return Controls{
		Throttle: keyDown(window, glfw.KeyUp, glfw.KeyW),
		Brake:    keyDown(window, glfw.KeyDown, glfw.KeyS),
		SteerL:   keyDown(window, glfw.KeyLeft, glfw.KeyA),
		SteerR:   keyDown(window, glfw.KeyRight, glfw.KeyD),
	}
}

// LaneCommand returns -1/+1 on the frame a steer key goes down, 0 otherwise.
// Lane changes trigger on the key edge so holding a key commits one lane at
// a time; the cooldown in BeginLaneChange paces repeats.
func LaneCommand(window *glfw.Window, in *Input) int {
	left := in.JustPressedAny(window, glfw.KeyLeft, glfw.KeyA)
	right := in.JustPressedAny(window, glfw.KeyRight, glfw.KeyD)
	switch {
	case left && !right:
		return -1
	case right && !left:
		return 1
	}
	return 0
}
