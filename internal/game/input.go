package game

import "github.com/go-gl/glfw/v3.3/glfw"

// Input translates glfw key state into the simulation's input frames and
// edge events. Steering exclusivity lives here, not in the kinematics:
// pressing one steer key releases the other, and the most recent press wins
// while both are held.
type Input struct {
	prevKeys  map[glfw.Key]bool
	lastSteer glfw.Key // KeyA or KeyD, whichever was pressed most recently
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

// Frame samples the steering and speed keys into an InputFrame.
func (in *Input) Frame(window *glfw.Window) InputFrame {
	left := window.GetKey(glfw.KeyA) == glfw.Press || window.GetKey(glfw.KeyLeft) == glfw.Press
	right := window.GetKey(glfw.KeyD) == glfw.Press || window.GetKey(glfw.KeyRight) == glfw.Press

	if left && !right {
		in.lastSteer = glfw.KeyA
	} else if right && !left {
		in.lastSteer = glfw.KeyD
	}
	if left && right {
		// Latest press wins; the earlier key is treated as released.
		left = in.lastSteer == glfw.KeyA
		right = in.lastSteer == glfw.KeyD
	}

	return InputFrame{
		SteerLeft:  left,
		SteerRight: right,
		Accelerate: window.GetKey(glfw.KeyW) == glfw.Press || window.GetKey(glfw.KeyUp) == glfw.Press,
		Brake:      window.GetKey(glfw.KeyS) == glfw.Press || window.GetKey(glfw.KeyDown) == glfw.Press,
	}
}

// AnswerKey returns the 0-based choice index for a just-pressed answer key,
// or -1.
func (in *Input) AnswerKey(window *glfw.Window) int {
	keys := [4]glfw.Key{glfw.Key1, glfw.Key2, glfw.Key3, glfw.Key4}
	for i, k := range keys {
		if in.JustPressed(window, k) {
			return i
		}
	}
	return -1
}
