package window

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWindow is the implementation of the Window interface.
type glfwWindow struct {
	window *glfw.Window

	title         string
	width, height int
	resizable     bool

	onResize func(width, height int)
}

// Window owns the GLFW surface and GL context. Creating a window makes its
// context current on the calling goroutine, which is locked to its OS thread
// for the window's lifetime (a GL context requirement).
type Window interface {
	// Title returns the window title.
	Title() string

	// Size returns the current framebuffer size in pixels.
	//
	// Returns:
	//   - width, height: the framebuffer dimensions
	Size() (width, height int)

	// SetResizeCallback registers the function called when the framebuffer
	// size changes.
	//
	// Parameters:
	//   - callback: receives the new framebuffer width and height
	SetResizeCallback(callback func(width, height int))

	// ShouldClose reports whether the user has requested the window close.
	ShouldClose() bool

	// Poll processes pending window events. Call once per frame.
	Poll()

	// Swap presents the rendered frame. Call at the end of each frame.
	Swap()

	// Destroy tears down the window and terminates GLFW.
	Destroy()
}

var _ Window = &glfwWindow{}

// NewWindow creates the GLFW window with an OpenGL 4.1 core context and
// makes that context current.
//
// Parameters:
//   - options: variadic WindowBuilderOption functions
//
// Returns:
//   - Window: the created window
//   - error: an error if GLFW init or window creation fails
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	runtime.LockOSThread()

	w := &glfwWindow{
		title:  "prism",
		width:  1280,
		height: 720,
	}
	for _, opt := range options {
		opt(w)
	}

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("window: failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if w.resizable {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.False)
	}

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("window: failed to create GLFW window: %w", err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	w.window = win
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width = width
		w.height = height
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})
	return w, nil
}

func (w *glfwWindow) Title() string { return w.title }

func (w *glfwWindow) Size() (int, int) {
	return w.window.GetFramebufferSize()
}

func (w *glfwWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *glfwWindow) ShouldClose() bool {
	return w.window.ShouldClose()
}

func (w *glfwWindow) Poll() {
	glfw.PollEvents()
}

func (w *glfwWindow) Swap() {
	w.window.SwapBuffers()
}

func (w *glfwWindow) Destroy() {
	w.window.Destroy()
	glfw.Terminate()
}
