package window

// WindowBuilderOption is a function that configures a window during
// construction.
type WindowBuilderOption func(*glfwWindow)

// WithTitle is an option builder that sets the window title.
//
// Parameters:
//   - title: the window title
//
// Returns:
//   - WindowBuilderOption: a function that applies the title option
func WithTitle(title string) WindowBuilderOption {
	return func(w *glfwWindow) {
		w.title = title
	}
}

// WithSize is an option builder that sets the initial window size. Values
// below 1 keep the defaults.
//
// Parameters:
//   - width: the initial width in screen coordinates
//   - height: the initial height in screen coordinates
//
// Returns:
//   - WindowBuilderOption: a function that applies the size option
func WithSize(width, height int) WindowBuilderOption {
	return func(w *glfwWindow) {
		if width >= 1 && height >= 1 {
			w.width = width
			w.height = height
		}
	}
}

// WithResizable is an option builder that allows the user to resize the
// window.
//
// Returns:
//   - WindowBuilderOption: a function that applies the resizable option
func WithResizable() WindowBuilderOption {
	return func(w *glfwWindow) {
		w.resizable = true
	}
}
