package pagination

// View is the capability a session drives. Implementations own their view
// state; the session engine never inspects it.
type View interface {
	// Render returns the message text for the current view state.
	Render() string
	// Apply performs the control action bound to an emoji and reports
	// whether it changed the view state. Unrecognized emoji must return
	// false.
	Apply(emoji string) bool
	// Controls returns the control emoji in the order they are installed
	// on the anchor message.
	Controls() []string
}
