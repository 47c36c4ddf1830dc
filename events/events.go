package events

// EventHandler is the interface of the call back function for receiving events.
type EventHandler func(Event)

// Event is used to type restrict the Events
type Event interface {
	isEvent()
}

// Trace is useful to see some details of what's going on
type Trace struct {
	ID      string
	Message string
	event
}

// TokenSet indicates a token was registered with the store.
type TokenSet struct {
	Name  string
	Value string
	event
}

// TemplateLoaded indicates a template was read from disk.
type TemplateLoaded struct {
	ID     string
	Source string
	Size   int
	event
}

// TemplateRendered indicates a template rendered with every placeholder
// resolved.
type TemplateRendered struct {
	ID   string
	Dest string
	event
}

// RenderFailed indicates a template could not be rendered.
type RenderFailed struct {
	ID    string
	Error error
	event
}

// ArtifactWritten indicates an artifact was written to its destination.
type ArtifactWritten struct {
	Path string
	Size int
	event
}

// ArtifactUnchanged indicates the destination already held the rendered
// contents, so nothing was written.
type ArtifactUnchanged struct {
	Path string
	event
}

// Event interface type fulfillment
type event struct{}

func (event) isEvent() {}

// Emit calls h with e if h is not nil.
func (h EventHandler) Emit(e Event) {
	if h != nil {
		h(e)
	}
}
