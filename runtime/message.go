package runtime

import "github.com/anathema-go/anathema/widget"

// Message is dispatched to one component, addressed by the ComponentNode
// widget id it targets. Payload is opaque to the runtime; the receiving
// Component type-asserts it.
type Message struct {
	Target  widget.ID
	Payload interface{}
}
