package requests

// HostEvent is the envelope the host runtime delivers for each appointment
// lifecycle event.
type HostEvent struct {
	Type    string                 `json:"type" validate:"required"`
	Target  HostEventTarget        `json:"target"`
	Context map[string]interface{} `json:"context"`
}

// HostEventTarget identifies the appointment the event refers to. Instance
// carries the resolved appointment object graph when the host includes it;
// its shape is loosely typed and read through the rawview accessors only.
type HostEventTarget struct {
	ID           string                 `json:"id" validate:"required"`
	ResourceType string                 `json:"resourceType,omitempty"`
	Instance     map[string]interface{} `json:"instance,omitempty"`
}
