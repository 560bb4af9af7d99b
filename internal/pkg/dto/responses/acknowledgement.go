package responses

// Acknowledgement is the effect returned to the host after an event is
// processed. It carries a fixed narrative and the originating note id, and is
// returned regardless of webhook delivery outcome.
type Acknowledgement struct {
	Note NoteReference     `json:"note"`
	Data AcknowledgeDetail `json:"data"`
}

type NoteReference struct {
	UUID string `json:"uuid"`
}

type AcknowledgeDetail struct {
	Narrative string `json:"narrative"`
}
