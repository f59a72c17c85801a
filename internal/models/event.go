package models

// ChangeEvent describes a catalog mutation published to the event stream.
type ChangeEvent struct {
	EventID   string `json:"event_id"`  // Unique identifier of the event
	Timestamp int64  `json:"timestamp"` // Unix timestamp (seconds) of the mutation
	Entity    string `json:"entity"`    // Entity kind: "park" or "species"
	EntityID  int64  `json:"entity_id"` // Identifier of the mutated entity
	Action    string `json:"action"`    // One of "created", "updated", "deleted"
}
