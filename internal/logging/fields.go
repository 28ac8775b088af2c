package logging

// Standardized structured logging keys.
const (
	FieldComponent  = "component"
	FieldEventType  = "event_type"
	FieldErrorHint  = "error_hint"
	FieldImpact     = "impact"
	FieldSequenceID = "sequence_id"
	FieldTrackGroup = "track_group"
	FieldScanID     = "scan_id"
	FieldPath       = "path"
)
