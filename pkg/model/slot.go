package model

// CandidateSlot is a fixed-duration appointment window generated from a
// rule's open hours. Start and end are wall-clock HH:MM strings; two slots
// are the same slot when their starts match, regardless of end.
type CandidateSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// TimeSlot is the engine's output unit: a candidate slot annotated with
// whether capacity remains, tagged with the IANA zone its wall-clock times
// were authored in so the boundary layer can convert for display.
type TimeSlot struct {
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	Available      bool   `json:"available"`
	SourceTimezone string `json:"source_timezone"`
}
