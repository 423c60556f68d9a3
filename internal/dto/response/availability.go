package response

// SlotInfo is one slot's availability on a concrete date.
type SlotInfo struct {
	SlotID        string `json:"slot_id"`
	Time          string `json:"time"`
	DayType       string `json:"day_type,omitempty"`
	AllowMultiple bool   `json:"allow_multiple"`
	Available     bool   `json:"available"`
}

// DayAvailability is the full picture for one date: a flat slot list plus the
// same slots bucketed by day type.
type DayAvailability struct {
	Date        string                `json:"date"`
	Day         string                `json:"day"`
	Available   bool                  `json:"available"`
	Message     string                `json:"message,omitempty"`
	Slots       []SlotInfo            `json:"slots"`
	SlotsByType map[string][]SlotInfo `json:"slots_by_type"`
}

// DateSummary carries counts only, for range scans.
type DateSummary struct {
	Date        string `json:"date"`
	Day         string `json:"day"`
	Available   bool   `json:"available"`
	TotalSlots  int    `json:"total_slots"`
	OpenSlots   int    `json:"open_slots"`
	BookedSlots int    `json:"booked_slots"`
}

// NextSlotResponse is the result of the forward search. Found=false means no
// open slot inside the search window.
type NextSlotResponse struct {
	Found   bool   `json:"found"`
	Date    string `json:"date,omitempty"`
	Day     string `json:"day,omitempty"`
	Time    string `json:"time,omitempty"`
	DayType string `json:"day_type,omitempty"`
}

type SlotCheckResponse struct {
	Available     bool   `json:"available"`
	AllowMultiple bool   `json:"allow_multiple"`
	Message       string `json:"message"`
}
