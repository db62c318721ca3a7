package model

// CommandRequest is a command-bar submission from the dashboard.
type CommandRequest struct {
	Text      string `json:"text" binding:"required"`
	ActiveTab Tab    `json:"active_tab,omitempty"`
}

// CommandResponse carries the classified command and its execution outcome.
type CommandResponse struct {
	Command *ClassifiedCommand `json:"command"`
	Result  *CommandResult     `json:"result"`
	Took    int64              `json:"took_ms"`
}

// LookupRequest asks for public data on a single address, typically as a
// preview before the user confirms property creation.
type LookupRequest struct {
	Address string `json:"address" binding:"required"`
}

// PropertyListResponse is a page of property records.
type PropertyListResponse struct {
	Properties []Property `json:"properties"`
	Total      int        `json:"total"`
	Took       int64      `json:"took_ms"`
}
