package entity

import "time"

// GeoRecord holds the location attributes the external lookup service
// returns for an address. The upstream is untrusted: every field is
// optional and empty fields are omitted from display.
type GeoRecord struct {
	IP       string `json:"ip,omitempty"`
	Hostname string `json:"hostname,omitempty"`
	City     string `json:"city,omitempty"`
	Region   string `json:"region,omitempty"`
	Country  string `json:"country,omitempty"`
	Loc      string `json:"loc,omitempty"` // "lat,lng" coordinate pair as reported upstream.
	Org      string `json:"org,omitempty"`
	Postal   string `json:"postal,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// HistoryEntry is a compact, persisted summary of one successful lookup.
type HistoryEntry struct {
	IP        string    `json:"ip"`
	City      string    `json:"city"`
	Region    string    `json:"region"`
	Country   string    `json:"country"`
	Timestamp time.Time `json:"timestamp"`
}
