package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "hotelcal"
	DefaultKeyringUser = "feed-connection"
	DefaultConfigDir   = "~/.config/hotelcal"
	DefaultSource      = "sample"
	Version            = "v0.3.0"

	// DateFormat is the canonical date-key format (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat is used for month selection on the CLI (YYYY-MM)
	MonthFormat = "2006-01"

	// DisplayDateFormat is the human-readable format used for range labels
	DisplayDateFormat = "2 Jan 2006"

	// Calendar window constants
	WindowDays  = 31
	NavStepDays = 7

	// Sample feed constants
	SampleSeriesDays = 31

	// Room status values as captured by the bulk edit form
	RoomStatusOpen  = "open"
	RoomStatusClose = "close"

	// Sources
	SourceSample  = "sample"
	SourceKeyring = "keyring"
	DefaultFeedDB = "~/.config/hotelcal/feed.db"

	// Feed lookups
	FeedQueryTimeout = 5 * time.Second
)

// Session States
const (
	StateGrid SessionState = iota
	StateRooms
	StateMonth
	StateBulkEdit
	StateRangeEdit
	StateFilter
	StateJumpDate
)

// TabCount is the number of states reachable with tab; they come first.
const TabCount = 3
