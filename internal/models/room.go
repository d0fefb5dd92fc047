package models

import "fmt"

// Field identifies one of the per-date numeric series of a room type
type Field int

const (
	FieldRoomsToSell Field = iota
	FieldNetBooked
	FieldRates
)

func (f Field) String() string {
	switch f {
	case FieldRoomsToSell:
		return "roomsToSell"
	case FieldNetBooked:
		return "netBooked"
	case FieldRates:
		return "rates"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// ParseField maps the CLI / feed name of a series to a Field.
func ParseField(s string) (Field, error) {
	switch s {
	case "roomsToSell", "rooms-to-sell", "rooms_to_sell", "rooms":
		return FieldRoomsToSell, nil
	case "netBooked", "net-booked", "net_booked", "booked":
		return FieldNetBooked, nil
	case "rates", "rate", "price":
		return FieldRates, nil
	}
	return 0, fmt.Errorf("unknown field %q", s)
}

// Series holds the parallel per-date arrays of a room type.
// Index i of every array refers to the same calendar date: base date + i days.
type Series struct {
	RoomsToSell []int `json:"rooms_to_sell"`
	NetBooked   []int `json:"net_booked"`
	Rates       []int `json:"rates"`
}

// Len returns the common length of the series, or -1 when the arrays are misaligned.
func (s Series) Len() int {
	n := len(s.RoomsToSell)
	if len(s.NetBooked) != n || len(s.Rates) != n {
		return -1
	}
	return n
}

// Get returns the array backing the given field.
func (s Series) Get(f Field) []int {
	switch f {
	case FieldRoomsToSell:
		return s.RoomsToSell
	case FieldNetBooked:
		return s.NetBooked
	case FieldRates:
		return s.Rates
	}
	return nil
}

// With returns a copy of the series whose field array is replaced by values.
func (s Series) With(f Field, values []int) Series {
	switch f {
	case FieldRoomsToSell:
		s.RoomsToSell = values
	case FieldNetBooked:
		s.NetBooked = values
	case FieldRates:
		s.Rates = values
	}
	return s
}

// RoomType is a category of hotel room with its own inventory and rate series
type RoomType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Data Series `json:"data"`
}
