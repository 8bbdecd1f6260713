package domain

const (
	SeatFree   = 0
	SeatBooked = 1
)

// Train is a scheduled train with its route and seat grid.
type Train struct {
	ID           string            `json:"train_id"`
	Number       string            `json:"train_no"`
	Seats        [][]int           `json:"seats"`
	StationTimes map[string]string `json:"station_times"`
	Stations     []string          `json:"stations"`
}

// Info returns a one-line description of the train.
func (t Train) Info() string {
	return "Train ID: " + t.ID + " Train No: " + t.Number
}

// Clone returns a deep copy so callers cannot mutate directory state.
func (t Train) Clone() Train {
	c := t
	if t.Seats != nil {
		c.Seats = CloneSeats(t.Seats)
	}
	if t.StationTimes != nil {
		c.StationTimes = make(map[string]string, len(t.StationTimes))
		for k, v := range t.StationTimes {
			c.StationTimes[k] = v
		}
	}
	if t.Stations != nil {
		c.Stations = append([]string(nil), t.Stations...)
	}
	return c
}

// CloneSeats deep-copies a seat grid.
func CloneSeats(seats [][]int) [][]int {
	out := make([][]int, len(seats))
	for i, row := range seats {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// TrainStore persists the train collection.
type TrainStore = RecordStore[Train]
