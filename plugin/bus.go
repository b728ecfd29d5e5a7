package plugin

// Direction of a bus.
type Direction int

// Bus directions.
const (
	Input Direction = iota
	Output
)

// MediaType of a bus.
type MediaType int

// Bus media types.
const (
	Audio MediaType = iota
	Event
)

// BusInfo describes one host-visible bus.
type BusInfo struct {
	Name      string
	Direction Direction
	MediaType MediaType
	Channels  int
}

// Buses returns the fixed stereo-in/stereo-out layout plus an event input.
func Buses() []BusInfo {
	return []BusInfo{
		{Name: "Stereo In", Direction: Input, MediaType: Audio, Channels: 2},
		{Name: "Stereo Out", Direction: Output, MediaType: Audio, Channels: 2},
		{Name: "Event In", Direction: Input, MediaType: Event, Channels: 1},
	}
}

// AudioChannels returns the channel count of the first audio bus in dir.
func AudioChannels(dir Direction) int {
	for _, b := range Buses() {
		if b.Direction == dir && b.MediaType == Audio {
			return b.Channels
		}
	}
	return 0
}
