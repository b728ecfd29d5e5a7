package param

import (
	"fmt"
	"strconv"
	"strings"
)

// Parameter IDs as registered with the host.
const (
	BypassID     uint32 = 100
	LeftDelayID  uint32 = 200
	RightDelayID uint32 = 400
	MixID        uint32 = 600
)

// Flags for parameters.
const (
	CanAutomate uint32 = 1 << 0
	IsBypass    uint32 = 1 << 16
)

// Info describes one parameter to the host.
type Info struct {
	ID           uint32
	Name         string
	Unit         string
	StepCount    int32
	DefaultValue float64
	Flags        uint32
}

var infos = [...]Info{
	{ID: BypassID, Name: "Bypass", StepCount: 1, DefaultValue: 0, Flags: CanAutomate | IsBypass},
	{ID: LeftDelayID, Name: "Left Delay", Unit: "sec", DefaultValue: 0.2, Flags: CanAutomate},
	{ID: RightDelayID, Name: "Right Delay", Unit: "sec", DefaultValue: 0.2, Flags: CanAutomate},
	{ID: MixID, Name: "Mix", Unit: "%", DefaultValue: 1, Flags: CanAutomate},
}

// Infos returns the parameter list in registration order.
func Infos() []Info {
	out := make([]Info, len(infos))
	copy(out, infos[:])
	return out
}

// Lookup returns the Info for id.
func Lookup(id uint32) (Info, bool) {
	for _, info := range infos {
		if info.ID == id {
			return info, true
		}
	}
	return Info{}, false
}

// Format renders a normalized value for display.
func Format(id uint32, normalized float64) (string, error) {
	switch id {
	case BypassID:
		if normalized > 0.5 {
			return "On", nil
		}
		return "Off", nil
	case LeftDelayID, RightDelayID:
		return fmt.Sprintf("%.3f sec", normalized), nil
	case MixID:
		return fmt.Sprintf("%.0f %%", normalized*100), nil
	}
	return "", fmt.Errorf("param: unknown parameter id %d", id)
}

// Parse converts a display string back into a normalized value.
func Parse(id uint32, str string) (float64, error) {
	str = strings.TrimSpace(str)
	switch id {
	case BypassID:
		switch strings.ToLower(str) {
		case "on", "1", "true":
			return 1, nil
		case "off", "0", "false":
			return 0, nil
		}
		return 0, fmt.Errorf("param: invalid bypass value %q", str)
	case LeftDelayID, RightDelayID:
		str = strings.TrimSpace(strings.TrimSuffix(str, "sec"))
		v, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return 0, fmt.Errorf("param: invalid delay value %q: %w", str, err)
		}
		return normalize(v), nil
	case MixID:
		str = strings.TrimSpace(strings.TrimSuffix(str, "%"))
		v, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return 0, fmt.Errorf("param: invalid mix value %q: %w", str, err)
		}
		return normalize(v / 100), nil
	}
	return 0, fmt.Errorf("param: unknown parameter id %d", id)
}

func normalize(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
