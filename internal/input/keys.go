package input

import "strings"

// Key is a frontend-independent key code.
type Key int

const (
	KeyUnknown Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
	KeyEnter
	KeyPlanetMoon
	KeySunPlanet
)

var keyNames = map[string]Key{
	"up":       KeyUp,
	"down":     KeyDown,
	"left":     KeyLeft,
	"right":    KeyRight,
	"pgup":     KeyPageUp,
	"pageup":   KeyPageUp,
	"pgdown":   KeyPageDown,
	"pagedown": KeyPageDown,
	"+":        KeyPageUp,
	"-":        KeyPageDown,
	"enter":    KeyEnter,
	"f":        KeyEnter,
	"p":        KeyPlanetMoon,
	"s":        KeySunPlanet,
}

// ParseKey maps a frontend key name to a Key. Names that mean nothing to
// the sandbox map to KeyUnknown.
func ParseKey(name string) Key {
	if k, ok := keyNames[strings.ToLower(name)]; ok {
		return k
	}
	return KeyUnknown
}

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyPageUp:
		return "pgup"
	case KeyPageDown:
		return "pgdown"
	case KeyEnter:
		return "enter"
	case KeyPlanetMoon:
		return "p"
	case KeySunPlanet:
		return "s"
	}
	return "unknown"
}

// presetKeys are the hot keys that drop a preset at the cursor.
var presetKeys = map[Key]string{
	KeyPlanetMoon: "planet_moon",
	KeySunPlanet:  "sun_planet",
}

type Button int

const (
	ButtonUnknown Button = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)
