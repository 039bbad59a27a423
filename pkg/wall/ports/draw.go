package ports

import "github.com/matzehuels/ledwall/pkg/wall"

// Palette is the cycle of port colours. Port i uses Palette[i%len(Palette)].
var Palette = []string{
	"#3b82f6", // blue
	"#10b981", // emerald
	"#f59e0b", // amber
	"#ef4444", // red
	"#a855f7", // purple
	"#06b6d4", // cyan
	"#ec4899", // pink
	"#84cc16", // lime
	"#fbbf24", // yellow
	"#059669", // green
}

// Color returns the palette colour for a port index.
func Color(index int) string {
	n := len(Palette)
	return Palette[(index%n+n)%n]
}

// Roles returns the rendering role of every panel in port, in cable order.
// The first panel is the start, the last the end; a single-panel port is a
// start.
func Roles(port wall.Port) []wall.Role {
	roles := make([]wall.Role, len(port.Panels))
	for i := range port.Panels {
		roles[i] = RoleAt(port, i)
	}
	return roles
}

// RoleAt returns the role of the i-th panel of port.
func RoleAt(port wall.Port, i int) wall.Role {
	switch {
	case i == 0:
		return wall.RoleStart
	case i == len(port.Panels)-1:
		return wall.RoleEnd
	default:
		return wall.RoleIntermediate
	}
}

// Link is one cable segment between two consecutive panels of a port.
type Link struct {
	Port int
	From wall.PanelVisit
	To   wall.PanelVisit
}

// Links returns the cable segments of port in draw order. Links never cross
// a port boundary.
func Links(port wall.Port) []Link {
	if len(port.Panels) < 2 {
		return nil
	}
	links := make([]Link, 0, len(port.Panels)-1)
	for i := 0; i+1 < len(port.Panels); i++ {
		links = append(links, Link{Port: port.Index, From: port.Panels[i], To: port.Panels[i+1]})
	}
	return links
}

// AllLinks returns the links of every port, port by port.
func AllLinks(ports []wall.Port) []Link {
	var links []Link
	for _, p := range ports {
		links = append(links, Links(p)...)
	}
	return links
}
