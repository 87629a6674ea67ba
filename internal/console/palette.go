package console

import "github.com/fatih/color"

type palette struct {
	Info, Warn, Good, Bad, Header, Wall, Room, Dim *color.Color
	tokens                                        []*color.Color
}

var tokenColors = map[string]color.Attribute{
	"Red":    color.FgRed,
	"Blue":   color.FgBlue,
	"Yellow": color.FgYellow,
	"Green":  color.FgGreen,
}

// fallbackColors are handed out to seats whose names are not colours.
var fallbackColors = []color.Attribute{color.FgMagenta, color.FgCyan, color.FgHiRed, color.FgHiBlue}

func newPalette(players []string, noColor bool) palette {
	p := palette{
		Info:   color.New(color.FgCyan),
		Warn:   color.New(color.FgHiYellow),
		Good:   color.New(color.FgGreen),
		Bad:    color.New(color.FgRed),
		Header: color.New(color.FgWhite, color.Bold),
		Wall:   color.New(color.FgHiBlack),
		Room:   color.New(color.FgHiMagenta, color.Bold),
		Dim:    color.New(color.FgHiBlack),
	}
	for i, name := range players {
		attr, ok := tokenColors[name]
		if !ok {
			attr = fallbackColors[i%len(fallbackColors)]
		}
		p.tokens = append(p.tokens, color.New(attr, color.Bold))
	}

	if noColor {
		for _, c := range append([]*color.Color{p.Info, p.Warn, p.Good, p.Bad, p.Header, p.Wall, p.Room, p.Dim}, p.tokens...) {
			c.DisableColor()
		}
	}
	return p
}

// token returns the colour for seat i.
func (p palette) token(i int) *color.Color {
	return p.tokens[i%len(p.tokens)]
}
