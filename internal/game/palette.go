package game

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Mul(k uint8) RGB {
	return RGB{
		R: uint8((uint16(c.R) * uint16(k)) / 255),
		G: uint8((uint16(c.G) * uint16(k)) / 255),
		B: uint8((uint16(c.B) * uint16(k)) / 255),
	}
}

func (c RGB) Add(dr, dg, db int) RGB {
	r := int(c.R) + dr
	g := int(c.G) + dg
	b := int(c.B) + db
	if r < 0 {
		r = 0
	} else if r > 255 {
		r = 255
	}
	if g < 0 {
		g = 0
	} else if g > 255 {
		g = 255
	}
	if b < 0 {
		b = 0
	} else if b > 255 {
		b = 255
	}
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
}

var Palette = struct {
	Background  RGB
	Road        RGB
	RoadEdge    RGB
	LaneDash    RGB
	Text        RGB
	Highlight   RGB
	PlayerBody  RGB
	CarBody     RGB
	TruckBody   RGB
	BusBody     RGB
	NitroOrb    RGB
	ShieldOrb   RGB
	NitroFlame  RGB
	Spark       RGB
	MeterFrame  RGB
	MeterFill   RGB
	DialFace    RGB
	DialInner   RGB
	DialTick    RGB
	Needle      RGB
	PopupText   RGB
	GameOverBg  RGB
	WreckPulse  RGB
	ShadowBlack RGB
}{
	Background:  RGB{R: 18, G: 18, B: 26},
	Road:        RGB{R: 40, G: 40, B: 48},
	RoadEdge:    RGB{R: 60, G: 60, B: 70},
	LaneDash:    RGB{R: 200, G: 200, B: 200},
	Text:        RGB{R: 240, G: 240, B: 240},
	Highlight:   RGB{R: 255, G: 220, B: 60},
	PlayerBody:  RGB{R: 50, G: 200, B: 50},
	CarBody:     RGB{R: 200, G: 50, B: 50},
	TruckBody:   RGB{R: 170, G: 120, B: 60},
	BusBody:     RGB{R: 210, G: 160, B: 50},
	NitroOrb:    RGB{R: 50, G: 200, B: 250},
	ShieldOrb:   RGB{R: 250, G: 200, B: 50},
	NitroFlame:  RGB{R: 255, G: 180, B: 40},
	Spark:       RGB{R: 255, G: 200, B: 60},
	MeterFrame:  RGB{R: 40, G: 40, B: 40},
	MeterFill:   RGB{R: 255, G: 120, B: 20},
	DialFace:    RGB{R: 24, G: 24, B: 24},
	DialInner:   RGB{R: 12, G: 12, B: 12},
	DialTick:    RGB{R: 80, G: 80, B: 80},
	Needle:      RGB{R: 255, G: 80, B: 40},
	PopupText:   RGB{R: 255, G: 220, B: 60},
	GameOverBg:  RGB{R: 12, G: 12, B: 18},
	WreckPulse:  RGB{R: 200, G: 40, B: 40},
	ShadowBlack: RGB{R: 0, G: 0, B: 0},
}
