package cover

// Preset is a named color offered in the color menu.
type Preset struct {
	Name  string
	Color Color
}

// DefaultPresets returns the built-in menu colors: white, black and four
// soft pastels.
func DefaultPresets() []Preset {
	return []Preset{
		{Name: "White", Color: Color{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{Name: "Black", Color: Color{R: 0x00, G: 0x00, B: 0x00, A: 0xff}},
		{Name: "Pink", Color: Color{R: 0xff, G: 0xb6, B: 0xc1, A: 0xff}},
		{Name: "Light blue", Color: Color{R: 0xad, G: 0xd8, B: 0xe6, A: 0xff}},
		{Name: "Light green", Color: Color{R: 0x90, G: 0xee, B: 0x90, A: 0xff}},
		{Name: "Light orange", Color: Color{R: 0xff, G: 0xda, B: 0xb9, A: 0xff}},
	}
}
