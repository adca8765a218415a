package window

import "peridot-shell/internal/wm"

const (
	ProductName      = "PeridotVault"
	LoginTitle       = ProductName + " – Login"
	MainTitle        = ProductName
	DefaultGameTitle = ProductName + " – Game"

	LoginDocument = "login.html"
	MainDocument  = "index.html"
)

// Preset is the fixed creation profile of a surface kind.
type Preset struct {
	Geometry wm.Geometry
	Title    string
	// Document is the bundled document; empty for the game kind.
	Document string
}

var (
	loginGeometry = wm.Geometry{
		Width:       900,
		Height:      500,
		MinWidth:    900,
		MinHeight:   500,
		Resizable:   false,
		Decorations: false,
		Centered:    true,
	}

	mainGeometry = wm.Geometry{
		Width:       1280,
		Height:      800,
		MinWidth:    1100,
		MinHeight:   600,
		Resizable:   true,
		Decorations: false,
		Centered:    true,
	}

	presets = map[Kind]Preset{
		KindLogin: {Geometry: loginGeometry, Title: LoginTitle, Document: LoginDocument},
		KindMain:  {Geometry: mainGeometry, Title: MainTitle, Document: MainDocument},
		// Game windows share the main geometry.
		KindGame: {Geometry: mainGeometry, Title: DefaultGameTitle},
	}
)

// PresetFor returns the preset of k. Unknown kinds get the game preset.
func PresetFor(k Kind) Preset {
	if p, ok := presets[k]; ok {
		return p
	}
	return presets[KindGame]
}
