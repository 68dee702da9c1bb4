package colorscheme

// DefaultName is the scheme installed when none is selected.
const DefaultName = "Cornfield"

var cornfield = builtin(DefaultName, 1000, nil, map[Role]string{
	Background:  "#ffffe5",
	Background2: "#ffffe5",
	Axes:        "#000000",
	AxisX:       "#c00000",
	AxisY:       "#00a000",
	AxisZ:       "#0000c0",
	Crosshair:   "#800000",
	FaceFront:   "#f9d72c",
	FaceBack:    "#9dcb51",
	Face2D:      "#00bf99",
	EdgeFront:   "#ff0000",
	EdgeBack:    "#ff0000",
	Edge2D:      "#ff0000",
	Highlight:   "#ff5151",
})

// builtins lists the schemes every Registry starts with.
func builtins() []*Scheme {
	return []*Scheme{
		cornfield,
		builtin("Metallic", 1100, cornfield, map[Role]string{
			Background: "#aaaaff", Background2: "#aaaaff",
			FaceFront: "#dddddd", FaceBack: "#dd22dd", Face2D: "#bbbbbb",
		}),
		builtin("Sunset", 1200, cornfield, map[Role]string{
			Background: "#aa4444", Background2: "#aa4444",
			FaceFront: "#ffaaaa", FaceBack: "#882233", Face2D: "#ffbbbb",
		}),
		builtin("Starnight", 1300, cornfield, map[Role]string{
			Background: "#000000", Background2: "#000000",
			Axes: "#c1c1c1", Crosshair: "#f0f0f0",
			AxisX: "#ff6060", AxisY: "#60ff60", AxisZ: "#6060ff",
			FaceFront: "#ffffe0", FaceBack: "#228822", Face2D: "#ffffe0",
		}),
		builtin("BeforeDawn", 1400, cornfield, map[Role]string{
			Background: "#333333", Background2: "#333333",
			Axes: "#c1c1c1", Crosshair: "#f0f0f0",
			AxisX: "#ff6060", AxisY: "#60ff60", AxisZ: "#6060ff",
			FaceFront: "#cccccc", FaceBack: "#5563dd", Face2D: "#bbbbbb",
		}),
		builtin("Nature", 1500, cornfield, map[Role]string{
			Background: "#fafafa", Background2: "#fafafa",
			FaceFront: "#16a085", FaceBack: "#dbf4da", Face2D: "#16a085",
		}),
		builtin("DeepOcean", 1600, cornfield, map[Role]string{
			Background: "#333333", Background2: "#333333",
			Axes: "#c1c1c1", Crosshair: "#f0f0f0",
			AxisX: "#ff6060", AxisY: "#60ff60", AxisZ: "#6060ff",
			FaceFront: "#eeeeee", FaceBack: "#0babc8", Face2D: "#eeeeee",
		}),
		builtin("Solarized", 1700, cornfield, map[Role]string{
			Background: "#fdf6e3", Background2: "#fdf6e3",
			Axes: "#93a1a1", Crosshair: "#dc322f",
			AxisX: "#dc322f", AxisY: "#859900", AxisZ: "#268bd2",
			FaceFront: "#b58800", FaceBack: "#882233", Face2D: "#b58800",
			EdgeFront: "#dc322f", EdgeBack: "#dc322f", Edge2D: "#dc322f",
		}),
		builtin("Tomorrow", 1800, cornfield, map[Role]string{
			Background: "#ffffff", Background2: "#ffffff",
			Axes: "#4d4d4c", Crosshair: "#4d4d4c",
			AxisX: "#c82829", AxisY: "#718c00", AxisZ: "#4271ae",
			FaceFront: "#4271ae", FaceBack: "#c82829", Face2D: "#4271ae",
			EdgeFront: "#8959a8", EdgeBack: "#8959a8", Edge2D: "#8959a8",
		}),
		builtin("Tomorrow Night", 1900, cornfield, map[Role]string{
			Background: "#1d1f21", Background2: "#1d1f21",
			Axes: "#c5c8c6", Crosshair: "#c5c8c6",
			AxisX: "#cc6666", AxisY: "#b5bd68", AxisZ: "#81a2be",
			FaceFront: "#81a2be", FaceBack: "#cc6666", Face2D: "#81a2be",
			EdgeFront: "#b294bb", EdgeBack: "#b294bb", Edge2D: "#b294bb",
		}),
		builtin("Monotone", 2000, cornfield, map[Role]string{
			Background: "#ffffff", Background2: "#ffffff",
			Axes: "#000000", Crosshair: "#000000",
			AxisX: "#000000", AxisY: "#000000", AxisZ: "#000000",
			FaceFront: "#e5e5e5", FaceBack: "#b0b0b0", Face2D: "#d0d0d0",
			EdgeFront: "#000000", EdgeBack: "#000000", Edge2D: "#000000",
		}),
	}
}

func builtin(name string, index int, base *Scheme, hex map[Role]string) *Scheme {
	s := &Scheme{name: name, index: index}
	if base != nil {
		s.colors = base.colors
	}
	for r, h := range hex {
		s.colors[r] = MustHex(h)
	}
	return s
}
