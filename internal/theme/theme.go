package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme of the reader.
type Theme struct {
	Slug string
	Name string

	// Text colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color

	// Chrome
	Border       lipgloss.Color
	BorderActive lipgloss.Color

	// Verse focus: the highlighted verse and the overlay dimming the rest.
	Focus   lipgloss.Color
	FocusBg lipgloss.Color
	Dim     lipgloss.Color
}

var themes = []Theme{
	{
		Slug: "catppuccin-mocha", Name: "Catppuccin Mocha",
		Primary: "#cdd6f4", Secondary: "#a6adc8", Accent: "#f5c2e7", Muted: "#6c7086", Error: "#f38ba8",
		Border: "#45475a", BorderActive: "#89b4fa",
		Focus: "#f9e2af", FocusBg: "#313244", Dim: "#585b70",
	},
	{
		Slug: "catppuccin-latte", Name: "Catppuccin Latte",
		Primary: "#4c4f69", Secondary: "#5c5f77", Accent: "#ea76cb", Muted: "#9ca0b0", Error: "#d20f39",
		Border: "#dce0e8", BorderActive: "#1e66f5",
		Focus: "#df8e1d", FocusBg: "#e6e9ef", Dim: "#bcc0cc",
	},
	{
		Slug: "dracula", Name: "Dracula",
		Primary: "#f8f8f2", Secondary: "#6272a4", Accent: "#ff79c6", Muted: "#6272a4", Error: "#ff5555",
		Border: "#44475a", BorderActive: "#bd93f9",
		Focus: "#f1fa8c", FocusBg: "#44475a", Dim: "#4d5066",
	},
	{
		Slug: "rosepine-moon", Name: "Rosé Pine Moon",
		Primary: "#e0def4", Secondary: "#908caa", Accent: "#ebbcba", Muted: "#6e6a86", Error: "#eb6f92",
		Border: "#403d52", BorderActive: "#c4a7e7",
		Focus: "#f6c177", FocusBg: "#393552", Dim: "#56526e",
	},
	{
		Slug: "rosepine-dawn", Name: "Rosé Pine Dawn",
		Primary: "#575279", Secondary: "#797593", Accent: "#d7827e", Muted: "#9893a5", Error: "#b4637a",
		Border: "#f2e9e1", BorderActive: "#907aa9",
		Focus: "#ea9d34", FocusBg: "#f2e9e1", Dim: "#cecacd",
	},
	{
		Slug: "solarized-dark", Name: "Solarized Dark",
		Primary: "#839496", Secondary: "#586e75", Accent: "#d33682", Muted: "#586e75", Error: "#dc322f",
		Border: "#073642", BorderActive: "#268bd2",
		Focus: "#b58900", FocusBg: "#073642", Dim: "#30505a",
	},
	{
		Slug: "solarized-light", Name: "Solarized Light",
		Primary: "#657b83", Secondary: "#93a1a1", Accent: "#d33682", Muted: "#93a1a1", Error: "#dc322f",
		Border: "#eee8d5", BorderActive: "#268bd2",
		Focus: "#b58900", FocusBg: "#eee8d5", Dim: "#c9c4b0",
	},
}

// All returns every available theme in display order.
func All() []Theme {
	out := make([]Theme, len(themes))
	copy(out, themes)
	return out
}

// Get returns a theme by slug, defaulting to Catppuccin Mocha if not found.
func Get(slug string) Theme {
	for _, t := range themes {
		if t.Slug == slug {
			return t
		}
	}
	return themes[0]
}

// Next returns the theme after slug, wrapping around.
func Next(slug string) Theme {
	for i, t := range themes {
		if t.Slug == slug {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}
