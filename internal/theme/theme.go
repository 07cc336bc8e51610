package theme

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultName is the built-in theme used when no override is provided.
const DefaultName = "amora-light"

// Token represents a semantic color slot within the CLI.
type Token string

const (
	ColorTextPrimary   Token = "text.primary"
	ColorTextSecondary Token = "text.secondary"
	ColorTextMuted     Token = "text.muted"
	ColorBorder        Token = "border"
	ColorSurface       Token = "surface"
	ColorAccent        Token = "accent"
	ColorAccentText    Token = "accent.text"
	ColorSuccess       Token = "success"
	ColorWarning       Token = "warning"
	ColorDanger        Token = "danger"
	ColorHighlight     Token = "highlight"
)

// Color stores light and dark variants for adaptive rendering.
type Color struct {
	Light string
	Dark  string
}

func (c Color) Adaptive() lipgloss.AdaptiveColor {
	light, dark := strings.TrimSpace(c.Light), strings.TrimSpace(c.Dark)
	switch {
	case light == "" && dark == "":
		return lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#000000"}
	case light == "":
		light = dark
	case dark == "":
		dark = light
	}
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

// Palette represents a concrete theme.
type Palette struct {
	Name        string
	DisplayName string
	Colors      map[Token]Color
}

// Color returns a color for the provided token, falling back to the default palette.
func (p Palette) Color(token Token) Color {
	if c, ok := p.Colors[token]; ok {
		return c
	}
	return fallbackColor(token)
}

func (p Palette) Adaptive(token Token) lipgloss.AdaptiveColor {
	return p.Color(token).Adaptive()
}

func (p Palette) ForegroundStyle(token Token) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.Adaptive(token))
}

// ClassStyle resolves a column class name such as "status-active" to a
// foreground style. Unknown classes get the primary text color.
func (p Palette) ClassStyle(className string) lipgloss.Style {
	if token, ok := TokenForClass(className); ok {
		return p.ForegroundStyle(token)
	}
	return p.ForegroundStyle(ColorTextPrimary)
}

// TokenForClass maps presentation class names to palette tokens. Only the
// last "-" separated segment is significant.
func TokenForClass(className string) (Token, bool) {
	name := strings.ToLower(strings.TrimSpace(className))
	if i := strings.LastIndex(name, "-"); i >= 0 {
		name = name[i+1:]
	}
	switch name {
	case "active", "approved", "success":
		return ColorSuccess, true
	case "pending", "inactive", "warning":
		return ColorWarning, true
	case "rejected", "archived", "danger":
		return ColorDanger, true
	case "muted", "id":
		return ColorTextMuted, true
	case "accent":
		return ColorAccent, true
	}
	return "", false
}

type contextKey struct{}

var (
	registryOnce sync.Once
	registryMu   sync.RWMutex
	palettes     map[string]Palette
	current      Palette
	defaultPal   Palette
	themeKey     contextKey
)

func ContextWithPalette(ctx context.Context, p Palette) context.Context {
	return context.WithValue(ctx, themeKey, p)
}

// FromContext returns the palette stored on the context or the current palette.
func FromContext(ctx context.Context) Palette {
	if ctx == nil {
		return Current()
	}
	if p, ok := ctx.Value(themeKey).(Palette); ok {
		return p
	}
	return Current()
}

// Available returns the registered theme IDs, sorted.
func Available() []string {
	ensureRegistry()

	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Exists(name string) bool {
	_, ok := Get(name)
	return ok
}

func Get(name string) (Palette, bool) {
	ensureRegistry()

	registryMu.RLock()
	defer registryMu.RUnlock()

	p, ok := palettes[sanitizeName(name)]
	return p, ok
}

// SetCurrent sets the active palette. An empty name selects DefaultName.
func SetCurrent(name string) error {
	ensureRegistry()

	name = sanitizeName(name)
	if name == "" {
		name = DefaultName
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	p, ok := palettes[name]
	if !ok {
		return fmt.Errorf("unknown color theme %q, must be one of %v", name, sortedKeys(palettes))
	}
	current = p
	return nil
}

func Current() Palette {
	ensureRegistry()

	registryMu.RLock()
	defer registryMu.RUnlock()

	return current
}

func CurrentName() string {
	return Current().Name
}

func ensureRegistry() {
	registryOnce.Do(func() {
		registryMu.Lock()
		defer registryMu.Unlock()

		palettes = make(map[string]Palette)
		registerPalette(amoraLightPalette())
		registerPalette(amoraDarkPalette())
		registerPalette(fromBrand("rose", "Rose", "#E0245E"))
		registerPalette(fromBrand("lagoon", "Lagoon", "#0E9AA7"))
		defaultPal = palettes[DefaultName]
		current = defaultPal
	})
}

func registerPalette(p Palette) {
	if p.Name == "" {
		return
	}
	if p.DisplayName == "" {
		p.DisplayName = p.Name
	}
	p.Name = sanitizeName(p.Name)
	palettes[p.Name] = p
}

func sortedKeys(m map[string]Palette) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func fallbackColor(token Token) Color {
	ensureRegistry()
	if c, ok := defaultPal.Colors[token]; ok {
		return c
	}
	return Color{Light: "#000000", Dark: "#FFFFFF"}
}

func sanitizeName(name string) string {
	return strings.TrimSpace(strings.ToLower(name))
}

// fromBrand derives a full adaptive palette from a single brand color.
func fromBrand(name, display, brand string) Palette {
	base := normalizeHex(brand)
	return Palette{
		Name:        name,
		DisplayName: display,
		Colors: map[Token]Color{
			ColorTextPrimary:   pairColor("#1B1B1F", "#F4F4F6"),
			ColorTextSecondary: Color{Light: darkenHex(base, 0.55), Dark: lightenHex(base, 0.6)},
			ColorTextMuted:     Color{Light: "#6B6B76", Dark: "#9A9AA6"},
			ColorBorder:        Color{Light: lightenHex(base, 0.55), Dark: darkenHex(base, 0.45)},
			ColorSurface:       Color{Light: lightenHex(base, 0.9), Dark: darkenHex(base, 0.8)},
			ColorAccent:        singleColor(base),
			ColorAccentText:    singleColor(contrastColor(base)),
			ColorSuccess:       pairColor("#1E7F4F", "#5FD39A"),
			ColorWarning:       pairColor("#9A6A00", "#F2C14E"),
			ColorDanger:        pairColor("#B3261E", "#F2827A"),
			ColorHighlight:     Color{Light: lightenHex(base, 0.8), Dark: darkenHex(base, 0.6)},
		},
	}
}

func amoraLightPalette() Palette {
	p := fromBrand(DefaultName, "Amora Light", "#C2185B")
	p.Colors[ColorSurface] = singleColor("#FFFFFF")
	p.Colors[ColorTextPrimary] = singleColor("#1B1B1F")
	return p
}

func amoraDarkPalette() Palette {
	p := fromBrand("amora-dark", "Amora Dark", "#F06292")
	p.Colors[ColorSurface] = singleColor("#16161A")
	p.Colors[ColorTextPrimary] = singleColor("#F4F4F6")
	return p
}

func singleColor(hex string) Color {
	h := normalizeHex(hex)
	return Color{Light: h, Dark: h}
}

func pairColor(light, dark string) Color {
	return Color{Light: normalizeHex(light), Dark: normalizeHex(dark)}
}

func normalizeHex(hex string) string {
	trimmed := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(hex), "#"))
	switch len(trimmed) {
	case 0:
		return ""
	case 3:
		var b strings.Builder
		b.WriteString("#")
		for _, r := range trimmed {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		return strings.ToUpper(b.String())
	default:
		if len(trimmed) > 6 {
			trimmed = trimmed[:6]
		}
		return "#" + strings.ToUpper(trimmed)
	}
}

// contrastColor picks near-black or near-white text for a background.
func contrastColor(hex string) string {
	c, err := colorful.Hex(normalizeHex(hex))
	if err != nil {
		return "#121418"
	}
	r, g, b := c.LinearRgb()
	if 0.2126*r+0.7152*g+0.0722*b > 0.55 {
		return "#121418"
	}
	return "#F8F8F8"
}

func lightenHex(hex string, amount float64) string {
	return blendHex(hex, colorful.Color{R: 1, G: 1, B: 1}, amount)
}

func darkenHex(hex string, amount float64) string {
	return blendHex(hex, colorful.Color{R: 0, G: 0, B: 0}, amount)
}

func blendHex(hex string, target colorful.Color, amount float64) string {
	h := normalizeHex(hex)
	c, err := colorful.Hex(h)
	if err != nil {
		return h
	}
	amount = max(0, min(1, amount))
	return strings.ToUpper(c.BlendLab(target, amount).Clamped().Hex())
}
