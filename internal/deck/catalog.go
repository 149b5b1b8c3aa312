package deck

import "strings"

// TemplateID names one visual style out of the fixed catalog. The value is
// threaded through the preview and sent verbatim to the build stage.
type TemplateID string

const DefaultTemplate TemplateID = "modern"

// Template pairs a catalog identifier with its selector blurb.
type Template struct {
	ID          TemplateID
	Description string
}

// Catalog returns the selectable templates in display order. The backend
// accepts exactly this set and falls back to modern for anything else.
func Catalog() []Template {
	return []Template{
		{"modern", "Bold headlines with generous whitespace."},
		{"professional", "Restrained serif look for formal decks."},
		{"minimal", "Plain type, no ornamentation."},
		{"gradient", "Soft color washes behind every slide."},
		{"corporate", "Conservative palette with rule lines."},
		{"creative", "Asymmetric layouts and accent shapes."},
		{"dynamic", "High-contrast slides with motion cues."},
		{"clean", "Light background, tight typography."},
		{"dark", "Light-on-dark presentation theme."},
		{"tech", "Monospace accents on a dark canvas."},
		{"elegant", "Thin serifs and muted gold accents."},
		{"future", "Neon edges with a synthwave feel."},
		{"nature", "Earth tones and organic spacing."},
		{"business", "Dense, chart-friendly layouts."},
	}
}

// Normalize maps arbitrary input onto a cataloged identifier, falling back
// to the default the same way the backend does.
func Normalize(s string) TemplateID {
	id := TemplateID(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range Catalog() {
		if t.ID == id {
			return id
		}
	}
	return DefaultTemplate
}
