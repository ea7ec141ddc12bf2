package models

// Gallery holds the resolved image sequence for one property together
// with the index of the image currently in view. Navigation is circular:
// stepping past the last image wraps to the first and vice versa.
//
// The zero value is an empty gallery; callers should check HasImages and
// render a placeholder instead of indexing into an empty sequence.
type Gallery struct {
	images  []string
	current int
}

// NewGallery builds a Gallery from a property's image slots, keeping only
// the defined ones in their original order.
func NewGallery(p *Property) *Gallery {
	return &Gallery{images: p.Images()}
}

// HasImages reports whether the gallery has anything to show.
func (g *Gallery) HasImages() bool {
	return len(g.images) > 0
}

// Len returns the number of defined images.
func (g *Gallery) Len() int {
	return len(g.images)
}

// Current returns the image in view, or ok=false for an empty gallery.
func (g *Gallery) Current() (string, bool) {
	if len(g.images) == 0 {
		return "", false
	}
	return g.images[g.current], true
}

// Index returns the position of the image in view.
func (g *Gallery) Index() int {
	return g.current
}

// Next advances to the following image, wrapping to the first after the
// last. It is a no-op on an empty gallery.
func (g *Gallery) Next() {
	if len(g.images) == 0 {
		return
	}
	g.current = (g.current + 1) % len(g.images)
}

// Prev steps back to the preceding image, wrapping to the last before the
// first. It is a no-op on an empty gallery.
func (g *Gallery) Prev() {
	if len(g.images) == 0 {
		return
	}
	g.current = (g.current - 1 + len(g.images)) % len(g.images)
}
