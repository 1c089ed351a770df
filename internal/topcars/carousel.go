package topcars

// Viewport breakpoints in CSS pixels.
const (
	BreakpointMobile = 640
	BreakpointTablet = 900

	// DefaultViewport is assumed when the client does not report a width.
	DefaultViewport = 1280
	MobileViewport  = 375
)

// SlidesPerPage is how many cards one carousel page shows at width.
func SlidesPerPage(width int) int {
	switch {
	case width <= BreakpointMobile:
		return 1
	case width <= BreakpointTablet:
		return 2
	default:
		return 3
	}
}

// Dots is the number of pagination indicators for n cards at width.
func Dots(n, width int) int {
	if n <= 0 {
		return 0
	}
	per := SlidesPerPage(width)
	return (n + per - 1) / per
}

type Carousel struct {
	SlidesPerPage int    `json:"slidesPerPage"`
	Dots          int    `json:"dots"`
	Current       int    `json:"current"`
	Slides        []Card `json:"slides"`
}

// NewCarousel windows cards for width, with current clamped into range.
func NewCarousel(cards []Card, width, current int) Carousel {
	per := SlidesPerPage(width)
	dots := Dots(len(cards), width)
	if current >= dots {
		current = dots - 1
	}
	if current < 0 {
		current = 0
	}
	start := current * per
	end := start + per
	if end > len(cards) {
		end = len(cards)
	}
	slides := []Card{}
	if start < end {
		slides = cards[start:end]
	}
	return Carousel{SlidesPerPage: per, Dots: dots, Current: current, Slides: slides}
}

// Pages lists the dot indexes, for templates.
func (c Carousel) Pages() []int {
	out := make([]int, c.Dots)
	for i := range out {
		out[i] = i
	}
	return out
}

func (c Carousel) HasPrev() bool { return c.Current > 0 }
func (c Carousel) HasNext() bool { return c.Current < c.Dots-1 }
func (c Carousel) Prev() int     { return c.Current - 1 }
func (c Carousel) Next() int     { return c.Current + 1 }
