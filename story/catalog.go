package story

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNotFound is returned when a slug has no story.
var ErrNotFound = errors.New("story: not found")

// Catalog is a read-only lookup of stories by slug.
type Catalog interface {
	Get(slug string) (Story, error)
	List() ([]Story, error)
}

// Static is an immutable in-memory catalog.
type Static struct {
	bySlug map[string]Story
	order  []string
}

// NewStatic validates stories and indexes them by slug. Duplicate slugs are
// rejected.
func NewStatic(stories []Story) (*Static, error) {
	c := &Static{bySlug: make(map[string]Story, len(stories))}
	for _, s := range stories {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.bySlug[s.Slug]; dup {
			return nil, fmt.Errorf("story %q: duplicate slug", s.Slug)
		}
		c.bySlug[s.Slug] = s
		c.order = append(c.order, s.Slug)
	}
	// Newest first, like a blog index.
	sort.SliceStable(c.order, func(i, j int) bool {
		return c.bySlug[c.order[i]].PublishedAt > c.bySlug[c.order[j]].PublishedAt
	})
	return c, nil
}

// Get returns the story for slug or ErrNotFound.
func (c *Static) Get(slug string) (Story, error) {
	s, ok := c.bySlug[slug]
	if !ok {
		return Story{}, ErrNotFound
	}
	return s, nil
}

// List returns all stories, newest first.
func (c *Static) List() ([]Story, error) {
	out := make([]Story, 0, len(c.order))
	for _, slug := range c.order {
		out = append(out, c.bySlug[slug])
	}
	return out, nil
}

// DefaultStories is the sample content shipped with the app.
func DefaultStories() []Story {
	return []Story{
		{
			ID:           "sample-story",
			Slug:         "sample-story",
			Title:        "Golden Hour Photography",
			Description:  "A stunning capture of the golden hour magic in the countryside",
			HeroImageURL: "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=1200&h=800&fit=crop",
			Alt:          "Golden hour landscape with rolling hills and warm sunlight",
			Caption:      "Captured during the perfect golden hour, this photograph showcases the breathtaking beauty of rural landscapes bathed in warm, golden light.",
			Body: []string{
				"This photograph captures a moment of natural beauty that exemplifies the art of landscape photography. The interplay of light and shadow creates depth and dimension, while the golden hour lighting adds warmth and atmosphere.",
			},
			EXIF: EXIF{
				TakenAt:  "2024-01-15T18:30:00Z",
				Camera:   "Canon EOS R5",
				Lens:     "24-70mm f/2.8",
				Settings: "f/8, 1/250s, ISO 100",
			},
			Template:    Classic,
			PublishedAt: "2024-01-15T19:00:00Z",
			Tags:        []string{"landscape", "golden-hour", "nature", "photography"},
			Author: Author{
				Name:   "Jane Photographer",
				Avatar: "/api/placeholder/40/40",
			},
		},
	}
}

// Default returns a Static catalog of DefaultStories.
func Default() *Static {
	c, err := NewStatic(DefaultStories())
	if err != nil {
		panic(err)
	}
	return c
}
