package feed

import (
	"time"

	"github.com/five82/imagefeed/internal/unsplash"
)

// Item is one photo in the feed.
type Item struct {
	ID          string
	Width       int
	Height      int
	CreatedAt   *time.Time
	Description string
	ThumbURL    string
	SmallURL    string
	RegularURL  string
	FullURL     string
	IsLiked     bool
}

// AspectRatio returns height/width, or 0 when the width is unknown.
func (i Item) AspectRatio() float64 {
	if i.Width <= 0 {
		return 0
	}
	return float64(i.Height) / float64(i.Width)
}

func (i Item) clone() Item {
	if i.CreatedAt != nil {
		t := *i.CreatedAt
		i.CreatedAt = &t
	}
	return i
}

func itemFromPhoto(p unsplash.Photo) Item {
	return Item{
		ID:          p.ID,
		Width:       p.Width,
		Height:      p.Height,
		CreatedAt:   p.ParsedCreatedAt(),
		Description: p.DescriptionText(),
		ThumbURL:    p.URLs.Thumb,
		SmallURL:    p.URLs.Small,
		RegularURL:  p.URLs.Regular,
		FullURL:     p.URLs.Full,
		IsLiked:     p.LikedByUser,
	}
}

func itemsFromPhotos(photos []unsplash.Photo) []Item {
	items := make([]Item, 0, len(photos))
	for _, p := range photos {
		items = append(items, itemFromPhoto(p))
	}
	return items
}
