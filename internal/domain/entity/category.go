package entity

// Category is a content category. Stories relate to categories through
// association rows owned by the story repository; the entity itself never
// embeds a story list.
type Category struct {
	ID          string
	Name        string
	Description string
}
