package domain

// Category groups equipment on the catalog home page (e.g. "Legs").
type Category struct {
	ID       string `bson:"_id,omitempty" firestore:"-" json:"id"`
	Name     string `bson:"name" firestore:"name" json:"name"`
	ImageURL string `bson:"imageUrl" firestore:"imageUrl" json:"imageUrl"`
}

// DefaultCategoryImageURL is used when a category is created without an image.
const DefaultCategoryImageURL = "https://source.unsplash.com/600x400/?gym"
