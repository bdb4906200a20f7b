package domain

import "encoding/json"

type Category struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Ordering  int    `db:"ordering" json:"ordering"`
	CreatedAt string `db:"created_at" json:"created_at"`
}

// Product statuses. A listing is one physical garment, so status moves
// available -> reserved (in a cart hold) -> sold, and reserved falls back
// to available when the hold expires.
const (
	StatusAvailable = "available"
	StatusReserved  = "reserved"
	StatusSold      = "sold"
)

// Conditions for a second-hand listing.
const (
	CondNew     = "new"
	CondLikeNew = "like_new"
	CondGood    = "good"
	CondFair    = "fair"
)

type Product struct {
	ID            string   `db:"id" json:"id"`
	CategoryID    string   `db:"category_id" json:"category_id"`
	Name          string   `db:"name" json:"name"`
	Brand         string   `db:"brand" json:"brand"`
	Size          string   `db:"size" json:"size"`
	Condition     string   `db:"condition" json:"condition"`
	Price         float64  `db:"price" json:"price"`
	OriginalPrice *float64 `db:"original_price" json:"original_price,omitempty"`
	Description   string   `db:"description" json:"description"`
	TagsJSON      string   `db:"tags_json" json:"-"`
	ImagesJSON    string   `db:"images_json" json:"-"`
	Status        string   `db:"status" json:"status"`
	IsFeatured    bool     `db:"is_featured" json:"is_featured"`
	CreatedAt     string   `db:"created_at" json:"created_at"`
	UpdatedAt     string   `db:"updated_at" json:"updated_at,omitempty"`

	// Populated from the *_json columns before serving.
	Tags   []string `db:"-" json:"tags"`
	Images []string `db:"-" json:"images"`
}

// Hydrate decodes the JSON list columns into their slice fields.
func (p *Product) Hydrate() {
	p.Tags = decodeList(p.TagsJSON)
	p.Images = decodeList(p.ImagesJSON)
}

func decodeList(raw string) []string {
	out := []string{}
	if raw == "" {
		return out
	}
	_ = json.Unmarshal([]byte(raw), &out)
	return out
}

func EncodeList(items []string) string {
	if items == nil {
		items = []string{}
	}
	b, _ := json.Marshal(items)
	return string(b)
}

// Order statuses and the allowed transitions between them.
const (
	OrderPending    = "pending"
	OrderConfirmed  = "confirmed"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

var orderTransitions = map[string][]string{
	OrderPending:    {OrderConfirmed, OrderCancelled},
	OrderConfirmed:  {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderCancelled},
	OrderShipped:    {OrderDelivered},
}

// OrderTransitionAllowed reports whether an order may move from -> to.
func OrderTransitionAllowed(from, to string) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type BlogPost struct {
	ID          string `db:"id" json:"id"`
	Slug        string `db:"slug" json:"slug"`
	Title       string `db:"title" json:"title"`
	Excerpt     string `db:"excerpt" json:"excerpt"`
	Content     string `db:"content" json:"content,omitempty"`
	CoverImage  string `db:"cover_image" json:"cover_image"`
	TagsJSON    string `db:"tags_json" json:"-"`
	Views       int    `db:"views" json:"views"`
	Likes       int    `db:"likes" json:"likes"`
	Published   bool   `db:"published" json:"published"`
	PublishedAt string `db:"published_at" json:"published_at"`

	Tags []string `db:"-" json:"tags"`
}

func (b *BlogPost) Hydrate() { b.Tags = decodeList(b.TagsJSON) }

type Notification struct {
	ID        string `db:"id" json:"id"`
	UserID    string `db:"user_id" json:"user_id"`
	Kind      string `db:"kind" json:"kind"`
	Title     string `db:"title" json:"title"`
	Body      string `db:"body" json:"body"`
	Read      bool   `db:"read" json:"read"`
	CreatedAt string `db:"created_at" json:"created_at"`
}
