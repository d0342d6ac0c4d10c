package model

// GuidePage is one markdown page of the quiet-time guide content.
type GuidePage struct {
	Slug        string
	Title       string
	Description string
	Order       int
	HTMLContent string
}
