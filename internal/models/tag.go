package models

// Tag is a label attached to posts via TAGS edges.
type Tag struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

// TagCount is a tag together with its windowed usage count.
type TagCount struct {
	UUID  string `json:"uuid"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}
