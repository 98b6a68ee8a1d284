package render

import "time"

type Renderer interface {
	RenderBookList(view BookListView) string
}

type BookListView struct {
	Items []BookListItem
}

type BookListItem struct {
	Title    string
	Author   string
	Genre    string
	Year     int
	Status   string
	Rating   int
	Progress float64
	Added    time.Time
}

func (v BookListView) IsEmpty() bool {
	return len(v.Items) == 0
}
