package assets

// Entry is one row of the asset table.
type Entry struct {
	Key string
	URL string
}

// Match is one search hit. Order among matches is table order.
type Match struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
