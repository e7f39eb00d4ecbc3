package domain

// Board is one configured job board to pull from.
type Board struct {
	Name     string // display name
	Board    string // slug, API base or full board URL depending on the source
	Label    string // html boards: "Taleo", "Workday", ...
	Location string // html boards: default location when the page has none
}
