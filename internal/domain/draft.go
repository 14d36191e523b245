package domain

// Draft is the raw result of parsing one line of quick-entry text. All fields
// are uninterpreted tokens; coercion happens downstream.
type Draft struct {
	Item  string `json:"item"`
	Price string `json:"price"`
	Name  string `json:"name"`
	Qty   string `json:"qty"`
}
