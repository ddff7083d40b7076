package domain

// HealthAdvice is a static wellness tip served on the dashboard and the
// advice endpoint. The pool is fixed application data, not user content.
type HealthAdvice struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Img      string `json:"img,omitempty"`
}
