package models

// FormData is what the user filled in on the front-end form.
type FormData struct {
	Idea      string `json:"idea"`
	Niche     string `json:"niche"`
	Subniche  string `json:"subniche"`
	Format    string `json:"format"`
	Intention string `json:"intention"`
	Emotion   string `json:"emotion"`
	Risk      string `json:"risk"`
}

// Extracted is the content summary pre-computed by the front-end.
type Extracted struct {
	PrimaryTheme    string   `json:"primaryTheme"`
	AllThemes       []string `json:"allThemes"`
	AnchorQuestions []string `json:"anchorQuestions"`
	ImpactLines     []string `json:"impactLines"`
	RawExcerpt      string   `json:"rawExcerpt"`
}

type GenerateRequest struct {
	FormData    FormData  `json:"formData"`
	Extracted   Extracted `json:"extracted"`
	AllowOpenAI bool      `json:"allowOpenAI"`
}

// GeneratedResult only exists once it has passed validation.
type GeneratedResult struct {
	Title       string   `json:"title"`
	ThumbText   string   `json:"thumbText"`
	ThumbPrompt string   `json:"thumbPrompt"`
	Keywords    []string `json:"keywords"`
	PatternUsed string   `json:"patternUsed"`
}
