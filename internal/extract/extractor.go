package extract

// Extractor turns raw page bytes into PageContent. Implementations must be
// total: malformed input degrades to empty fields.
type Extractor interface {
	Extract(input []byte) PageContent
}

// PatternExtractor is the default Extractor backed by FromHTML.
type PatternExtractor struct{}

func (PatternExtractor) Extract(input []byte) PageContent {
	return FromHTML(input)
}
