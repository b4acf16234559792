package contentbox

// Span is a half-open interval [Begin, End) along one axis.
type Span struct {
	Begin int `json:"begin"`
	End   int `json:"end"`
}

// Width returns End - Begin.
func (s Span) Width() int { return s.End - s.Begin }

// Shift returns the span moved by d.
func (s Span) Shift(d int) Span { return Span{s.Begin + d, s.End + d} }

// SpanFinder segments a black pixel histogram into runs of content.
type SpanFinder struct {
	// MinContentWidth drops content runs narrower than this.
	MinContentWidth int

	// MinWhitespaceWidth is the narrowest gap that separates two runs. Shorter
	// gaps are absorbed into the surrounding content.
	MinWhitespaceWidth int
}

// Find returns a scanner over the spans of hist. Bucket i maps to position
// offset+i in the returned spans.
func (f SpanFinder) Find(hist []int, offset int) *SpanScanner {
	return &SpanScanner{finder: f, hist: hist, offset: offset}
}

// FindAll collects every span of hist.
func (f SpanFinder) FindAll(hist []int, offset int) []Span {
	var spans []Span
	for sc := f.Find(hist, offset); sc.Next(); {
		spans = append(spans, sc.Span())
	}
	return spans
}

// SpanScanner yields spans in increasing order. It cannot be rewound.
type SpanScanner struct {
	finder SpanFinder
	hist   []int
	offset int
	pos    int
	cur    Span
}

// Next advances to the next span and reports whether there was one.
func (s *SpanScanner) Next() bool {
	n := len(s.hist)
	for s.pos < n {
		for s.pos < n && s.hist[s.pos] == 0 {
			s.pos++
		}
		if s.pos == n {
			break
		}

		begin := s.pos
		end := begin
		for s.pos < n {
			if s.hist[s.pos] != 0 {
				s.pos++
				end = s.pos
				continue
			}
			gap := s.pos
			for gap < n && s.hist[gap] == 0 {
				gap++
			}
			if gap == n || gap-s.pos >= s.finder.MinWhitespaceWidth {
				s.pos = gap
				break
			}
			s.pos = gap
		}

		if end-begin >= s.finder.MinContentWidth {
			s.cur = Span{Begin: begin + s.offset, End: end + s.offset}
			return true
		}
	}
	s.cur = Span{}
	return false
}

// Span returns the span found by the last call to Next.
func (s *SpanScanner) Span() Span { return s.cur }
