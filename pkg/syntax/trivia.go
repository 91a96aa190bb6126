package syntax

// TriviaKind classifies a piece of trivia attached to a token.
type TriviaKind uint8

// Trivia kinds.
const (
	TriviaWhitespace TriviaKind = iota
	TriviaNewline
	TriviaSingleLineComment
	TriviaMultiLineComment
	// TriviaSkipped holds bytes the parser skipped over during recovery.
	TriviaSkipped
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaWhitespace:
		return "Whitespace"
	case TriviaNewline:
		return "Newline"
	case TriviaSingleLineComment:
		return "SingleLineComment"
	case TriviaMultiLineComment:
		return "MultiLineComment"
	case TriviaSkipped:
		return "Skipped"
	default:
		return "Unknown"
	}
}

// IsComment returns true for both comment kinds.
func (k TriviaKind) IsComment() bool {
	return k == TriviaSingleLineComment || k == TriviaMultiLineComment
}

// TriviaPiece is a (kind, byte length) entry. The bytes live in the owning token's text.
type TriviaPiece struct {
	Kind TriviaKind
	Len  int
}

func triviaLen(pieces []TriviaPiece) int {
	n := 0
	for _, p := range pieces {
		n += p.Len
	}
	return n
}

// SyntaxTrivia is a resolved trivia piece with its text and absolute range.
type SyntaxTrivia struct {
	Kind   TriviaKind
	Text   string
	Offset int
}

// End returns the offset just past the trivia.
func (t SyntaxTrivia) End() int {
	return t.Offset + len(t.Text)
}
