package parser

import (
	"github.com/yaklabco/gobiome/pkg/syntax"
)

// treeSink attaches trivia to tokens while replaying events into a builder.
type treeSink struct {
	src      string
	trivia   []Trivia
	next     int
	builder  *syntax.Builder
}

func buildTree(src string, events []Event, trivia []Trivia, cache *syntax.NodeCache) *syntax.GreenNode {
	sink := &treeSink{src: src, trivia: trivia, builder: syntax.NewBuilder(cache)}

	var parents []syntax.Kind
	for i := range events {
		ev := events[i]
		switch ev.Kind {
		case EventStart:
			if ev.NodeKind == syntax.Tombstone && ev.ForwardParent == 0 {
				continue
			}
			parents = parents[:0]
			parents = append(parents, ev.NodeKind)
			idx, fp := i, ev.ForwardParent
			for fp != 0 {
				idx += fp
				parents = append(parents, events[idx].NodeKind)
				fp = events[idx].ForwardParent
				events[idx] = Event{Kind: EventStart, NodeKind: syntax.Tombstone}
			}
			for j := len(parents) - 1; j >= 0; j-- {
				if parents[j] != syntax.Tombstone {
					sink.builder.StartNode(parents[j])
				}
			}
		case EventFinish:
			sink.builder.FinishNode()
		case EventToken:
			sink.token(ev)
		case EventMissing:
			sink.builder.Empty()
		case EventTombstone:
		}
	}
	return sink.builder.Finish()
}

func (s *treeSink) token(ev Event) {
	if ev.Virtual {
		s.builder.Token(ev.NodeKind, "", nil, nil)
		return
	}

	start := ev.Start
	var leading []syntax.TriviaPiece
	for s.next < len(s.trivia) && s.trivia[s.next].End <= ev.Start {
		t := s.trivia[s.next]
		if len(leading) == 0 {
			start = t.Start
		}
		leading = append(leading, syntax.TriviaPiece{Kind: t.Kind, Len: t.End - t.Start})
		s.next++
	}

	end := ev.End
	var trailing []syntax.TriviaPiece
	if ev.NodeKind != syntax.EOF {
		for s.next < len(s.trivia) && s.trivia[s.next].Trailing && s.trivia[s.next].Start == end {
			t := s.trivia[s.next]
			trailing = append(trailing, syntax.TriviaPiece{Kind: t.Kind, Len: t.End - t.Start})
			end = t.End
			s.next++
		}
	}

	s.builder.Token(ev.NodeKind, s.src[start:end], leading, trailing)
}
