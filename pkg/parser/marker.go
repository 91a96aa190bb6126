package parser

import "github.com/yaklabco/gobiome/pkg/syntax"

// Marker is an open node whose kind is decided when it completes.
type Marker struct {
	pos   int
	start int
}

// Start opens a new marker at the current token.
func (p *Parser) Start() Marker {
	p.events = append(p.events, Event{Kind: EventStart, NodeKind: syntax.Tombstone})
	return Marker{pos: len(p.events) - 1, start: p.source.cur.start}
}

// Complete closes the marker as a node of the given kind.
func (m Marker) Complete(p *Parser, kind syntax.Kind) CompletedMarker {
	p.retag(m.pos, kind)
	p.events = append(p.events, Event{Kind: EventFinish})
	return CompletedMarker{start: m.pos, finish: len(p.events) - 1, kind: kind, offset: m.start}
}

// Abandon drops the marker. Its children become children of the enclosing node.
func (m Marker) Abandon(p *Parser) {
	if m.pos == len(p.events)-1 && m.pos >= p.frozen {
		p.events = p.events[:m.pos]
		return
	}
	p.retag(m.pos, syntax.Tombstone)
}

func (p *Parser) retag(pos int, kind syntax.Kind) {
	ev := p.events[pos]
	ev.NodeKind = kind
	p.setEvent(pos, ev)
}

// CompletedMarker is a finished node that can still be retagged or wrapped.
type CompletedMarker struct {
	start  int
	finish int
	kind   syntax.Kind
	offset int
}

// Kind returns the node kind.
func (cm CompletedMarker) Kind() syntax.Kind { return cm.kind }

// Offset returns the start offset of the node's first token.
func (cm CompletedMarker) Offset() int { return cm.offset }

// Precede opens a new marker that will become the parent of cm. This is how
// left-recursive productions such as binary expressions and member chains wrap
// an already parsed left operand.
func (cm CompletedMarker) Precede(p *Parser) Marker {
	m := p.Start()
	m.start = cm.offset
	ev := p.events[cm.start]
	ev.ForwardParent = m.pos - cm.start
	p.setEvent(cm.start, ev)
	return m
}

// ChangeKind retags the completed node.
func (cm CompletedMarker) ChangeKind(p *Parser, kind syntax.Kind) CompletedMarker {
	p.retag(cm.start, kind)
	cm.kind = kind
	return cm
}

// UndoCompletion reopens the node so it can be completed with another kind or abandoned.
func (cm CompletedMarker) UndoCompletion(p *Parser) Marker {
	finish := p.events[cm.finish]
	finish.Kind = EventTombstone
	p.setEvent(cm.finish, finish)
	p.retag(cm.start, syntax.Tombstone)
	return Marker{pos: cm.start, start: cm.offset}
}
