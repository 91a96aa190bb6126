package tailwind

import (
	"github.com/yaklabco/gobiome/pkg/syntax"
	"github.com/yaklabco/gobiome/pkg/text"
)

// Candidate is a flattened view of one class name.
type Candidate struct {
	Text      string
	Range     text.Range
	Variants  []string
	Important bool
	Negative  bool
	// Utility is the base of a static or functional utility, or the full
	// bracketed text of an arbitrary candidate.
	Utility  string
	Value    string
	Modifier string
	Bogus    bool
}

// Candidates flattens the candidates of a parsed class list.
func Candidates(root *syntax.Node) []Candidate {
	list := root.FindNode(syntax.TwCandidateList)
	if list == nil {
		return nil
	}
	var out []Candidate
	for node := range list.ChildNodes() {
		c := Candidate{Text: node.TrimmedText(), Range: node.TextRange(), Bogus: node.Kind() == syntax.TwBogusCandidate}
		for child := range node.Children() {
			switch el := child.(type) {
			case *syntax.Token:
				if el.Kind() == syntax.Bang {
					c.Important = true
				}
			case *syntax.Node:
				switch el.Kind() {
				case syntax.TwVariantList:
					for v := range el.ChildNodes() {
						if u := v.FindNode(syntax.TwStatic, syntax.TwFunctional, syntax.TwArbitraryCandidate); u != nil {
							c.Variants = append(c.Variants, u.TrimmedText())
						}
					}
				case syntax.TwStatic, syntax.TwFunctional:
					fillUtility(&c, el)
				case syntax.TwArbitraryCandidate:
					c.Utility = el.TrimmedText()
				}
			}
		}
		out = append(out, c)
	}
	return out
}

func fillUtility(c *Candidate, utility *syntax.Node) {
	seenBase := false
	for child := range utility.Children() {
		switch el := child.(type) {
		case *syntax.Token:
			switch el.Kind() {
			case syntax.Minus:
				if !seenBase {
					c.Negative = true
				}
			case syntax.TwBase:
				c.Utility = el.Text()
				seenBase = true
			case syntax.TwValue:
				c.Value = el.Text()
			}
		case *syntax.Node:
			switch el.Kind() {
			case syntax.TwArbitraryValue:
				c.Value = el.TrimmedText()
			case syntax.TwModifier:
				c.Modifier = el.TrimmedText()[1:]
			}
		}
	}
}
