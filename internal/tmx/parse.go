package tmx

import (
	"os"
	"strings"

	"github.com/beevik/etree"

	"github.com/kobzarvs/tmxalign/internal/align"
)

// Parse loads a TMX document into an alignment table. The file's language
// set is reduced to the two most frequent codes; each <tu> becomes one row
// holding the <seg> text of those two languages. A side missing from a
// unit yields an empty cell; a unit with neither language is dropped.
func Parse(data []byte) (*align.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(stripBOM(data)); err != nil {
		return nil, parseErrorf("malformed XML: %v", err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "tmx" {
		return nil, parseErrorf("root element is not <tmx>")
	}
	header := root.SelectElement("header")
	if header == nil {
		return nil, parseErrorf("missing <header>")
	}
	body := root.SelectElement("body")
	if body == nil {
		return nil, parseErrorf("missing <body>")
	}

	units := body.SelectElements("tu")
	src, tgt, err := detectLanguages(header, units)
	if err != nil {
		return nil, err
	}

	pairs := make([]align.Pair, 0, len(units))
	for _, tu := range units {
		texts := make(map[string]string, 2)
		for _, tuv := range tu.SelectElements("tuv") {
			code := tuvLang(tuv)
			if code == "" {
				continue
			}
			if _, seen := texts[code]; seen {
				continue // first variant of a language wins
			}
			texts[code] = segText(tuv.SelectElement("seg"))
		}
		s, hasSrc := texts[src]
		t, hasTgt := texts[tgt]
		if !hasSrc && !hasTgt {
			continue
		}
		pairs = append(pairs, align.Pair{Source: s, Target: t})
	}
	return align.NewDocument(src, tgt, pairs), nil
}

// ParseFile reads and parses path, recording it as the document's origin.
func ParseFile(path string) (*align.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	doc.SetOriginPath(path)
	return doc, nil
}

// detectLanguages picks the document's source and target languages: the
// two codes used by the most <tuv> elements, frequency ties broken by
// first appearance. When the header's srclang names one of the two, that
// code plays source; otherwise the more frequent one does.
func detectLanguages(header *etree.Element, units []*etree.Element) (src, tgt string, err error) {
	counts := make(map[string]int)
	var order []string
	for _, tu := range units {
		for _, tuv := range tu.SelectElements("tuv") {
			code := tuvLang(tuv)
			if code == "" {
				continue
			}
			if _, seen := counts[code]; !seen {
				order = append(order, code)
			}
			counts[code]++
		}
	}
	if len(order) < 2 {
		return "", "", parseErrorf("found %d language(s), alignment needs two", len(order))
	}

	first, second := pickTopTwo(order, counts)

	srclang := normalizeLang(header.SelectAttrValue("srclang", ""))
	if srclang == second {
		return second, first, nil
	}
	return first, second, nil
}

// pickTopTwo returns the two highest-count codes. order lists codes by
// first appearance; on equal counts the earlier code ranks higher.
func pickTopTwo(order []string, counts map[string]int) (string, string) {
	best, next := "", ""
	for _, code := range order {
		switch {
		case best == "" || counts[code] > counts[best]:
			next = best
			best = code
		case next == "" || counts[code] > counts[next]:
			next = code
		}
	}
	return best, next
}

// tuvLang returns the normalized language of a variant. TMX 1.4 uses
// xml:lang; older files carry a plain lang attribute.
func tuvLang(tuv *etree.Element) string {
	code := tuv.SelectAttrValue("xml:lang", "")
	if code == "" {
		code = tuv.SelectAttrValue("lang", "")
	}
	return normalizeLang(code)
}

// segText flattens a <seg> into cell text: character data is entity-decoded
// and child elements (bpt, ept, ph, it, hi, ...) are kept as their literal
// XML so the markup survives editing untouched.
func segText(seg *etree.Element) string {
	if seg == nil {
		return ""
	}
	var b strings.Builder
	for _, tok := range seg.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			b.WriteString(t.Data)
		case *etree.Element:
			b.WriteString(elementString(t))
		}
	}
	return b.String()
}

func elementString(el *etree.Element) string {
	d := etree.NewDocument()
	d.SetRoot(el.Copy())
	s, err := d.WriteToString()
	if err != nil {
		return ""
	}
	return s
}
