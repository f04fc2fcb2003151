package tmx

import (
	"bytes"
	"strings"

	"github.com/beevik/etree"

	"github.com/kobzarvs/tmxalign/internal/align"
)

// Serialize renders the document as TMX 1.4b: UTF-8 with XML declaration,
// two-space indentation, one <tu> per row in document order, source <tuv>
// first, a <seg> per cell even when empty. Output is canonical, so
// serializing a just-parsed document reproduces a canonical file byte for
// byte.
//
// Indentation never reaches inside <seg>: cell text is written inline,
// verbatim when it still parses as an XML fragment, entity-escaped
// otherwise.
func Serialize(doc *align.Document) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<tmx version=\"" + tmxVersion + "\">\n")
	writeHeader(&b, doc.SourceLang)

	rows := doc.Rows()
	if len(rows) == 0 {
		b.WriteString("  <body/>\n")
	} else {
		b.WriteString("  <body>\n")
		for _, row := range rows {
			b.WriteString("    <tu>\n")
			writeTUV(&b, doc.SourceLang, row.Source)
			writeTUV(&b, doc.TargetLang, row.Target)
			b.WriteString("    </tu>\n")
		}
		b.WriteString("  </body>\n")
	}
	b.WriteString("</tmx>\n")
	return b.Bytes(), nil
}

func writeHeader(b *bytes.Buffer, srclang string) {
	b.WriteString("  <header")
	writeAttr(b, "creationtool", creationTool)
	writeAttr(b, "creationtoolversion", creationToolVersion)
	writeAttr(b, "segtype", "sentence")
	writeAttr(b, "o-tmf", "plaintext")
	writeAttr(b, "adminlang", "en")
	writeAttr(b, "srclang", srclang)
	writeAttr(b, "datatype", "plaintext")
	b.WriteString("/>\n")
}

func writeTUV(b *bytes.Buffer, lang, text string) {
	b.WriteString("      <tuv")
	writeAttr(b, "xml:lang", lang)
	b.WriteString(">\n        ")
	writeSeg(b, text)
	b.WriteString("\n      </tuv>\n")
}

func writeSeg(b *bytes.Buffer, text string) {
	switch {
	case text == "":
		b.WriteString("<seg/>")
	case fragmentSafe(text):
		b.WriteString("<seg>")
		b.WriteString(text)
		b.WriteString("</seg>")
	default:
		b.WriteString("<seg>")
		b.WriteString(escapeText(text))
		b.WriteString("</seg>")
	}
}

func writeAttr(b *bytes.Buffer, name, value string) {
	b.WriteByte(' ')
	b.WriteString(name)
	b.WriteString("=\"")
	b.WriteString(escapeAttr(value))
	b.WriteByte('"')
}

// fragmentSafe reports whether text can be written into a <seg> verbatim:
// either it carries no markup characters at all, or it parses as a
// well-formed XML fragment (inline tags preserved from the source file).
func fragmentSafe(text string) bool {
	if !strings.ContainsAny(text, "<>&") {
		return true
	}
	probe := etree.NewDocument()
	return probe.ReadFromString("<seg>"+text+"</seg>") == nil
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\"", "&quot;")
)

func escapeText(s string) string { return textEscaper.Replace(s) }
func escapeAttr(s string) string { return attrEscaper.Replace(s) }
