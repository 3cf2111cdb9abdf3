package pptx

import (
	"bytes"
	"fmt"
	"strings"

	"lyricdeck/internal/deck"
)

// slideRelIDs assigns this slide's relationship IDs to the deck image
// indices it references, in first-use order. rId1 is reserved for the
// layout.
func slideRelIDs(s deck.Slide) (map[int]string, []int) {
	ids := make(map[int]string)
	var order []int
	next := 2
	for _, shape := range s.Shapes {
		if shape.Kind != deck.ShapeImage {
			continue
		}
		if _, ok := ids[shape.Image]; ok {
			continue
		}
		ids[shape.Image] = fmt.Sprintf("rId%d", next)
		order = append(order, shape.Image)
		next++
	}
	return ids, order
}

// slideXML serializes one slide's shape tree. Shape order is preserved, so
// z-order in the deck model survives into the package.
func slideXML(s deck.Slide, relIDs map[int]string) []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	fmt.Fprintf(&buf, `<p:sld xmlns:a=%q xmlns:r=%q xmlns:p=%q>`, nsDrawing, nsRelationships, nsPresentation)
	buf.WriteString(`<p:cSld><p:spTree>`)
	buf.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`)

	id := 2
	for _, shape := range s.Shapes {
		switch shape.Kind {
		case deck.ShapeImage:
			writePicture(&buf, id, relIDs[shape.Image], shape.Box)
		case deck.ShapeText:
			writeTextBox(&buf, id, shape)
		}
		id++
	}

	buf.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)
	return buf.Bytes()
}

func writePicture(buf *bytes.Buffer, id int, relID string, box deck.Box) {
	fmt.Fprintf(buf, `<p:pic><p:nvPicPr><p:cNvPr id="%d" name="Picture %d"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr>`, id, id)
	fmt.Fprintf(buf, `<p:blipFill><a:blip r:embed=%q/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`, relID)
	fmt.Fprintf(buf, `<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`,
		box.X, box.Y, box.Width, box.Height)
}

func writeTextBox(buf *bytes.Buffer, id int, shape deck.Shape) {
	fmt.Fprintf(buf, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="TextBox %d"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`, id, id)
	fmt.Fprintf(buf, `<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:noFill/></p:spPr>`,
		shape.Box.X, shape.Box.Y, shape.Box.Width, shape.Box.Height)

	wrap := "none"
	if shape.Wrap {
		wrap = "square"
	}
	fmt.Fprintf(buf, `<p:txBody><a:bodyPr wrap=%q anchor=%q rtlCol="0"/><a:lstStyle/>`, wrap, shape.Anchor)

	for _, para := range shape.Paragraphs {
		// Soft breaks were expanded to newlines upstream; each physical
		// line becomes its own paragraph.
		for _, line := range strings.Split(para.Text, "\n") {
			writeParagraph(buf, line, para)
		}
	}

	buf.WriteString(`</p:txBody></p:sp>`)
}

func writeParagraph(buf *bytes.Buffer, text string, para deck.Paragraph) {
	fmt.Fprintf(buf, `<a:p><a:pPr algn=%q/>`, para.Alignment)
	bold := ""
	if para.Bold {
		bold = ` b="1"`
	}
	fmt.Fprintf(buf, `<a:r><a:rPr lang="en-US" sz="%d"%s dirty="0"><a:solidFill><a:srgbClr val="%s"/></a:solidFill></a:rPr><a:t>%s</a:t></a:r></a:p>`,
		para.SizePt*100, bold, para.Color.Hex(), xmlEscape(text))
}

// slideRelsXML emits a slide's relationship part: the layout plus one image
// relationship per referenced asset. mediaNames is indexed by deck image
// index.
func slideRelsXML(relIDs map[int]string, order []int, mediaNames []string) []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	fmt.Fprintf(&buf, `<Relationships xmlns=%q>`, nsPackageRels)
	fmt.Fprintf(&buf, `<Relationship Id="rId1" Type=%q Target="../slideLayouts/slideLayout1.xml"/>`, relTypeSlideLayout)
	for _, imageIndex := range order {
		fmt.Fprintf(&buf, `<Relationship Id=%q Type=%q Target="../media/%s"/>`, relIDs[imageIndex], relTypeImage, mediaNames[imageIndex])
	}
	buf.WriteString(`</Relationships>`)
	return buf.Bytes()
}
