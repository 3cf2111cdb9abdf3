package pptx

import (
	"bytes"
	_ "embed"
	"encoding/xml"
	"fmt"
	"time"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

const (
	nsDrawing       = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPresentation  = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsPackageRels   = "http://schemas.openxmlformats.org/package/2006/relationships"

	relTypeOfficeDocument = nsRelationships + "/officeDocument"
	relTypeSlideMaster    = nsRelationships + "/slideMaster"
	relTypeSlideLayout    = nsRelationships + "/slideLayout"
	relTypeSlide          = nsRelationships + "/slide"
	relTypeImage          = nsRelationships + "/image"
	relTypeCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relTypeExtendedProps  = nsRelationships + "/extended-properties"
)

//go:embed templates/slideMaster1.xml
var slideMasterXML []byte

//go:embed templates/slideMaster1.xml.rels
var slideMasterRelsXML []byte

//go:embed templates/slideLayout1.xml
var slideLayoutXML []byte

//go:embed templates/slideLayout1.xml.rels
var slideLayoutRelsXML []byte

//go:embed templates/theme1.xml
var themeXML []byte

// staticParts is the master/layout/theme scaffold shared by every package
// this writer produces.
func staticParts() map[string][]byte {
	return map[string][]byte{
		"ppt/slideMasters/slideMaster1.xml":            slideMasterXML,
		"ppt/slideMasters/_rels/slideMaster1.xml.rels": slideMasterRelsXML,
		"ppt/slideLayouts/slideLayout1.xml":            slideLayoutXML,
		"ppt/slideLayouts/_rels/slideLayout1.xml.rels": slideLayoutRelsXML,
		"ppt/theme/theme1.xml":                         themeXML,
	}
}

var staticPartOrder = []string{
	"ppt/slideMasters/slideMaster1.xml",
	"ppt/slideMasters/_rels/slideMaster1.xml.rels",
	"ppt/slideLayouts/slideLayout1.xml",
	"ppt/slideLayouts/_rels/slideLayout1.xml.rels",
	"ppt/theme/theme1.xml",
}

func contentTypesXML(slideCount int) []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	buf.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	buf.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	buf.WriteString(`<Default Extension="jpeg" ContentType="image/jpeg"/>`)
	buf.WriteString(`<Default Extension="png" ContentType="image/png"/>`)
	buf.WriteString(`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>`)
	buf.WriteString(`<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>`)
	buf.WriteString(`<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>`)
	buf.WriteString(`<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>`)
	for i := 1; i <= slideCount; i++ {
		fmt.Fprintf(&buf, `<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, i)
	}
	buf.WriteString(`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>`)
	buf.WriteString(`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>`)
	buf.WriteString(`</Types>`)
	return buf.Bytes()
}

func rootRelsXML() []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	fmt.Fprintf(&buf, `<Relationships xmlns=%q>`, nsPackageRels)
	fmt.Fprintf(&buf, `<Relationship Id="rId1" Type=%q Target="ppt/presentation.xml"/>`, relTypeOfficeDocument)
	fmt.Fprintf(&buf, `<Relationship Id="rId2" Type=%q Target="docProps/core.xml"/>`, relTypeCoreProps)
	fmt.Fprintf(&buf, `<Relationship Id="rId3" Type=%q Target="docProps/app.xml"/>`, relTypeExtendedProps)
	buf.WriteString(`</Relationships>`)
	return buf.Bytes()
}

// presentationXMLPart lists the master and every slide in order. Slide rIds
// start at rId2; rId1 is the master.
func presentationXMLPart(slideCount int, width, height int64) []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	fmt.Fprintf(&buf, `<p:presentation xmlns:a=%q xmlns:r=%q xmlns:p=%q>`, nsDrawing, nsRelationships, nsPresentation)
	buf.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	buf.WriteString(`<p:sldIdLst>`)
	for i := 0; i < slideCount; i++ {
		fmt.Fprintf(&buf, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, 2+i)
	}
	buf.WriteString(`</p:sldIdLst>`)
	fmt.Fprintf(&buf, `<p:sldSz cx="%d" cy="%d"/>`, width, height)
	buf.WriteString(`<p:notesSz cx="6858000" cy="9144000"/>`)
	buf.WriteString(`</p:presentation>`)
	return buf.Bytes()
}

func presentationRelsXML(slideCount int) []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	fmt.Fprintf(&buf, `<Relationships xmlns=%q>`, nsPackageRels)
	fmt.Fprintf(&buf, `<Relationship Id="rId1" Type=%q Target="slideMasters/slideMaster1.xml"/>`, relTypeSlideMaster)
	for i := 1; i <= slideCount; i++ {
		fmt.Fprintf(&buf, `<Relationship Id="rId%d" Type=%q Target="slides/slide%d.xml"/>`, 1+i, relTypeSlide, i)
	}
	buf.WriteString(`</Relationships>`)
	return buf.Bytes()
}

func corePropsXML(title string, now time.Time) []byte {
	stamp := now.UTC().Format(time.RFC3339)
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	fmt.Fprintf(&buf, `<dc:title>%s</dc:title>`, xmlEscape(title))
	buf.WriteString(`<dc:creator>lyricdeck</dc:creator>`)
	buf.WriteString(`<cp:lastModifiedBy>lyricdeck</cp:lastModifiedBy>`)
	fmt.Fprintf(&buf, `<dcterms:created xsi:type="dcterms:W3CDTF">%s</dcterms:created>`, stamp)
	fmt.Fprintf(&buf, `<dcterms:modified xsi:type="dcterms:W3CDTF">%s</dcterms:modified>`, stamp)
	buf.WriteString(`</cp:coreProperties>`)
	return buf.Bytes()
}

func appPropsXML(slideCount int) []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString(`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties" xmlns:vt="http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes">`)
	buf.WriteString(`<Application>lyricdeck</Application>`)
	fmt.Fprintf(&buf, `<Slides>%d</Slides>`, slideCount)
	buf.WriteString(`</Properties>`)
	return buf.Bytes()
}

func xmlEscape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
