package pptx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// WriteCombined merges decks into a single package at path, in the order
// given, atomically replacing any existing file. Slide XML is carried over
// byte for byte; only relationship parts are rewritten, with each source
// deck's media copied under a per-deck namespace so names never collide.
func WriteCombined(path, title string, decks []*DeckFile) error {
	if len(decks) == 0 {
		return errors.New("no decks to combine")
	}
	return writeAtomic(path, func(file *os.File) error {
		return writeCombined(file, title, decks)
	})
}

func writeCombined(w io.Writer, title string, decks []*DeckFile) error {
	zw := zip.NewWriter(w)

	total := 0
	for _, d := range decks {
		total += len(d.Slides)
	}

	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", contentTypesXML(total)},
		{"_rels/.rels", rootRelsXML()},
		{"docProps/core.xml", corePropsXML(title, time.Now())},
		{"docProps/app.xml", appPropsXML(total)},
		{"ppt/presentation.xml", presentationXMLPart(total, decks[0].Width, decks[0].Height)},
		{"ppt/_rels/presentation.xml.rels", presentationRelsXML(total)},
	}
	for _, part := range parts {
		if err := addPart(zw, part.name, part.data); err != nil {
			return err
		}
	}

	static := staticParts()
	for _, name := range staticPartOrder {
		if err := addPart(zw, name, static[name]); err != nil {
			return err
		}
	}

	slideNum := 0
	for deckIndex, d := range decks {
		written := make(map[string]bool)
		for _, slide := range d.Slides {
			slideNum++
			if err := addPart(zw, fmt.Sprintf("ppt/slides/slide%d.xml", slideNum), slide.XML); err != nil {
				return err
			}
			if err := addPart(zw, fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", slideNum), combinedSlideRelsXML(deckIndex, slide.Media)); err != nil {
				return err
			}
			for _, media := range slide.Media {
				name := namespacedMediaName(deckIndex, media.Name)
				if written[name] {
					continue
				}
				written[name] = true
				if err := addPart(zw, "ppt/media/"+name, media.Data); err != nil {
					return err
				}
			}
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize deck package: %w", err)
	}
	return nil
}

// combinedSlideRelsXML rebuilds a slide's relationships against the merged
// package: same relationship IDs as the source slide so its XML stays
// valid, new media targets under the deck's namespace.
func combinedSlideRelsXML(deckIndex int, media []Media) []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	fmt.Fprintf(&buf, `<Relationships xmlns=%q>`, nsPackageRels)
	fmt.Fprintf(&buf, `<Relationship Id="rId1" Type=%q Target="../slideLayouts/slideLayout1.xml"/>`, relTypeSlideLayout)
	for _, m := range media {
		fmt.Fprintf(&buf, `<Relationship Id=%q Type=%q Target="../media/%s"/>`, m.RelID, relTypeImage, namespacedMediaName(deckIndex, m.Name))
	}
	buf.WriteString(`</Relationships>`)
	return buf.Bytes()
}

func namespacedMediaName(deckIndex int, name string) string {
	return fmt.Sprintf("m%d_%s", deckIndex, name)
}
