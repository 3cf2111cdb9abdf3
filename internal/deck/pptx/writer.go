package pptx

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"lyricdeck/internal/deck"
)

// Write persists the deck at path, atomically replacing any existing file.
// The package is assembled in a temp file beside the target and renamed
// into place.
func Write(d *deck.Deck, path string) error {
	return writeAtomic(path, func(file *os.File) error {
		return writeDeck(file, d)
	})
}

// writeAtomic runs emit against a temp file in the target's directory and
// renames the result over path. The temp file is removed on every failure
// path.
func writeAtomic(path string, emit func(*os.File) error) error {
	tmp := fmt.Sprintf("%s.tmp-%s", path, uuid.NewString()[:8])

	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create deck file: %w", err)
	}

	if err := emit(file); err != nil {
		file.Close()
		os.Remove(tmp)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close deck file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace deck file: %w", err)
	}
	return nil
}

func writeDeck(w io.Writer, d *deck.Deck) error {
	zw := zip.NewWriter(w)

	slideCount := len(d.Slides)
	mediaNames := make([]string, len(d.Images))
	for i, img := range d.Images {
		mediaNames[i] = fmt.Sprintf("image%d.%s", i+1, img.Format)
	}

	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", contentTypesXML(slideCount)},
		{"_rels/.rels", rootRelsXML()},
		{"docProps/core.xml", corePropsXML(d.Name, time.Now())},
		{"docProps/app.xml", appPropsXML(slideCount)},
		{"ppt/presentation.xml", presentationXMLPart(slideCount, d.Width, d.Height)},
		{"ppt/_rels/presentation.xml.rels", presentationRelsXML(slideCount)},
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

	for i, img := range d.Images {
		if err := addPart(zw, "ppt/media/"+mediaNames[i], img.Data); err != nil {
			return err
		}
	}

	for i, slide := range d.Slides {
		relIDs, order := slideRelIDs(slide)
		if err := addPart(zw, fmt.Sprintf("ppt/slides/slide%d.xml", i+1), slideXML(slide, relIDs)); err != nil {
			return err
		}
		if err := addPart(zw, fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1), slideRelsXML(relIDs, order, mediaNames)); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize deck package: %w", err)
	}
	return nil
}

func addPart(zw *zip.Writer, name string, data []byte) error {
	part, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create part %s: %w", name, err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("write part %s: %w", name, err)
	}
	return nil
}
