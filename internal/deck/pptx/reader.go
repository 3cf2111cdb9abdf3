package pptx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Media is one image part referenced by a slide, under the name and
// relationship ID it had in its source package.
type Media struct {
	RelID string
	Name  string
	Data  []byte
}

// SlidePart is one slide read back from a generated deck: the slide XML
// exactly as stored plus the media parts its relationships reference.
type SlidePart struct {
	XML   []byte
	Media []Media
}

// DeckFile is the subset of a generated package needed to merge decks.
type DeckFile struct {
	Path   string
	Width  int64
	Height int64
	Slides []SlidePart
}

type relationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

type relationshipsDoc struct {
	Rels []relationship `xml:"Relationship"`
}

type presentationDoc struct {
	SlideIDs []struct {
		RelID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
	Size struct {
		CX int64 `xml:"cx,attr"`
		CY int64 `xml:"cy,attr"`
	} `xml:"sldSz"`
}

// ReadDeck opens a generated .pptx and recovers its slides in presentation
// order, each with verbatim XML and referenced media.
func ReadDeck(path string) (*DeckFile, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open deck %s: %w", path, err)
	}
	defer zr.Close()

	parts := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		parts[f.Name] = f
	}

	presData, err := readPart(parts, "ppt/presentation.xml")
	if err != nil {
		return nil, err
	}
	var pres presentationDoc
	if err := xml.Unmarshal(presData, &pres); err != nil {
		return nil, fmt.Errorf("parse presentation: %w", err)
	}

	presRels, err := readRelationships(parts, "ppt/_rels/presentation.xml.rels")
	if err != nil {
		return nil, err
	}
	targets := make(map[string]string, len(presRels))
	for _, rel := range presRels {
		targets[rel.ID] = rel.Target
	}

	file := &DeckFile{Path: path, Width: pres.Size.CX, Height: pres.Size.CY}
	for _, slideID := range pres.SlideIDs {
		target, ok := targets[slideID.RelID]
		if !ok {
			return nil, fmt.Errorf("presentation references unknown relationship %s", slideID.RelID)
		}
		slide, err := readSlide(parts, "ppt/"+target)
		if err != nil {
			return nil, err
		}
		file.Slides = append(file.Slides, slide)
	}
	return file, nil
}

func readSlide(parts map[string]*zip.File, partName string) (SlidePart, error) {
	data, err := readPart(parts, partName)
	if err != nil {
		return SlidePart{}, err
	}

	slide := SlidePart{XML: data}
	rels, err := readRelationships(parts, relsPartName(partName))
	if err != nil {
		return SlidePart{}, err
	}
	for _, rel := range rels {
		if rel.Type != relTypeImage {
			continue
		}
		mediaPart := "ppt/" + strings.TrimPrefix(rel.Target, "../")
		mediaData, err := readPart(parts, mediaPart)
		if err != nil {
			return SlidePart{}, err
		}
		slide.Media = append(slide.Media, Media{
			RelID: rel.ID,
			Name:  baseName(rel.Target),
			Data:  mediaData,
		})
	}
	return slide, nil
}

func readRelationships(parts map[string]*zip.File, name string) ([]relationship, error) {
	data, err := readPart(parts, name)
	if err != nil {
		return nil, err
	}
	var doc relationshipsDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return doc.Rels, nil
}

func readPart(parts map[string]*zip.File, name string) ([]byte, error) {
	part, ok := parts[name]
	if !ok {
		return nil, fmt.Errorf("package is missing part %s", name)
	}
	rc, err := part.Open()
	if err != nil {
		return nil, fmt.Errorf("open part %s: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read part %s: %w", name, err)
	}
	return data, nil
}

// relsPartName maps a part name to its relationships part:
// ppt/slides/slide1.xml -> ppt/slides/_rels/slide1.xml.rels.
func relsPartName(partName string) string {
	idx := strings.LastIndex(partName, "/")
	return partName[:idx+1] + "_rels/" + partName[idx+1:] + ".rels"
}

func baseName(target string) string {
	idx := strings.LastIndex(target, "/")
	return target[idx+1:]
}
