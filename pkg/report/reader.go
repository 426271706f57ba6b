package report

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Report is a fully decoded report document.
type Report struct {
	Header
	Chunks []ChunkObject
}

// Read parses a whole report document.
func Read(r io.Reader) (*Report, error) {
	dec := xml.NewDecoder(r)

	var (
		rep      Report
		seenRoot bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case rootElement:
			seenRoot = true
			for _, a := range start.Attr {
				if a.Name.Local == "version" {
					rep.Version = a.Value
				}
			}
		case "creator":
			err = dec.DecodeElement(&rep.Creator, &start)
		case "source":
			err = dec.DecodeElement(&rep.Source, &start)
		case "chunk":
			var obj ChunkObject
			if err = dec.DecodeElement(&obj, &start); err == nil {
				rep.Chunks = append(rep.Chunks, obj)
			}
		}
		if err != nil {
			return nil, err
		}
	}

	if !seenRoot {
		return nil, fmt.Errorf("missing <%s> element", rootElement)
	}
	return &rep, nil
}

// ReadChunks parses and returns all <chunk> elements from the reader.
func ReadChunks(r io.Reader) ([]ChunkObject, error) {
	rep, err := Read(r)
	if err != nil {
		return nil, err
	}
	return rep.Chunks, nil
}
