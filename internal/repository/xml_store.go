package repository

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// XMLStore keeps a collection in a single XML document: a root element with
// one child element per record.
type XMLStore[T any] struct {
	path string
	root string
	item string
}

func NewXMLStore[T any](path, root, item string) RecordStore[T] {
	return &XMLStore[T]{path: path, root: root, item: item}
}

func (s *XMLStore[T]) Load(ctx context.Context) ([]T, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	doc := document[T]{root: s.root, item: s.item}
	if err := xml.NewDecoder(f).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return doc.records, nil
}

func (s *XMLStore[T]) Save(ctx context.Context, records []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.WriteString(tmp, xml.Header); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	enc := xml.NewEncoder(tmp)
	enc.Indent("", "  ")
	if err := enc.Encode(document[T]{root: s.root, item: s.item, records: records}); err != nil {
		tmp.Close()
		return fmt.Errorf("encode %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

type document[T any] struct {
	root    string
	item    string
	records []T
}

func (d document[T]) MarshalXML(enc *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: d.root}}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for i := range d.records {
		if err := enc.EncodeElement(d.records[i], xml.StartElement{Name: xml.Name{Local: d.item}}); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

func (d *document[T]) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	if start.Name.Local != d.root {
		return fmt.Errorf("unexpected root element <%s>, want <%s>", start.Name.Local, d.root)
	}
	d.records = []T{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local != d.item {
				if err := dec.Skip(); err != nil {
					return err
				}
				continue
			}
			var rec T
			if err := dec.DecodeElement(&rec, &el); err != nil {
				return err
			}
			d.records = append(d.records, rec)
		case xml.EndElement:
			return nil
		}
	}
}

var _ RecordStore[struct{}] = (*XMLStore[struct{}])(nil)
