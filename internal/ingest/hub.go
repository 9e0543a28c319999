package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pagoandino/capture-cli/internal/model"
	"github.com/pagoandino/capture-cli/internal/ocr"
)

// PDFMode selects how PDF files reach the extraction call.
const (
	PDFModeText   = "text"   // pdftotext or OCR provider first, send plain text
	PDFModeNative = "native" // send the PDF bytes as a document block
)

// Hub loads documents from a source directory. The directory is the only
// source of new work between iterations; files already loaded are never
// loaded again, so an ID is stable for the life of a run.
type Hub struct {
	dir       string
	pdfMode   string
	extractor ocr.Extractor

	docs []*model.Document
	seen map[string]bool
}

// NewHub creates a Hub over dir. extractor may be nil when pdfMode is
// native.
func NewHub(dir, pdfMode string, extractor ocr.Extractor) *Hub {
	if pdfMode == "" {
		pdfMode = PDFModeText
	}
	return &Hub{
		dir:       dir,
		pdfMode:   pdfMode,
		extractor: extractor,
		seen:      make(map[string]bool),
	}
}

// Documents returns every document loaded so far, in load order.
func (h *Hub) Documents() []*model.Document { return h.docs }

// Count returns the number of loaded documents.
func (h *Hub) Count() int { return len(h.docs) }

// Refresh scans the source directory and loads any file not seen before.
// Unsupported types are skipped with a warning; a file that fails to load
// is logged and skipped without aborting the scan.
func (h *Hub) Refresh(ctx context.Context) error {
	zap.L().Info("iniciando análisis de archivos", zap.String("dir", h.dir))

	paths, err := filepath.Glob(filepath.Join(h.dir, "*"))
	if err != nil {
		return eris.Wrapf(err, "ingest: scan source dir %s", h.dir)
	}

	for _, path := range paths {
		filename := filepath.Base(path)
		if h.seen[filename] {
			continue
		}

		doc, err := h.loadFile(ctx, path)
		if err != nil {
			zap.L().Error("error procesando archivo",
				zap.String("path", path),
				zap.Error(err),
			)
			continue
		}
		if doc == nil {
			continue
		}

		h.seen[filename] = true
		h.docs = append(h.docs, doc)
		zap.L().Info("documento cargado",
			zap.String("filename", filename),
			zap.String("kind", string(doc.Kind)),
		)
	}

	return nil
}

func (h *Hub) loadFile(ctx context.Context, path string) (*model.Document, error) {
	filename := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".pdf":
		return h.loadPDF(ctx, path, filename)
	case ".jpg", ".jpeg":
		return loadImage(path, filename, "image/jpeg")
	case ".png":
		return loadImage(path, filename, "image/png")
	case ".txt":
		return loadText(path, filename)
	default:
		zap.L().Warn("tipo de archivo no soportado", zap.String("path", path))
		return nil, nil
	}
}

func (h *Hub) loadPDF(ctx context.Context, path, filename string) (*model.Document, error) {
	if h.pdfMode == PDFModeNative {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrapf(err, "ingest: read PDF %s", path)
		}
		return &model.Document{
			ID:        docID(filename),
			Filename:  filename,
			Kind:      model.KindPDF,
			State:     model.DocumentPending,
			MediaType: "application/pdf",
			Data:      data,
		}, nil
	}

	if h.extractor == nil {
		return nil, eris.New("ingest: text pdf mode requires an OCR extractor")
	}
	text, err := h.extractor.ExtractText(ctx, path)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: extract text from %s", path)
	}
	if strings.TrimSpace(text) == "" {
		return nil, eris.Errorf("ingest: no text could be extracted from %s", path)
	}

	return &model.Document{
		ID:       docID(filename),
		Filename: filename,
		Kind:     model.KindText,
		State:    model.DocumentPending,
		Text:     text,
	}, nil
}

func loadImage(path, filename, mediaType string) (*model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: read image %s", path)
	}
	return &model.Document{
		ID:        docID(filename),
		Filename:  filename,
		Kind:      model.KindImage,
		State:     model.DocumentPending,
		MediaType: mediaType,
		Data:      data,
	}, nil
}

func loadText(path, filename string) (*model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: read text file %s", path)
	}
	return &model.Document{
		ID:       docID(filename),
		Filename: filename,
		Kind:     model.KindText,
		State:    model.DocumentPending,
		Text:     string(data),
	}, nil
}

func docID(filename string) string {
	return "doc_" + filename
}
