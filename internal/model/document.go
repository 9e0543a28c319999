package model

// ProcessingState tracks whether a document has been queried by the
// extraction loop. Documents are queried at most once.
type ProcessingState string

const (
	DocumentPending   ProcessingState = "pending"
	DocumentProcessed ProcessingState = "processed"
)

// DocumentKind identifies how a document's content is handed to the model.
type DocumentKind string

const (
	// KindText is extracted text (PDF text layer or OCR output).
	KindText DocumentKind = "text"
	// KindImage is a raw image sent as a base64 content block.
	KindImage DocumentKind = "image"
	// KindPDF is a raw PDF sent as a base64 document block.
	KindPDF DocumentKind = "pdf"
)

// Document is the opaque handle the ingestion layer produces for one source
// file. The capture core only reads State to select documents and flips it
// to processed after a successful extraction call.
type Document struct {
	ID       string
	Filename string
	Kind     DocumentKind
	State    ProcessingState

	// Content prepared by ingestion: Text for KindText, Data+MediaType for
	// KindImage and KindPDF.
	Text      string
	MediaType string
	Data      []byte
}
