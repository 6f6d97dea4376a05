package mimetypes

import (
	"mime"

	"github.com/gabriel-vasile/mimetype"
)

type MIME string

const (
	Unknown     MIME = "unknown"
	OctetStream MIME = "application/octet-stream"
	TextPlain   MIME = "text/plain"
	TextHTML    MIME = "text/html"
	TextCSS     MIME = "text/css"

	ApplicationPDF  MIME = "application/pdf"
	ApplicationJSON MIME = "application/json"
	ApplicationXML  MIME = "application/xml"
	ApplicationZIP  MIME = "application/zip"

	ImagePNG  MIME = "image/png"
	ImageJPEG MIME = "image/jpeg"
	ImageGIF  MIME = "image/gif"
)

// SniffLen is the number of leading bytes inspected by Detect.
const SniffLen = 3072

// Detect returns the media type of a chunk without its parameters.
// Anything that cannot be identified is an octet stream.
func Detect(head []byte) MIME {
	if len(head) > SniffLen {
		head = head[:SniffLen]
	}
	mt, _, err := mime.ParseMediaType(mimetype.Detect(head).String())
	if err != nil {
		return OctetStream
	}
	return MIME(mt)
}

func Matches(detected string, expected MIME) (MIME, bool) {
	mt, _, err := mime.ParseMediaType(detected)
	if err != nil {
		return Unknown, false
	}
	return expected, mt == string(expected)
}
