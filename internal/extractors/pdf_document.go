package extractors

import (
	"fmt"
	"io"
	"os"
	"strconv"

	ltpdf "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// localPDF reads a PDF from disk. The text layer comes from the pdf
// reader kept open for the document's lifetime; image extraction
// reopens the file per page because the image walker consumes the
// whole stream.
type localPDF struct {
	path   string
	file   *os.File
	reader *ltpdf.Reader
}

func openPDFDocument(path string) (pdfDocument, error) {
	f, r, err := ltpdf.Open(path)
	if err != nil {
		return nil, err
	}
	return &localPDF{path: path, file: f, reader: r}, nil
}

func (d *localPDF) NumPages() int {
	return d.reader.NumPage()
}

func (d *localPDF) PageText(page int) (string, error) {
	p := d.reader.Page(page)
	if p.V.IsNull() {
		return "", fmt.Errorf("page %d not present", page)
	}
	return p.GetPlainText(nil)
}

func (d *localPDF) PageImages(page int) ([][]byte, error) {
	f, err := os.Open(d.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	extracted, err := api.ExtractImagesRaw(f, []string{strconv.Itoa(page)}, model.NewDefaultConfiguration())
	if err != nil {
		return nil, err
	}

	var out [][]byte
	for _, pageImages := range extracted {
		for _, img := range pageImages {
			data, err := io.ReadAll(img)
			if err != nil {
				continue
			}
			out = append(out, data)
		}
	}
	return out, nil
}

func (d *localPDF) Close() error {
	return d.file.Close()
}
