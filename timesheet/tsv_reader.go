package timesheet

import (
	"fmt"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// TSVReader reads tab-separated .txt/.tsv exports. QuickBooks writes these
// as UTF-16LE with a BOM, so the stream is decoded to UTF-8 first; plain
// UTF-8 files pass through unchanged.
type TSVReader struct {
	SkipRows int
}

func (r *TSVReader) Read(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tsv file %s: %w", path, err)
	}
	defer file.Close()

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	utf8Reader := transform.NewReader(file, decoder)

	return readSeparated(utf8Reader, path, '\t', r.SkipRows)
}
