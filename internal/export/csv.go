package export

import (
	"encoding/csv"
	"io"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// utf8BOM improves Excel compatibility with non-ASCII characters.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes the grouped lead rows as CSV with a UTF-8 BOM prefix.
func WriteCSV(w io.Writer, leads []model.Lead) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return eris.Wrap(err, "csv export: write bom")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return eris.Wrap(err, "csv export: write header")
	}
	for _, row := range Rows(leads) {
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "csv export: write row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "csv export: flush")
}
