package import_excel

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"react-golang/internal/service/importer"
)

const maxUploadSize = 20 << 20 // 20 MiB

type WorkbookImporter interface {
	ImportWorkbook(ctx context.Context, r io.Reader) (int, error)
}

type Response struct {
	Status   string `json:"status"`
	Imported int    `json:"imported"`
}

// ImportExcel принимает .xlsx в multipart-поле "file" и грузит строки
// как заказы.
func ImportExcel(log *slog.Logger, workbooks WorkbookImporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.import_excel.ImportExcel"

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

		file, header, err := r.FormFile("file")
		if err != nil {
			log.Error("missing upload file", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Missing multipart field 'file'", http.StatusBadRequest)
			return
		}
		defer file.Close()

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		count, err := workbooks.ImportWorkbook(ctx, file)
		if err != nil {
			if errors.Is(err, importer.ErrEmptyWorkbook) {
				http.Error(w, "Workbook has no data rows", http.StatusBadRequest)
				return
			}
			log.Error("import failed",
				slog.String("op", op),
				slog.String("filename", header.Filename),
				slog.String("error", err.Error()),
			)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("excel import finished",
			slog.String("filename", header.Filename),
			slog.Int("imported", count),
		)

		render.JSON(w, r, Response{Status: "imported", Imported: count})
	}
}
