// Package export writes the visible recipes of a session to a spreadsheet,
// as .xlsx or .csv depending on the file extension.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hammamikhairi/petitsplats/internal/display"
	"github.com/hammamikhairi/petitsplats/internal/domain"
)

const sheet = "Recettes"

var header = []string{"id", "nom", "temps (min)", "personnes", "appareil", "ingrédients", "ustensiles"}

func row(r *domain.Recipe) []string {
	ings := make([]string, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		ings[i] = display.IngredientLine(ing)
	}
	return []string{
		strconv.Itoa(r.ID),
		r.Name,
		strconv.Itoa(r.TimeMinutes),
		strconv.Itoa(r.Servings),
		r.Appliance,
		strings.Join(ings, "; "),
		strings.Join(r.Utensils, "; "),
	}
}

// WriteFile picks the format from the extension of path.
func WriteFile(path string, recipes []*domain.Recipe) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return WriteXLSX(path, recipes)
	case ".csv":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		if err := WriteCSV(f, recipes); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	default:
		return fmt.Errorf("unsupported export format %q (use .xlsx or .csv)", filepath.Ext(path))
	}
}

// WriteCSV writes a header line and one record per recipe.
func WriteCSV(w io.Writer, recipes []*domain.Recipe) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range recipes {
		if err := cw.Write(row(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a single-sheet workbook.
func WriteXLSX(path string, recipes []*domain.Recipe) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}

	if err := sw.SetRow("A1", cells(header)); err != nil {
		return err
	}
	for i, r := range recipes {
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(addr, cells(row(r))); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func cells(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
