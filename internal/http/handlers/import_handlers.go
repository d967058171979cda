package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	models "github.com/chihabend/gestion-stock/internal/models"
)

type csvRow struct {
	Name        string
	Quantity    int
	Description string
}

func parseCSV(file multipart.File) ([]csvRow, error) {
	reader := csv.NewReader(file)
	headers, err := reader.Read()
	if err != nil {
		return nil, errors.New("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := index["name"]; !ok {
		return nil, errors.New("missing 'name' column")
	}

	column := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var rows []csvRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %v", err)
		}

		quantity, _ := strconv.Atoi(strings.TrimSpace(column(record, "quantity")))
		rows = append(rows, csvRow{
			Name:        column(record, "name"),
			Quantity:    quantity,
			Description: column(record, "description"),
		})
	}
	return rows, nil
}

func validateRow(r csvRow) error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("missing name")
	}
	if r.Quantity < 0 {
		return errors.New("negative quantity")
	}
	return nil
}

// ImportProducts godoc
// @Summary Bulk import products from CSV
// @Description Multipart file upload; columns name, quantity, description. Invalid rows are reported, not fatal.
// @Tags products
// @Accept mpfd
// @Produce json
// @Param file formData file true "CSV file"
// @Success 201 {object} ImportProductsResult
// @Failure 400 {object} ImportProductsResult
// @Router /api/products/import [post]
func (h *Handler) ImportProducts(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "missing file upload")
		return
	}
	defer file.Close()

	records, err := parseCSV(file)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	var imported int
	errorsList := []ProductValidationError{}

	for i, rec := range records {
		rowNum := i + 2 // header is row 1

		if err := validateRow(rec); err != nil {
			errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: %v", rowNum, err)})
			continue
		}

		product := models.Product{
			Name:        rec.Name,
			Quantity:    rec.Quantity,
			Description: rec.Description,
		}
		if _, err := h.products.Create(product); err != nil {
			errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: %v", rowNum, err)})
			continue
		}
		imported++
	}

	if imported > 0 {
		h.invalidate(r.Context())
	}

	status := http.StatusCreated
	if imported == 0 {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, ImportProductsResult{
		ImportedProductsCount: imported,
		Errors:                errorsList,
	})
}
