package dto

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
)

type JewelForm struct {
	Name         string
	Category     string
	Description  string
	PricePerHour float64
	FinePerHour  float64
	Count        int

	Image       multipart.File
	ImageHeader *multipart.FileHeader
}

// ParseJewelForm reads the add/edit form. Numeric fields that do not parse are
// reported as errors naming the field. The caller closes Image.
func ParseJewelForm(r *http.Request) (JewelForm, error) {
	f := JewelForm{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Category:    strings.TrimSpace(r.FormValue("category")),
		Description: r.FormValue("description"),
		Count:       1,
	}
	var err error
	if f.PricePerHour, err = parseFloat(r.FormValue("price_per_hour")); err != nil {
		return f, fmt.Errorf("price per hour: %w", err)
	}
	if f.FinePerHour, err = parseFloat(r.FormValue("fine_per_hour")); err != nil {
		return f, fmt.Errorf("fine per hour: %w", err)
	}
	if v := strings.TrimSpace(r.FormValue("count")); v != "" {
		if f.Count, err = strconv.Atoi(v); err != nil {
			return f, fmt.Errorf("count: must be a whole number")
		}
	}
	if r.MultipartForm != nil {
		if file, header, err := r.FormFile("image"); err == nil {
			if header.Filename == "" {
				file.Close()
			} else {
				f.Image, f.ImageHeader = file, header
			}
		}
	}
	return f, nil
}

func parseFloat(v string) (float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("must be a number")
	}
	return n, nil
}
