package services

import (
	"fmt"
	"io"
	"time"

	"stockroom/internal/models"
	"stockroom/internal/pdf"
	"stockroom/internal/repositories"
)

type ReportService struct {
	Products *repositories.ProductRepository
	PDF      pdf.Generator
	now      func() time.Time
}

func NewReportService(products *repositories.ProductRepository, gen pdf.Generator) *ReportService {
	return &ReportService{
		Products: products,
		PDF:      gen,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *ReportService) GetSummary() (*models.InventorySummary, error) {
	products, err := s.Products.List()
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	sum := models.Summarize(products, s.now())
	return &sum, nil
}

// WriteInventoryPDF renders every product with its expiry status into w.
func (s *ReportService) WriteInventoryPDF(w io.Writer) error {
	products, err := s.Products.List()
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	if err := s.PDF.InventoryReport(w, pdf.ReportData{Products: products, GeneratedAt: s.now()}); err != nil {
		return fmt.Errorf("render inventory report: %w", err)
	}
	return nil
}
