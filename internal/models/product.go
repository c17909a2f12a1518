package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Date is a calendar day. It travels as YYYY-MM-DD in JSON.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return fmt.Errorf("date must be in YYYY-MM-DD format: %w", err)
	}
	*d = parsed
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// Scan accepts what postgres (time.Time) and sqlite (time.Time or text)
// return for a DATE column.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
		return nil
	case string:
		return d.scanText(v)
	case []byte:
		return d.scanText(string(v))
	case nil:
		d.Time = time.Time{}
		return nil
	}
	return fmt.Errorf("cannot scan %T into Date", src)
}

func (d *Date) scanText(s string) error {
	if len(s) < len(DateLayout) {
		return fmt.Errorf("invalid date %q", s)
	}
	parsed, err := ParseDate(s[:len(DateLayout)])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

type Product struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	ExpirationDate Date      `json:"expiration_date"`
	CreatedAt      time.Time `json:"-"`
}

type CreateProductRequest struct {
	Name           string `json:"name" binding:"required"`
	ExpirationDate string `json:"expiration_date" binding:"required"`
}

const (
	StatusExpired      = "expired"
	StatusExpiringSoon = "expiring soon"
	StatusOK           = "ok"
)

// ExpiringSoonWindow is how far ahead a product counts as close to expiry.
const ExpiringSoonWindow = 7 * 24 * time.Hour

// ExpiryStatus classifies the product against the calendar day of now.
func (p Product) ExpiryStatus(now time.Time) string {
	now = now.UTC()
	today := NewDate(now.Year(), now.Month(), now.Day()).Time
	switch exp := p.ExpirationDate.Time; {
	case exp.Before(today):
		return StatusExpired
	case exp.Before(today.Add(ExpiringSoonWindow)):
		return StatusExpiringSoon
	default:
		return StatusOK
	}
}

// InventorySummary counts products by expiry status.
type InventorySummary struct {
	Total        int       `json:"total"`
	Expired      int       `json:"expired"`
	ExpiringSoon int       `json:"expiring_soon"`
	GeneratedAt  time.Time `json:"generated_at"`
}

func Summarize(products []*Product, now time.Time) InventorySummary {
	s := InventorySummary{Total: len(products), GeneratedAt: now.UTC()}
	for _, p := range products {
		switch p.ExpiryStatus(now) {
		case StatusExpired:
			s.Expired++
		case StatusExpiringSoon:
			s.ExpiringSoon++
		}
	}
	return s
}
