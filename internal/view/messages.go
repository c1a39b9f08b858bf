package view

import (
	"errors"
	"fmt"
	"strings"

	"review_analyzer/internal/domain"
	"review_analyzer/internal/reviewapi"
)

const (
	MsgValidation   = "Mohon isi semua field"
	MsgListFailed   = "Gagal mengambil data ulasan"
	MsgStatsFailed  = "Gagal mengambil statistik"
	MsgSubmitFailed = "Gagal menganalisis ulasan"
	MsgUnreachable  = "Tidak dapat terhubung ke server"
)

// Validate reports the validation message for a submission, or "" when it may be sent.
func Validate(productName, reviewText string) string {
	if strings.TrimSpace(productName) == "" || strings.TrimSpace(reviewText) == "" {
		return MsgValidation
	}
	return ""
}

// ListErrorMessage maps a list failure to what the user sees.
func ListErrorMessage(err error) string { return fetchErrorMessage(err, MsgListFailed) }

// StatsErrorMessage is ListErrorMessage for the stats endpoint.
func StatsErrorMessage(err error) string { return fetchErrorMessage(err, MsgStatsFailed) }

func fetchErrorMessage(err error, fallback string) string {
	var apiErr *reviewapi.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fallback
	}
	return MsgUnreachable
}

// SubmitErrorMessage maps an analyze failure; transport failures keep their cause.
func SubmitErrorMessage(err error) string {
	var apiErr *reviewapi.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return MsgSubmitFailed
	}
	return fmt.Sprintf("%s: %v", MsgUnreachable, err)
}

// FormatConfidence renders c in [0,1] as a percentage with one decimal.
func FormatConfidence(c float64) string {
	return fmt.Sprintf("%.1f%%", c*100)
}

func Confirmation(r domain.Review) string {
	return fmt.Sprintf("✓ Ulasan berhasil dianalisis! Sentimen: %s (%s)", r.Sentiment, FormatConfidence(r.Confidence))
}

// EmptyMessage is shown instead of an empty list.
func EmptyMessage(q Query) string {
	if q.Product != "" || (q.Filter != FilterAll && q.Filter != "") {
		return "Tidak ada ulasan yang cocok dengan filter Anda"
	}
	return "Belum ada ulasan. Mulai dengan menganalisis ulasan pertama!"
}

func PageInfo(page, totalPages int) string {
	return fmt.Sprintf("Halaman %d dari %d", page, totalPages)
}
