// Package qrcode renders trainer invite links as QR code images.
package qrcode

import (
	"fmt"
	"net/url"
	"strings"

	"coachly/config"
	"coachly/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

const (
	defaultSize          = 256
	defaultInviteBaseURL = "https://coachly.app/invite"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// NewQRCodeService creates a new QR code service instance from configuration.
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	size := defaultSize
	level := qrcode.Medium
	baseURL := defaultInviteBaseURL

	if cfg != nil && cfg.QRCode != nil {
		if cfg.QRCode.Size > 0 {
			size = cfg.QRCode.Size
		}
		level = parseRecoveryLevel(cfg.QRCode.ErrorCorrectionLevel)
		if cfg.QRCode.BaseURL != "" {
			baseURL = strings.TrimRight(cfg.QRCode.BaseURL, "/")
		}
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		baseURL:              baseURL,
	}
}

// parseRecoveryLevel maps the configured error correction level onto the
// library's levels. Both the single-letter and the spelled-out forms are
// accepted; anything else falls back to medium.
func parseRecoveryLevel(errorCorrectionLevel string) qrcode.RecoveryLevel {
	switch strings.ToUpper(errorCorrectionLevel) {
	case "L", "LOW":
		return qrcode.Low
	case "M", "MEDIUM":
		return qrcode.Medium
	case "Q", "HIGH":
		return qrcode.High
	case "H", "HIGHEST":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// GenerateInviteQR renders the invite link for a trainer username as a PNG QR code.
func (s *qrcodeService) GenerateInviteQR(username string) ([]byte, error) {
	link := s.baseURL + "/" + url.PathEscape(username)

	// Generate QR code
	qrCode, err := qrcode.New(link, s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	// Generate PNG image
	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// ParseInviteLink extracts the trainer username from an invite link.
func (s *qrcodeService) ParseInviteLink(link string) (string, error) {
	base, err := url.Parse(s.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid invite base url: %w", err)
	}

	parsed, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("failed to parse invite link: %w", err)
	}

	// The link must point at this service's invite endpoint.
	if parsed.Host != base.Host || !strings.HasPrefix(parsed.Path, base.Path+"/") {
		return "", fmt.Errorf("invite link does not belong to this service")
	}

	username := strings.TrimPrefix(parsed.Path, base.Path+"/")
	if username == "" || strings.Contains(username, "/") {
		return "", fmt.Errorf("invite link does not contain a username")
	}

	return username, nil
}
