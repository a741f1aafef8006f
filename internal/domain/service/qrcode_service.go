package service

// QRCodeService defines the interface for trainer invite QR codes.
type QRCodeService interface {
	// GenerateInviteQR renders the invite link for a trainer username as a PNG QR code.
	GenerateInviteQR(username string) ([]byte, error)

	// ParseInviteLink extracts the trainer username from an invite link.
	ParseInviteLink(link string) (string, error)
}
