package domain

import "errors"

// Domain errors (no external dependencies).
//
// The QR generation pipeline itself never surfaces an error to the caller:
// every stage has a total fallback, and conditions like a missing certificate
// or a failed capability probe only steer mode selection. These sentinels
// exist for the collaborators around the core (refund validation, input
// decoding, configuration) and for logging.
var (
	ErrNotFound               = errors.New("resource not found")
	ErrInvalidInput           = errors.New("invalid input")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrForbidden              = errors.New("access denied")
	ErrSellerIdentityMissing  = errors.New("seller name and VAT number are required")
	ErrRefundReasonRequired   = errors.New("refund reason is required for ZATCA compliance")
	ErrCertificateUnavailable = errors.New("no certificate material available")
	ErrCapabilityUnavailable  = errors.New("local generation capability unavailable")
)
