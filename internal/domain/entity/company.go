package entity

// Seller is the issuing company as printed on the simplified invoice.
// Address fields feed the UBL supplier party; only Name, VAT and CountryCode
// participate in QR generation and mode selection.
type Seller struct {
	Name                   string
	VAT                    string // VAT registration number (15 digits)
	CountryCode            string // ISO 3166-1 alpha-2; direct mode requires "SA"
	CommercialRegistration string
	Street                 string
	BuildingNumber         string
	District               string
	City                   string
	PostalZone             string
}
