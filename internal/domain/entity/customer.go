package entity

// Customer classifications per the company-type of the attached partner.
const (
	ClassificationIndividual   = "individual"
	ClassificationOrganization = "organization"
)

// CashCustomerName is the literal used when no customer is attached to the
// sale (walk-in cash customer).
const CashCustomerName = "Cash Customer"

// Customer is the optional buyer attached to a POS order.
type Customer struct {
	ID             string
	Name           string
	TaxID          string
	Classification string // ClassificationIndividual | ClassificationOrganization
}
