package types

// InvoiceStatus is the payment state of an invoice as shown on the dashboard
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

func (s InvoiceStatus) Validate() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPaid:
		return true
	}
	return false
}

// StoreErrorPolicy controls how an invoice mutation reacts to a failed
// database statement. Swallow logs the failure and continues with the
// revalidate and redirect flow as if the statement had succeeded.
// Surface halts the flow and returns the failure message to the caller.
type StoreErrorPolicy string

const (
	StoreErrorPolicySwallow StoreErrorPolicy = "swallow"
	StoreErrorPolicySurface StoreErrorPolicy = "surface"
)

func (p StoreErrorPolicy) Validate() bool {
	switch p {
	case StoreErrorPolicySwallow, StoreErrorPolicySurface:
		return true
	}
	return false
}

// DateFormat is the calendar date layout used for invoice issue dates
const DateFormat = "2006-01-02"
