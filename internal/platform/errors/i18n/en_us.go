package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeOutOfRange              = "OUT_OF_RANGE"
	CodeAlreadyOwned            = "ALREADY_OWNED"
	CodePaymentMismatch         = "PAYMENT_MISMATCH"
	CodeNotOwner                = "NOT_OWNER"
	CodeNoPendingOffer          = "NO_PENDING_OFFER"
	CodeStaleOffer              = "STALE_OFFER"
	CodeCallerRequired          = "CALLER_REQUIRED"
	CodeCallerInvalid           = "CALLER_INVALID"
	CodeLedgerNotCreated        = "LEDGER_NOT_CREATED"
	CodeLedgerAlreadyCreated    = "LEDGER_ALREADY_CREATED"
	CodeLedgerParametersInvalid = "LEDGER_PARAMETERS_INVALID"
	CodeNotFound                = "NOT_FOUND"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		// Ticket flow
		CodeOutOfRange:      "{{if .Index}}Resale offer {{.Index}} does not exist{{else if .TicketID}}Ticket {{.TicketID}} does not exist{{else}}Value out of range{{end}}",
		CodeAlreadyOwned:    "Ticket {{.TicketID}} has already been sold",
		CodePaymentMismatch: "Payment of {{.Paid}} does not match the price of {{.Price}}",
		CodeNotOwner:        "You do not own the required ticket",
		CodeNoPendingOffer:  "There is no swap offer for ticket {{.TicketID}}",
		CodeStaleOffer:      "This offer is no longer valid",

		// Request
		CodeCallerRequired: "A caller account is required",
		CodeCallerInvalid:  "The caller credentials are invalid",

		// Ledger lifecycle
		CodeLedgerNotCreated:        "The ticket ledger has not been created",
		CodeLedgerAlreadyCreated:    "The ticket ledger already exists",
		CodeLedgerParametersInvalid: "Ticket ledger parameters are invalid",

		CodeNotFound: "Resource not found",
	},
}
