package domain

// Order Statuses
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Payment Methods
const (
	PaymentMethodCOD          = "cod"
	PaymentMethodBankTransfer = "bank_transfer"
)

// Unit Types (AC form factors)
const (
	UnitTypeSplit    = "split"
	UnitTypeWindow   = "window"
	UnitTypeCentral  = "central"
	UnitTypePortable = "portable"
	UnitTypeCassette = "cassette"
)

// List Exports for API
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

var PaymentMethods = []string{
	PaymentMethodCOD,
	PaymentMethodBankTransfer,
}

var UnitTypes = []string{
	UnitTypeSplit,
	UnitTypeWindow,
	UnitTypeCentral,
	UnitTypePortable,
	UnitTypeCassette,
}
