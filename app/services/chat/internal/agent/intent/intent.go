package intent

// Intent is the classified purpose of a single customer message.
type Intent string

const (
	OrderTaking    Intent = "order_taking"
	Confirmation   Intent = "confirmation"
	Checkout       Intent = "checkout"
	PaymentMethod  Intent = "payment_method"
	CartManagement Intent = "cart_management"
	OrderStatus    Intent = "order_status"
	Sales          Intent = "sales"
	Refund         Intent = "refund"
	Support        Intent = "support"
	General        Intent = "general"
	Error          Intent = "error"
)
