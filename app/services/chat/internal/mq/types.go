package mq

// TaskOrderEmail is the asynq task type for the order confirmation mail.
const TaskOrderEmail = "chat:order_email"

// OrderConfirmedEvent is the payload published to Kafka when a chat order
// completes checkout.
type OrderConfirmedEvent struct {
	OrderId       int64   `json:"order_id"`
	OrderNumber   string  `json:"order_number"`
	UserId        int64   `json:"user_id"`
	SessionId     string  `json:"session_id"`
	FinalAmount   float64 `json:"final_amount"`
	PaymentMethod string  `json:"payment_method"`
}

// OrderEmailPayload is the asynq task payload for order confirmation mail.
type OrderEmailPayload struct {
	OrderId     int64  `json:"order_id"`
	OrderNumber string `json:"order_number"`
	UserId      int64  `json:"user_id"`
}
