package log

const (
	// Request
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"
	FieldClientIP  = "client_ip"

	// Actor (set by the auth middleware)
	FieldUserID   = "user_id"
	FieldUsername = "username"

	// Domain
	FieldPostID         = "post_id"
	FieldConversationID = "conversation_id"
	FieldTargetID       = "target_id"
)
