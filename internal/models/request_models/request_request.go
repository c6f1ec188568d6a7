package request_models

type CreateRequestRequest struct {
	TypeID string `json:"type_id" binding:"required"`
	HRID   string `json:"hr_id" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

// SendMessageRequest is bound from multipart or JSON; an attachment, when
// present, travels as the "file" part.
type SendMessageRequest struct {
	Text string `form:"text" json:"text"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
