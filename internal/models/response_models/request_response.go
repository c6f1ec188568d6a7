package response_models

type RequestParty struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type RequestListItem struct {
	ID            string       `json:"id"`
	Type          string       `json:"type"`
	Status        string       `json:"status"`
	CreatedAt     string       `json:"created_at"`
	ClosedAt      string       `json:"closed_at,omitempty"`
	Counterpart   RequestParty `json:"counterpart"`
	MessagesCount int64        `json:"messages_count"`
	LastMessageAt string       `json:"last_message_at,omitempty"`
}

type RequestMessageResponse struct {
	ID        string       `json:"id"`
	Sender    RequestParty `json:"sender"`
	Text      string       `json:"text,omitempty"`
	FilePath  string       `json:"file,omitempty"`
	CreatedAt string       `json:"created_at"`
}

type RequestDetail struct {
	ID        string                   `json:"id"`
	Type      string                   `json:"type"`
	Status    string                   `json:"status"`
	CreatedAt string                   `json:"created_at"`
	ClosedAt  string                   `json:"closed_at,omitempty"`
	Employee  RequestParty             `json:"employee"`
	HR        RequestParty             `json:"hr"`
	Messages  []RequestMessageResponse `json:"messages"`
}

type RequestTypeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
