package episode

type MessageResp struct {
	Message string `json:"message"`
}

type ErrorResp struct {
	Error string `json:"error"`
}
