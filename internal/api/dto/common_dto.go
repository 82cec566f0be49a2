package dto

// ==============================================
// COMMON RESPONSE DTOs
// ==============================================

// APIResponse is the envelope every endpoint responds with
type APIResponse struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func NewAPIResponse(status int, data interface{}, message string) APIResponse {
	if data == nil {
		data = struct{}{}
	}
	return APIResponse{
		Status:  status,
		Message: message,
		Data:    data,
	}
}

// PaginationRequest - Common pagination parameters
type PaginationRequest struct {
	Page    int `form:"page" binding:"omitempty,min=1"`
	PerPage int `form:"per_page" binding:"omitempty,min=1,max=100"`
}

// PaginationMeta - Pagination metadata
type PaginationMeta struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}
