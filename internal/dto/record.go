package dto

// CreateRecordRequest is the JSON body for POST /records.
type CreateRecordRequest struct {
	Remark string `json:"remark" binding:"required"`
}

// UpdateRecordRequest is the JSON body for PATCH /records/:id.
// A nil remark means the field was not supplied.
type UpdateRecordRequest struct {
	Remark *string `json:"remark"`
}

// RecordResponse is the public record shape. Field names are identical
// for both backends, and the date is rendered as "YYYY-MM-DD HH:mm:ss".
type RecordResponse struct {
	ID     string `json:"id"`
	Remark string `json:"remark"`
	Date   string `json:"date"`
}

// Pagination describes the page of a list response.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// ListRecordsResponse is the envelope for GET /records.
type ListRecordsResponse struct {
	Data       []RecordResponse `json:"data"`
	Pagination Pagination       `json:"pagination"`
}
