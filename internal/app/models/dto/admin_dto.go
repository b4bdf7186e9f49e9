package dto

// UpdateUserRoleRequest changes a user's role
type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=STUDENT PROFESSIONAL COMPANY ADMIN"`
}

// UpdateUserStatusRequest activates or deactivates a user account
type UpdateUserStatusRequest struct {
	IsActive bool `json:"isActive"`
}

// BulkIDsRequest carries the target identifiers of a bulk operation
type BulkIDsRequest struct {
	IDs []int64 `json:"ids" binding:"required,min=1,max=100,dive,min=1"`
}

// BulkStatusRequest carries targets and the status to apply to each
type BulkStatusRequest struct {
	IDs    []int64 `json:"ids" binding:"required,min=1,max=100,dive,min=1"`
	Status string  `json:"status" binding:"required"`
}

// BulkItemError describes a single failed item in a bulk operation
type BulkItemError struct {
	ID    int64  `json:"id"`
	Error string `json:"error"`
}

// BulkOperationResponse reports per-item outcomes of a bulk operation.
// One item failing never aborts the rest.
type BulkOperationResponse struct {
	Succeeded []int64         `json:"succeeded"`
	Failed    []BulkItemError `json:"failed"`
}

// NewBulkOperationResponse creates an empty bulk result with non-nil slices
func NewBulkOperationResponse() *BulkOperationResponse {
	return &BulkOperationResponse{
		Succeeded: make([]int64, 0),
		Failed:    make([]BulkItemError, 0),
	}
}

// AddSuccess records a successfully processed item
func (r *BulkOperationResponse) AddSuccess(id int64) {
	r.Succeeded = append(r.Succeeded, id)
}

// AddFailure records a failed item with its reason
func (r *BulkOperationResponse) AddFailure(id int64, err error) {
	r.Failed = append(r.Failed, BulkItemError{ID: id, Error: err.Error()})
}
