package model

// ErrorResponse for consistent error handling
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`

	// Set on field-level authorization rejections.
	AllowedOnlyByAdmin []Field `json:"allowedOnlyByAdmin,omitempty"`
	AllowedFields      []Field `json:"allowedFields,omitempty"`
}

func (e *ErrorDetail) Error() string {
	return e.Message
}

func badRequest(msg string) *ErrorDetail {
	return &ErrorDetail{Code: "bad_request", Message: msg}
}

// MessageResponse is the body of operations that only report an outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

// AuthResp is returned by register and login.
type AuthResp struct {
	Token    string       `json:"token"`
	Employee EmployeeInfo `json:"employee"`
}

type EmployeeInfo struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	Approved  bool   `json:"approved"`
}

func NewEmployeeInfo(e *Employee) EmployeeInfo {
	return EmployeeInfo{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
		Role:      e.Role,
		Approved:  e.Approved,
	}
}

// UpdateEmployeeResp is returned by a successful authorized update.
type UpdateEmployeeResp struct {
	Message  string    `json:"message"`
	Employee *Employee `json:"employee"`
	Changes  Changes   `json:"changes"`
}

// ApproveEmployeeResp is returned by the approval endpoint.
type ApproveEmployeeResp struct {
	Message  string    `json:"message"`
	Employee *Employee `json:"employee"`
}

// UploadResp is returned by the upload endpoint.
type UploadResp struct {
	Message string  `json:"message"`
	Path    string  `json:"path"`
	Changes Changes `json:"changes"`
}
