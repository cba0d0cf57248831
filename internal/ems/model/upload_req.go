package model

import "strings"

// UploadReq carries the query part of POST /api/employees/:id/upload.
type UploadReq struct {
	ID   string `param:"id" validate:"required"`
	Type string `query:"type"`
}

func (r *UploadReq) Validate() error {
	r.ID = strings.TrimSpace(r.ID)
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	if r.Type != UploadTypeResume && r.Type != UploadTypeProfile {
		return badRequest("Invalid upload type")
	}
	return nil
}

// Field returns the employee attribute the upload is stored in.
func (r *UploadReq) Field() Field {
	if r.Type == UploadTypeResume {
		return FieldResume
	}
	return FieldProfilePhoto
}
