package model

import "strings"

// RegisterReq is the public registration body. Role and approval are not
// bindable here; new accounts start as unapproved Employees.
type RegisterReq struct {
	FirstName        string           `json:"firstName" validate:"required,max=100"`
	LastName         string           `json:"lastName" validate:"required,max=100"`
	Email            string           `json:"email" validate:"required,email"`
	Password         string           `json:"password" validate:"required,strongpassword"`
	Phone            string           `json:"phone" validate:"omitempty,max=50"`
	Address          Address          `json:"address"`
	EmergencyContact EmergencyContact `json:"emergencyContact"`
	WorkLocation     string           `json:"workLocation" validate:"omitempty,max=200"`
	Occupation       string           `json:"occupation" validate:"omitempty,max=200"`
}

func (r *RegisterReq) Validate() error {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

type LoginReq struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginReq) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}
