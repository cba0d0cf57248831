package model

import "time"

type Address struct {
	Street     string `json:"street" bson:"street"`
	City       string `json:"city" bson:"city"`
	Province   string `json:"province" bson:"province"`
	Country    string `json:"country" bson:"country"`
	PostalCode string `json:"postalCode" bson:"postalCode"`
}

type EmergencyContact struct {
	Name     string `json:"name" bson:"name"`
	Relation string `json:"relation" bson:"relation"`
	Phone    string `json:"phone" bson:"phone"`
}

// Employee is one organizational identity. Records are never removed;
// termination is a status transition.
type Employee struct {
	ID               string           `json:"id" bson:"_id"`
	FirstName        string           `json:"firstName" bson:"firstName"`
	LastName         string           `json:"lastName" bson:"lastName"`
	Email            string           `json:"email" bson:"email"`
	PasswordHash     string           `json:"-" bson:"password"`
	Phone            string           `json:"phone" bson:"phone"`
	Address          Address          `json:"address" bson:"address"`
	EmergencyContact EmergencyContact `json:"emergencyContact" bson:"emergencyContact"`
	ProfilePhoto     string           `json:"profilePhoto" bson:"profilePhoto"`
	Resume           string           `json:"resume" bson:"resume"`
	WorkLocation     string           `json:"workLocation" bson:"workLocation"`
	EmploymentStatus EmploymentStatus `json:"employmentStatus" bson:"employmentStatus"`
	Occupation       string           `json:"occupation" bson:"occupation"`
	Role             Role             `json:"role" bson:"role"`
	Approved         bool             `json:"approved" bson:"approved"`

	// Version is bumped on every authorized update and checked on save.
	Version   int64     `json:"version" bson:"version"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Actor returns the identity this employee acts as.
func (e *Employee) Actor() Actor {
	return Actor{ID: e.ID, Role: e.Role}
}

// Party returns the display identity used in log views.
func (e *Employee) Party() *Party {
	return &Party{ID: e.ID, FirstName: e.FirstName, LastName: e.LastName, Email: e.Email}
}

// Value returns the current value of f. Password yields the stored hash.
func (e Employee) Value(f Field) any {
	switch f {
	case FieldFirstName:
		return e.FirstName
	case FieldLastName:
		return e.LastName
	case FieldEmail:
		return e.Email
	case FieldPassword:
		return e.PasswordHash
	case FieldPhone:
		return e.Phone
	case FieldAddress:
		return e.Address
	case FieldEmergencyContact:
		return e.EmergencyContact
	case FieldProfilePhoto:
		return e.ProfilePhoto
	case FieldResume:
		return e.Resume
	case FieldWorkLocation:
		return e.WorkLocation
	case FieldEmploymentStatus:
		return e.EmploymentStatus
	case FieldOccupation:
		return e.Occupation
	case FieldRole:
		return e.Role
	case FieldApproved:
		return e.Approved
	}
	return nil
}

// With returns a copy of e with f set to v. Values of the wrong type
// leave the copy unchanged; ParsePatch guarantees the types.
func (e Employee) With(f Field, v any) Employee {
	switch f {
	case FieldFirstName:
		setString(&e.FirstName, v)
	case FieldLastName:
		setString(&e.LastName, v)
	case FieldEmail:
		setString(&e.Email, v)
	case FieldPassword:
		setString(&e.PasswordHash, v)
	case FieldPhone:
		setString(&e.Phone, v)
	case FieldAddress:
		if a, ok := v.(Address); ok {
			e.Address = a
		}
	case FieldEmergencyContact:
		if c, ok := v.(EmergencyContact); ok {
			e.EmergencyContact = c
		}
	case FieldProfilePhoto:
		setString(&e.ProfilePhoto, v)
	case FieldResume:
		setString(&e.Resume, v)
	case FieldWorkLocation:
		setString(&e.WorkLocation, v)
	case FieldEmploymentStatus:
		if s, ok := v.(EmploymentStatus); ok {
			e.EmploymentStatus = s
		}
	case FieldOccupation:
		setString(&e.Occupation, v)
	case FieldRole:
		if r, ok := v.(Role); ok {
			e.Role = r
		}
	case FieldApproved:
		if b, ok := v.(bool); ok {
			e.Approved = b
		}
	}
	return e
}

// Actor is the identity performing a mutation or query.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

// IsSelf reports whether the actor targets its own record.
func (a Actor) IsSelf(targetID string) bool {
	return a.ID == targetID
}

// Party is the display form of an identity in log views.
type Party struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func setString(dst *string, v any) {
	if s, ok := v.(string); ok {
		*dst = s
	}
}
