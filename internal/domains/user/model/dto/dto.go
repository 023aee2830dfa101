package dto

import (
	"pomade/internal/domains/user/model"
	"pomade/shared/constant"
)

// ProfileResponse is the directory payload consumed by sibling services.
// Field names are part of the directory contract and stay camelCase.
type ProfileResponse struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role"`
	CreatedAt   string `json:"createdAt"`
}

func (r *ProfileResponse) FromModel(mod model.User) {
	r.Name = mod.Name
	r.Email = mod.Email
	r.PhoneNumber = mod.PhoneNumber
	r.Role = mod.Role
	r.CreatedAt = mod.CreatedAt.Format(constant.DateFormat)
}
