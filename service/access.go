package service

import "slices"

// AccessService answers admin membership questions for the command surface.
type AccessService struct {
	admin []string
}

func NewAccessService(admin []string) *AccessService {
	return &AccessService{admin: admin}
}

func (a *AccessService) IsAdmin(user string) bool {
	return slices.Contains(a.admin, user)
}
