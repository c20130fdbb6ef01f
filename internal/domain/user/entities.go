package user

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("user not found")

const RoleClient = "client"

type User struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

func (u User) IsClient() bool { return u.Role == RoleClient }

type Profile struct {
	ProfileID      string `json:"id_profile"`
	UserID         string `json:"id_user"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
}

func (p Profile) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// PlaceholderProfile stands in when the directory cannot be reached for display data.
func PlaceholderProfile(userID string) Profile {
	return Profile{
		UserID:         userID,
		FirstName:      "Unknown",
		LastName:       "User",
		DocumentType:   "N/A",
		DocumentNumber: "N/A",
		Phone:          "N/A",
		Address:        "N/A",
	}
}

// Directory is the external user/profile service.
// Lookups return ErrNotFound when the service answers 404.
type Directory interface {
	GetUser(ctx context.Context, userID string) (*User, error)
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	GetProfileByDocument(ctx context.Context, documentNumber string) (*Profile, error)
}
