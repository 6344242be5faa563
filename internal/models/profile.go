package models

import "time"

// Profile: расширение учётной записи с ролью. Идентификатор профиля совпадает с ID пользователя.
type Profile struct {
	User         int64       `json:"user"`
	Username     string      `json:"username"`
	FirstName    string      `json:"first_name"`
	LastName     string      `json:"last_name"`
	Email        string      `json:"email"`
	File         string      `json:"file"`
	Location     string      `json:"location"`
	Tel          string      `json:"tel"`
	Description  string      `json:"description"`
	WorkingHours string      `json:"working_hours"`
	Type         ProfileType `json:"type"`
	CreatedAt    time.Time   `json:"created_at"`
}

// ProfilePatch: частичное обновление профиля. nil означает «не менять».
type ProfilePatch struct {
	FirstName    *string      `json:"first_name"`
	LastName     *string      `json:"last_name"`
	Email        *string      `json:"email" validate:"omitempty,email"`
	File         *string      `json:"file"`
	Location     *string      `json:"location"`
	Tel          *string      `json:"tel"`
	Description  *string      `json:"description"`
	WorkingHours *string      `json:"working_hours"`
	Type         *ProfileType `json:"type"`
}

// ProfileUser: краткие данные пользователя во вложенных проекциях профиля.
type ProfileUser struct {
	PK        int64  `json:"pk"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// BusinessProfile: проекция профиля продавца для списка /profiles/business/.
type BusinessProfile struct {
	User         ProfileUser `json:"user"`
	File         string      `json:"file"`
	Location     string      `json:"location"`
	Tel          string      `json:"tel"`
	Description  string      `json:"description"`
	WorkingHours string      `json:"working_hours"`
	Type         ProfileType `json:"type"`
}

// CustomerProfile: проекция профиля покупателя для списка /profiles/customer/.
type CustomerProfile struct {
	User       ProfileUser `json:"user"`
	File       string      `json:"file"`
	UploadedAt time.Time   `json:"uploaded_at"`
	Type       ProfileType `json:"type"`
}

// AsBusiness строит проекцию продавца.
func (p Profile) AsBusiness() BusinessProfile {
	return BusinessProfile{
		User:         p.userRef(),
		File:         p.File,
		Location:     p.Location,
		Tel:          p.Tel,
		Description:  p.Description,
		WorkingHours: p.WorkingHours,
		Type:         p.Type,
	}
}

// AsCustomer строит проекцию покупателя.
func (p Profile) AsCustomer() CustomerProfile {
	return CustomerProfile{
		User:       p.userRef(),
		File:       p.File,
		UploadedAt: p.CreatedAt,
		Type:       p.Type,
	}
}

func (p Profile) userRef() ProfileUser {
	return ProfileUser{PK: p.User, Username: p.Username, FirstName: p.FirstName, LastName: p.LastName}
}
