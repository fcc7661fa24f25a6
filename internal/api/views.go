package api

import (
	"time"

	"church-platform/internal/domain"
)

// userView is the public JSON shape of an account. The password hash is
// deliberately absent.
type userView struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Role          string     `json:"role"`
	Status        string     `json:"status"`
	Phone         string     `json:"phone,omitempty"`
	Avatar        *string    `json:"avatar,omitempty"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
	LoginAttempts int        `json:"login_attempts"`
	LockUntil     *time.Time `json:"lock_until,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func userToAPI(u *domain.User) userView {
	return userView{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          string(u.Role),
		Status:        string(u.Status),
		Phone:         u.Phone,
		Avatar:        u.Avatar,
		LastLogin:     u.LastLogin,
		LoginAttempts: u.LoginAttempts,
		LockUntil:     u.LockUntil,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func usersToAPI(users []domain.User) []userView {
	out := make([]userView, len(users))
	for i := range users {
		out[i] = userToAPI(&users[i])
	}
	return out
}

type addressView struct {
	Street   string `json:"street,omitempty"`
	Number   string `json:"number,omitempty"`
	District string `json:"district,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	ZipCode  string `json:"zip_code,omitempty"`
}

type memberView struct {
	ID            string      `json:"id"`
	FirstName     string      `json:"first_name"`
	LastName      string      `json:"last_name"`
	Email         string      `json:"email,omitempty"`
	Phone         string      `json:"phone,omitempty"`
	Mobile        string      `json:"mobile,omitempty"`
	BirthDate     time.Time   `json:"birth_date"`
	Gender        string      `json:"gender"`
	MaritalStatus string      `json:"marital_status"`
	Address       addressView `json:"address"`
	Occupation    string      `json:"occupation,omitempty"`
	Status        string      `json:"status"`
	CreatedBy     string      `json:"created_by"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func memberToAPI(m *domain.Member) memberView {
	return memberView{
		ID:            m.ID,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		Email:         m.Email,
		Phone:         m.Phone,
		Mobile:        m.Mobile,
		BirthDate:     m.BirthDate,
		Gender:        m.Gender,
		MaritalStatus: m.MaritalStatus,
		Address: addressView{
			Street:   m.Address.Street,
			Number:   m.Address.Number,
			District: m.Address.District,
			City:     m.Address.City,
			State:    m.Address.State,
			ZipCode:  m.Address.ZipCode,
		},
		Occupation: m.Occupation,
		Status:     m.Status,
		CreatedBy:  m.CreatedBy,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func membersToAPI(members []domain.Member) []memberView {
	out := make([]memberView, len(members))
	for i := range members {
		out[i] = memberToAPI(&members[i])
	}
	return out
}

type eventView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Location    string    `json:"location"`
	Capacity    int       `json:"capacity"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func eventToAPI(e *domain.Event) eventView {
	return eventView{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Type:        e.Type,
		Category:    e.Category,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		Location:    e.Location,
		Capacity:    e.Capacity,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func eventsToAPI(events []domain.Event) []eventView {
	out := make([]eventView, len(events))
	for i := range events {
		out[i] = eventToAPI(&events[i])
	}
	return out
}

type assetView struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Category   string     `json:"category"`
	AcquiredAt *time.Time `json:"acquired_at,omitempty"`
	ValueCents int64      `json:"value_cents"`
	Condition  string     `json:"condition"`
	Location   string     `json:"location,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	CreatedBy  string     `json:"created_by"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func assetToAPI(a *domain.Asset) assetView {
	return assetView{
		ID:         a.ID,
		Name:       a.Name,
		Category:   a.Category,
		AcquiredAt: a.AcquiredAt,
		ValueCents: a.ValueCents,
		Condition:  a.Condition,
		Location:   a.Location,
		Notes:      a.Notes,
		CreatedBy:  a.CreatedBy,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func assetsToAPI(assets []domain.Asset) []assetView {
	out := make([]assetView, len(assets))
	for i := range assets {
		out[i] = assetToAPI(&assets[i])
	}
	return out
}

type auditView struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	Action       string    `json:"action"`
	Description  string    `json:"description,omitempty"`
	ActorID      string    `json:"actor_id,omitempty"`
	IPAddress    string    `json:"ip_address,omitempty"`
	UserAgent    string    `json:"user_agent,omitempty"`
	ResourceType string    `json:"resource_type,omitempty"`
	ResourceID   string    `json:"resource_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func auditEntriesToAPI(entries []domain.AuditEntry) []auditView {
	out := make([]auditView, len(entries))
	for i, e := range entries {
		out[i] = auditView{
			ID:           e.ID,
			Kind:         string(e.Kind),
			Action:       e.Action,
			Description:  e.Description,
			ActorID:      e.ActorID,
			IPAddress:    e.IPAddress,
			UserAgent:    e.UserAgent,
			ResourceType: e.ResourceType,
			ResourceID:   e.ResourceID,
			CreatedAt:    e.CreatedAt,
		}
	}
	return out
}

type settingView struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedBy string    `json:"updated_by,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

func settingToAPI(s *domain.Setting) settingView {
	return settingView{Key: s.Key, Value: s.Value, UpdatedBy: s.UpdatedBy, UpdatedAt: s.UpdatedAt}
}
