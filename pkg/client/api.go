package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/U-Health-Project-WS2026/U-Health-FE/pkg/domain"
)

// RegisterRequest is the payload for creating a patient account.
type RegisterRequest struct {
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// UpdateProfileRequest is the payload for editing the patient profile.
// Nil fields are left unchanged server-side.
type UpdateProfileRequest struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	DateOfBirth *string `json:"date_of_birth,omitempty"`
	Address     *string `json:"address,omitempty"`
	InsuranceNo *string `json:"insurance_number,omitempty"`
}

// authResponse is the token envelope returned by login and register.
type authResponse struct {
	Token string `json:"token"`
}

// Login authenticates with email and password. On success the issued
// session token is handed to the session store.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var auth authResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.post(ctx, "/v1/login", body, &auth); err != nil {
		return fmt.Errorf("client.Login: %w", err)
	}
	if auth.Token == "" {
		return fmt.Errorf("client.Login: backend returned no token")
	}
	if err := c.session.Set(auth.Token); err != nil {
		return fmt.Errorf("client.Login: %w", err)
	}
	return nil
}

// Register creates a patient account. Like Login, a successful
// registration stores the issued session token.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	var auth authResponse
	if err := c.post(ctx, "/v1/register", req, &auth); err != nil {
		return fmt.Errorf("client.Register: %w", err)
	}
	if auth.Token == "" {
		return fmt.Errorf("client.Register: backend returned no token")
	}
	if err := c.session.Set(auth.Token); err != nil {
		return fmt.Errorf("client.Register: %w", err)
	}
	return nil
}

// ForgotPassword requests a password-reset mail for the given address.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	if err := c.post(ctx, "/v1/forgot-password", map[string]string{"email": email}, nil); err != nil {
		return fmt.Errorf("client.ForgotPassword: %w", err)
	}
	return nil
}

// ResetPassword consumes a one-time reset token from the mailed deep
// link and sets a new password.
func (c *Client) ResetPassword(ctx context.Context, token, email, password, confirmation string) error {
	body := map[string]string{
		"token":                 token,
		"email":                 email,
		"password":              password,
		"password_confirmation": confirmation,
	}
	if err := c.post(ctx, "/v1/reset-password", body, nil); err != nil {
		return fmt.Errorf("client.ResetPassword: %w", err)
	}
	return nil
}

// ChangePassword updates the password of the authenticated patient.
func (c *Client) ChangePassword(ctx context.Context, current, password, confirmation string) error {
	body := map[string]string{
		"current_password":      current,
		"password":              password,
		"password_confirmation": confirmation,
	}
	if err := c.post(ctx, "/v1/change-current-password", body, nil); err != nil {
		return fmt.Errorf("client.ChangePassword: %w", err)
	}
	return nil
}

// Me returns the authenticated patient's profile.
func (c *Client) Me(ctx context.Context) (*domain.Patient, error) {
	var p domain.Patient
	if err := c.get(ctx, "/v1/patients/me", &p); err != nil {
		return nil, fmt.Errorf("client.Me: %w", err)
	}
	return &p, nil
}

// UpdateMe edits the authenticated patient's profile.
func (c *Client) UpdateMe(ctx context.Context, req UpdateProfileRequest) (*domain.Patient, error) {
	var p domain.Patient
	if err := c.do(ctx, http.MethodPut, "/v1/patients/me", req, &p); err != nil {
		return nil, fmt.Errorf("client.UpdateMe: %w", err)
	}
	return &p, nil
}

// ListSlots fetches the open appointment slots on the clinic calendar.
func (c *Client) ListSlots(ctx context.Context) ([]domain.Slot, error) {
	var slots []domain.Slot
	if err := c.get(ctx, "/v1/patients/bookings", &slots); err != nil {
		return nil, fmt.Errorf("client.ListSlots: %w", err)
	}
	return slots, nil
}

// BookSlot books an open slot by ID and returns the booked appointment.
func (c *Client) BookSlot(ctx context.Context, id uuid.UUID) (*domain.Slot, error) {
	var slot domain.Slot
	if err := c.post(ctx, "/v1/patients/bookings/"+url.PathEscape(id.String()), nil, &slot); err != nil {
		return nil, fmt.Errorf("client.BookSlot: %w", err)
	}
	return &slot, nil
}

// CancelBooking cancels one of the patient's booked appointments.
func (c *Client) CancelBooking(ctx context.Context, id uuid.UUID) error {
	if err := c.post(ctx, "/v1/patients/bookings/cancel/"+url.PathEscape(id.String()), nil, nil); err != nil {
		return fmt.Errorf("client.CancelBooking: %w", err)
	}
	return nil
}

// BookedSlots fetches the patient's own booked appointments.
func (c *Client) BookedSlots(ctx context.Context) ([]domain.Slot, error) {
	var slots []domain.Slot
	if err := c.get(ctx, "/v1/patients/bookings/booked", &slots); err != nil {
		return nil, fmt.Errorf("client.BookedSlots: %w", err)
	}
	return slots, nil
}

// Treatments fetches the patient's full treatment history.
func (c *Client) Treatments(ctx context.Context) ([]domain.Treatment, error) {
	var treatments []domain.Treatment
	if err := c.get(ctx, "/v1/patients/treatments", &treatments); err != nil {
		return nil, fmt.Errorf("client.Treatments: %w", err)
	}
	return treatments, nil
}

// TreatmentsByDate fetches treatments within [from, to], inclusive.
func (c *Client) TreatmentsByDate(ctx context.Context, from, to time.Time) ([]domain.Treatment, error) {
	params := url.Values{}
	params.Set("from", from.Format("2006-01-02"))
	params.Set("to", to.Format("2006-01-02"))

	var treatments []domain.Treatment
	if err := c.get(ctx, "/v1/patients/treatments/date?"+params.Encode(), &treatments); err != nil {
		return nil, fmt.Errorf("client.TreatmentsByDate: %w", err)
	}
	return treatments, nil
}

// Treatment fetches a single treatment record by ID.
func (c *Client) Treatment(ctx context.Context, id uuid.UUID) (*domain.Treatment, error) {
	var t domain.Treatment
	if err := c.get(ctx, "/v1/treatments/"+url.PathEscape(id.String()), &t); err != nil {
		return nil, fmt.Errorf("client.Treatment: %w", err)
	}
	return &t, nil
}
