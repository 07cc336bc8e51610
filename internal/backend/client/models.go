package client

import (
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"time"
)

type PlanStatus string

const (
	PlanActive   PlanStatus = "active"
	PlanInactive PlanStatus = "inactive"
	PlanArchived PlanStatus = "archived"
)

// PlanStatuses is the closed status enumeration of subscription plans.
var PlanStatuses = []string{string(PlanActive), string(PlanInactive), string(PlanArchived)}

type BillingInterval string

const (
	Monthly   BillingInterval = "monthly"
	Quarterly BillingInterval = "quarterly"
	Yearly    BillingInterval = "yearly"
)

var BillingIntervals = []string{string(Monthly), string(Quarterly), string(Yearly)}

type SubscriptionPlan struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	PriceCents  int64           `json:"price_cents" yaml:"price_cents"`
	Currency    string          `json:"currency" yaml:"currency"`
	Interval    BillingInterval `json:"interval" yaml:"interval"`
	Status      PlanStatus      `json:"status" yaml:"status"`
	Features    []string        `json:"features,omitempty" yaml:"features,omitempty"`
	CreatedAt   time.Time       `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" yaml:"updated_at"`
}

func (p SubscriptionPlan) RecordID() string {
	return p.ID
}

// Price formats the plan price with two decimals followed by the currency.
func (p SubscriptionPlan) Price() string {
	sign := ""
	cents := p.PriceCents
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	s := fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
	if c := strings.TrimSpace(p.Currency); c != "" {
		s += " " + strings.ToUpper(c)
	}
	return s
}

// ToggledStatus is the status an activation switches to. Archived plans
// are reactivated.
func (p SubscriptionPlan) ToggledStatus() PlanStatus {
	if p.Status == PlanActive {
		return PlanInactive
	}
	return PlanActive
}

// PlanInput is the writable part of a SubscriptionPlan.
type PlanInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	PriceCents  int64           `json:"price_cents"`
	Currency    string          `json:"currency"`
	Interval    BillingInterval `json:"interval"`
	Status      PlanStatus      `json:"status,omitempty"`
	Features    []string        `json:"features,omitempty"`
}

func (in PlanInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalidInput("plan name is required")
	}
	if in.PriceCents < 0 {
		return invalidInput("plan price cannot be negative")
	}
	if len(strings.TrimSpace(in.Currency)) != 3 {
		return invalidInput("currency must be a 3 letter ISO code, got %q", in.Currency)
	}
	if !slices.Contains(BillingIntervals, string(in.Interval)) {
		return invalidInput("interval must be one of %v, got %q", BillingIntervals, in.Interval)
	}
	if in.Status != "" && !slices.Contains(PlanStatuses, string(in.Status)) {
		return invalidInput("status must be one of %v, got %q", PlanStatuses, in.Status)
	}
	return nil
}

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

var VerificationStatuses = []string{
	string(VerificationPending), string(VerificationApproved), string(VerificationRejected),
}

type VerificationRequest struct {
	ID           string             `json:"id" yaml:"id"`
	UserID       string             `json:"user_id" yaml:"user_id"`
	UserName     string             `json:"user_name" yaml:"user_name"`
	Email        string             `json:"email" yaml:"email"`
	DocumentType string             `json:"document_type" yaml:"document_type"`
	SubmittedAt  time.Time          `json:"submitted_at" yaml:"submitted_at"`
	Status       VerificationStatus `json:"status" yaml:"status"`
	ReviewerNote string             `json:"reviewer_note,omitempty" yaml:"reviewer_note,omitempty"`
}

func (v VerificationRequest) RecordID() string {
	return v.ID
}

// Review is the body of a verification status change.
type Review struct {
	Status VerificationStatus `json:"status"`
	Reason string             `json:"reason,omitempty"`
}

func (r Review) Validate() error {
	switch r.Status {
	case VerificationApproved, VerificationPending:
		return nil
	case VerificationRejected:
		if strings.TrimSpace(r.Reason) == "" {
			return invalidInput("a reason is required to reject a verification request")
		}
		return nil
	default:
		return invalidInput("status must be one of %v, got %q", VerificationStatuses, r.Status)
	}
}

// AccountDeletionRequest is submitted by end users from the public page.
type AccountDeletionRequest struct {
	Email  string `json:"email" form:"email"`
	Reason string `json:"reason,omitempty" form:"reason"`
}

func (r AccountDeletionRequest) Validate() error {
	email := strings.TrimSpace(r.Email)
	// a bare address only, no display name or angle brackets
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return invalidInput("a valid email address is required")
	}
	return nil
}
