package types

// ApplicationStatus is the review state of an agent application.
type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "pending"
	ApplicationUnderReview ApplicationStatus = "under_review"
	ApplicationApproved    ApplicationStatus = "approved"
	ApplicationRejected    ApplicationStatus = "rejected"
)

// Valid reports whether s is one of the four review states.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationUnderReview, ApplicationApproved, ApplicationRejected:
		return true
	}
	return false
}

// Terminal reports whether s ends the review workflow.
func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationApproved || s == ApplicationRejected
}

// UserType identifies the portal a principal belongs to.
type UserType string

const (
	UserAgent   UserType = "agent"
	UserCompany UserType = "company"
	UserAdmin   UserType = "admin"
)

func (t UserType) Valid() bool {
	switch t {
	case UserAgent, UserCompany, UserAdmin:
		return true
	}
	return false
}

// UserStatus gates login.
type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserInactive  UserStatus = "inactive"
	UserSuspended UserStatus = "suspended"
)

func (s UserStatus) Valid() bool {
	switch s {
	case UserActive, UserInactive, UserSuspended:
		return true
	}
	return false
}

// JobStatus is the lifecycle state of a signing job.
type JobStatus string

const (
	JobOpen       JobStatus = "open"
	JobFilled     JobStatus = "filled"
	JobInProgress JobStatus = "in_progress"
	JobCompleted  JobStatus = "completed"
	JobCancelled  JobStatus = "cancelled"
)

func (s JobStatus) Valid() bool {
	switch s {
	case JobOpen, JobFilled, JobInProgress, JobCompleted, JobCancelled:
		return true
	}
	return false
}

// PaymentStatus tracks a job's payment independently of its lifecycle.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentHeld     PaymentStatus = "held"
	PaymentPaid     PaymentStatus = "paid"
	PaymentDisputed PaymentStatus = "disputed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentHeld, PaymentPaid, PaymentDisputed:
		return true
	}
	return false
}

// BidStatus is the state of an agent's bid on a job.
type BidStatus string

const (
	BidApplied   BidStatus = "applied"
	BidAccepted  BidStatus = "accepted"
	BidRejected  BidStatus = "rejected"
	BidWithdrawn BidStatus = "withdrawn"
)

func (s BidStatus) Valid() bool {
	switch s {
	case BidApplied, BidAccepted, BidRejected, BidWithdrawn:
		return true
	}
	return false
}
