package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type LoanStatus string

const (
	LoanStatusActive   LoanStatus = "ACTIVE"
	LoanStatusReturned LoanStatus = "RETURNED"
	// LoanStatusOverdue is derived at read time, never persisted.
	LoanStatusOverdue LoanStatus = "OVERDUE"
)

type Book struct {
	ID              int    `json:"id" db:"id"`
	Title           string `json:"title" db:"title"`
	Author          string `json:"author" db:"author"`
	ISBN            string `json:"isbn" db:"isbn"`
	TotalCopies     int    `json:"totalCopies" db:"total_copies"`
	AvailableCopies int    `json:"availableCopies" db:"available_copies"`
}

type User struct {
	ID       int    `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Email    string `json:"email" db:"email"`
	IsActive bool   `json:"isActive" db:"is_active"`
}

type Loan struct {
	ID                 int             `json:"id" db:"id"`
	UserID             int             `json:"userId" db:"user_id"`
	BookID             int             `json:"bookId" db:"book_id"`
	LoanDate           time.Time       `json:"loanDate" db:"loan_date"`
	ExpectedReturnDate time.Time       `json:"expectedReturnDate" db:"expected_return_date"`
	ReturnDate         *time.Time      `json:"returnDate,omitempty" db:"return_date"`
	Status             LoanStatus      `json:"status" db:"status"`
	FineAmount         decimal.Decimal `json:"fineAmount" db:"fine_amount"`
}

// EffectiveStatus derives OVERDUE for active loans past their due date.
// Persisted status only ever transitions ACTIVE -> RETURNED.
func (l Loan) EffectiveStatus(now time.Time) LoanStatus {
	if l.Status == LoanStatusActive && now.After(l.ExpectedReturnDate) {
		return LoanStatusOverdue
	}
	return l.Status
}

// LoanWithRefs carries the joined borrower/book fields the dispatcher needs
// to compose notification payloads without extra round trips.
type LoanWithRefs struct {
	Loan
	UserName  string `db:"user_name"`
	UserEmail string `db:"user_email"`
	BookTitle string `db:"book_title"`
}

type Paging struct {
	Page          int `json:"page"`
	PageSize      int `json:"pageSize"`
	TotalElements int `json:"totalElements"`
}

type ListBooks struct {
	Paging
	Items []Book `json:"items"`
}

type ListLoans struct {
	Paging
	Items []Loan `json:"items"`
}

type BookQuery struct {
	Title  string
	Author string
	Page   int
	Size   int
}

type LoanFilter struct {
	UserID int
	Status LoanStatus
	Page   int
	Size   int
}

type CreateLoanRequest struct {
	UserID int `json:"userId" validate:"required,gt=0"`
	BookID int `json:"bookId" validate:"required,gt=0"`
}

type ReturnLoanResponse struct {
	Message     string `json:"message"`
	LoanID      int    `json:"loanId"`
	FineAmount  string `json:"fineAmount"`
	DaysOverdue int    `json:"daysOverdue"`
}

type MostBorrowedBook struct {
	BookID    int    `json:"bookId" db:"book_id"`
	Title     string `json:"title" db:"title"`
	Author    string `json:"author" db:"author"`
	LoanCount int    `json:"loanCount" db:"loan_count"`
}

// DashboardSummary aggregates the catalog and circulation indicators shown on
// the admin dashboard. Overdue counts use the derived definition: ACTIVE rows
// past their due date.
type DashboardSummary struct {
	TotalBooks   int                `json:"totalBooks"`
	TotalUsers   int                `json:"totalUsers"`
	ActiveLoans  int                `json:"activeLoans"`
	OverdueLoans int                `json:"overdueLoans"`
	TotalFines   decimal.Decimal    `json:"totalFines"`
	RecentBooks  []Book             `json:"recentBooks"`
	MostBorrowed []MostBorrowedBook `json:"mostBorrowedBooks"`
}

type NotificationChannel string

const (
	ChannelEmail   NotificationChannel = "email"
	ChannelWebhook NotificationChannel = "webhook"
)

type NotificationType string

const (
	NotificationDueSoon NotificationType = "due_soon"
	NotificationOverdue NotificationType = "overdue"
)

type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
)

// JSONMap is a jsonb column payload.
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(src any) error {
	if src == nil {
		*m = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.Errorf("jsonb scan: unsupported type %T", src)
	}
	return json.Unmarshal(data, m)
}

type Notification struct {
	ID        int64               `json:"id" db:"id"`
	UserID    *int                `json:"userId,omitempty" db:"user_id"`
	LoanID    *int                `json:"loanId,omitempty" db:"loan_id"`
	Channel   NotificationChannel `json:"channel" db:"channel"`
	Type      NotificationType    `json:"type" db:"notification_type"`
	Status    NotificationStatus  `json:"status" db:"status"`
	Subject   string              `json:"subject" db:"subject"`
	Payload   JSONMap             `json:"payload,omitempty" db:"payload"`
	Error     *string             `json:"error,omitempty" db:"error"`
	CreatedAt time.Time           `json:"createdAt" db:"created_at"`
	SentAt    *time.Time          `json:"sentAt,omitempty" db:"sent_at"`
}

type DispatchRequest struct {
	Channels []string `json:"channels"`
	Limit    int      `json:"limit" validate:"omitempty,gte=0"`
}

type DispatchResult struct {
	DueSoonSent int `json:"dueSoonSent"`
	OverdueSent int `json:"overdueSent"`
	TotalSent   int `json:"totalSent"`
}

const (
	ActionLoanCreated  = "loan.created"
	ActionLoanReturned = "loan.returned"
	ActionLoanExtended = "loan.extended"
)

// CirculationEvent is published to kafka after a committed circulation
// mutation and consumed into the audit log.
type CirculationEvent struct {
	EventID     string    `json:"eventId"`
	Action      string    `json:"action"`
	ActorUserID int       `json:"actorUserId"`
	LoanID      int       `json:"loanId"`
	BookID      int       `json:"bookId"`
	OccurredAt  time.Time `json:"occurredAt"`
	Metadata    JSONMap   `json:"metadata,omitempty"`
}

type AuditRecord struct {
	ID          int64     `json:"id" db:"id"`
	ActorUserID *int      `json:"actorUserId,omitempty" db:"actor_user_id"`
	Action      string    `json:"action" db:"action"`
	EntityType  string    `json:"entityType" db:"entity_type"`
	EntityID    *int      `json:"entityId,omitempty" db:"entity_id"`
	Level       string    `json:"level" db:"level"`
	Message     string    `json:"message" db:"message"`
	Metadata    JSONMap   `json:"metadata,omitempty" db:"metadata"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
