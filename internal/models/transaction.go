package models

import (
	"encoding/json"
	"fmt"
	"time"
)

type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "completed"
	StatusPending   TransactionStatus = "pending"
	StatusFailed    TransactionStatus = "failed"
	StatusRefunded  TransactionStatus = "refunded"
)

var TransactionStatuses = []TransactionStatus{StatusCompleted, StatusPending, StatusFailed, StatusRefunded}

type TransactionType string

const (
	TypeSubscription TransactionType = "subscription"
	TypePurchase     TransactionType = "purchase"
	TypeUpgrade      TransactionType = "upgrade"
	TypeRefund       TransactionType = "refund"
)

// TimestampLayout is the ISO-8601 form with millisecond precision and a Z suffix.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Timestamp is a UTC instant serialised with millisecond precision.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Millisecond)}
}

func (t Timestamp) String() string {
	return t.UTC().Format(TimestampLayout)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	*t = NewTimestamp(parsed)
	return nil
}

type Transaction struct {
	ID            string            `json:"id"`
	CustomerName  string            `json:"customerName"`
	CustomerEmail string            `json:"customerEmail"`
	Amount        float64           `json:"amount"`
	Status        TransactionStatus `json:"status"`
	Type          TransactionType   `json:"type"`
	Date          Timestamp         `json:"date"`
	ProductName   string            `json:"productName"`
}

type TransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
	Total        int           `json:"total"`
}

type TransactionStats struct {
	Total         int                       `json:"total"`
	ByStatus      map[TransactionStatus]int `json:"byStatus"`
	TotalAmount   float64                   `json:"totalAmount"`
	AverageAmount float64                   `json:"averageAmount"`
}

// ParseStatus reports whether s names a known transaction status.
func ParseStatus(s string) (TransactionStatus, bool) {
	for _, st := range TransactionStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}
