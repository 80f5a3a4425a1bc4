package dto

import (
	"time"

	"github.com/tallyledger/tally_ledger_app/internal/core/domain"
)

// JournalLineInput is one debit or credit line of a prospective entry.
// Amount is a decimal string with at most four fractional digits; the core
// re-validates it regardless of binding.
type JournalLineInput struct {
	AccountCode string `json:"accountCode" binding:"required"`
	Type        string `json:"type" binding:"required,oneof=DEBIT CREDIT"`
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description"`
}

// PostJournalEntryRequest is the payload for posting a balanced entry.
type PostJournalEntryRequest struct {
	EntryDate  string             `json:"entryDate" binding:"required,datetime=2006-01-02"`
	Memo       string             `json:"memo"`
	SourceType string             `json:"sourceType"`
	SourceRef  string             `json:"sourceRef"`
	CreatedBy  string             `json:"createdBy"`
	Lines      []JournalLineInput `json:"lines" binding:"required,min=2,dive"`
}

// PostJournalEntryResponse returns the identifiers of the posted entry.
type PostJournalEntryResponse struct {
	JournalEntryID string `json:"journalEntryId"`
	JournalNumber  string `json:"journalNumber"`
}

// JournalEntryResponse is the external representation of an entry header.
type JournalEntryResponse struct {
	ID            string    `json:"id"`
	JournalNumber string    `json:"journalNumber"`
	EntryDate     time.Time `json:"entryDate"`
	Status        string    `json:"status"`
	Memo          string    `json:"memo,omitempty"`
	SourceType    string    `json:"sourceType,omitempty"`
	SourceRef     string    `json:"sourceRef,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy,omitempty"`
}

// JournalLineResponse is the external representation of one line.
type JournalLineResponse struct {
	ID          string `json:"id"`
	LineNumber  int    `json:"lineNumber"`
	AccountID   string `json:"accountId"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description,omitempty"`
}

// GetJournalEntryResponse combines a header with its lines.
type GetJournalEntryResponse struct {
	Entry JournalEntryResponse  `json:"entry"`
	Lines []JournalLineResponse `json:"lines"`
}

// ListJournalEntriesParams are the query parameters for entry listing.
type ListJournalEntriesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListJournalEntriesResponse is one page of entries plus the next cursor.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToJournalEntryResponse converts a domain entry header.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		ID:            e.JournalEntryID,
		JournalNumber: e.JournalNumber,
		EntryDate:     e.EntryDate,
		Status:        string(e.Status),
		Memo:          e.Memo,
		SourceType:    e.SourceType,
		SourceRef:     e.SourceRef,
		CreatedAt:     e.CreatedAt,
		CreatedBy:     e.CreatedBy,
	}
}

// ToJournalLineResponses converts domain lines.
func ToJournalLineResponses(lines []domain.JournalLine) []JournalLineResponse {
	responses := make([]JournalLineResponse, len(lines))
	for i, line := range lines {
		responses[i] = JournalLineResponse{
			ID:          line.LineID,
			LineNumber:  line.LineNumber,
			AccountID:   line.AccountID,
			Type:        string(line.LineType),
			Amount:      line.Amount.String(),
			Currency:    line.CurrencyCode,
			Description: line.Description,
		}
	}
	return responses
}
