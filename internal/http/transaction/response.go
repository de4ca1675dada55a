package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/jfarias-dev/carteira/internal/transaction"
)

type transactionResponse struct {
	ID          int64            `json:"id"`
	Value       int64            `json:"value"`
	Type        transaction.Type `json:"type_id"`
	CategoryID  int64            `json:"category_id,omitempty"`
	Description string           `json:"description"`
	ReceiptURL  string           `json:"receipt_url,omitempty"`
	UserID      uuid.UUID        `json:"user_id"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   *time.Time       `json:"updated_at,omitempty"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Value:       tx.Value,
		Type:        tx.Type,
		CategoryID:  tx.CategoryID,
		Description: tx.Description,
		ReceiptURL:  tx.ReceiptURL,
		UserID:      tx.UserID,
		CreatedAt:   tx.CreatedAt,
		UpdatedAt:   tx.UpdatedAt,
	}
}

type pageResponse struct {
	Items   []transactionResponse `json:"items"`
	Total   int                   `json:"total"`
	HasMore bool                  `json:"has_more"`
}

func toPageResponse(page transaction.Page, filter transaction.Filter) pageResponse {
	items := make([]transactionResponse, len(page.Items))
	for i, tx := range page.Items {
		items[i] = toResponse(tx)
	}

	return pageResponse{
		Items:   items,
		Total:   page.Total,
		HasMore: filter.Offset()+len(page.Items) < page.Total,
	}
}
