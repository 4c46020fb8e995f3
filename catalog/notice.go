package catalog

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	// OperationAddItem identifies AddItem in notices, logs, metrics and spans.
	OperationAddItem = "AddItem"

	// OperationRemoveByIdentifier identifies RemoveByIdentifier.
	OperationRemoveByIdentifier = "RemoveByIdentifier"

	// OperationRegisterReader identifies RegisterReader.
	OperationRegisterReader = "RegisterReader"

	// OperationLendItem identifies Lend.
	OperationLendItem = "LendItem"

	// OperationReturnItem identifies ReturnItem.
	OperationReturnItem = "ReturnItem"

	// OperationListAvailable identifies ListAvailable.
	OperationListAvailable = "ListAvailable"

	// OperationListBorrowed identifies ListBorrowed.
	OperationListBorrowed = "ListBorrowed"
)

// Notice is the informational report of a rejected operation.
// It carries everything needed to tell the caller what was rejected and why.
type Notice struct {
	ID         uuid.UUID
	Operation  string
	Reason     string
	ReaderID   ReaderID
	Identifier string
	OccurredAt time.Time
	Err        error
}

// NoticeHandler receives notices for rejected operations.
type NoticeHandler func(Notice)

func buildNotice(operation string, readerID ReaderID, identifier string, cause error, occurredAt time.Time) Notice {
	return Notice{
		ID:         uuid.New(),
		Operation:  operation,
		Reason:     cause.Error(),
		ReaderID:   readerID,
		Identifier: identifier,
		OccurredAt: occurredAt.UTC(),
		Err:        fmt.Errorf("%s: %w", operation, cause),
	}
}

// Message returns the human-readable text of the notice, e.g. "Reader not found.".
func (n Notice) Message() string {
	switch {
	case errors.Is(n.Err, ErrReaderNotFound):
		return "Reader not found."
	case errors.Is(n.Err, ErrItemNotFound):
		return "Item not found."
	default:
		return n.Reason
	}
}
