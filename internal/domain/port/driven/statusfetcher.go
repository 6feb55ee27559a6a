package driven

import (
	"context"

	"github.com/ericfisherdev/hwnotify/internal/domain/model"
)

// StatusFetcher defines the driven port for the homework status API.
type StatusFetcher interface {
	// FetchStatuses requests every status change since cursor and returns the
	// decoded JSON body without any shape checks. Transport failures, non-200
	// responses and undecodable bodies are reported as *model.UpstreamError.
	FetchStatuses(ctx context.Context, cursor model.Cursor) (any, error)
}
