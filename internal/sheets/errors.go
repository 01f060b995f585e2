package sheets

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Veraticus/warikan/internal/common"
	"google.golang.org/api/googleapi"
)

// classifyAPIError maps Sheets API failures onto the retry policy: 429 is a
// rate limit, 5xx and transport errors are retried, any other 4xx is final.
func classifyAPIError(err error) error {
	var apiErr *googleapi.Error
	if err == nil || !errors.As(err, &apiErr) {
		return err
	}
	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", common.ErrRateLimit, err)
	case apiErr.Code >= http.StatusInternalServerError:
		return err
	case apiErr.Code >= http.StatusBadRequest:
		return common.Permanent(err)
	default:
		return err
	}
}
