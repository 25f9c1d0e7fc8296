package service

import (
	"errors"

	"github.com/campushub/campus-hub-api/pkg/docstore"
	appErrors "github.com/campushub/campus-hub-api/pkg/errors"
)

// storeFailure maps a repository failure onto the API error taxonomy. An
// unreachable backing store surfaces as TRANSPORT_ERROR; anything else is an
// internal error.
func storeFailure(err error, message string) error {
	if errors.Is(err, docstore.ErrUnavailable) {
		return appErrors.Wrap(err, appErrors.ErrTransport.Code, appErrors.ErrTransport.Status, message)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}
