package source

import (
	"errors"
	"fmt"
)

// ErrNoSource indicates that neither a CSV URL nor a values-API token was
// configured. It surfaces as a configuration banner, not a fetch failure.
var ErrNoSource = errors.New("no data source configured")

// TransportError carries the HTTP status of a failed upstream request so
// the presentation layer can show it in the error banner.
type TransportError struct {
	Source     string
	StatusCode int
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s fetch failed: upstream returned status %d", e.Source, e.StatusCode)
}

// AsTransportError unwraps err to a *TransportError when present.
func AsTransportError(err error) (*TransportError, bool) {
	var te *TransportError
	ok := errors.As(err, &te)
	return te, ok
}
