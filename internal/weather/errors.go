package weather

import "fmt"

// FetchError reports a failed transport call or a non-success response
// from the forecast provider.
type FetchError struct {
	Provider   string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: fetch forecast: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: fetch forecast: %v", e.Provider, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a response body that does not match RawForecast.
type ParseError struct {
	Provider string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: parse forecast: %v", e.Provider, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
