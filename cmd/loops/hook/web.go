package hook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Web is a webhook notifying loop cycles over HTTP.
//
// The value T is posted as a JSON payload to each URL, in order.
// A URL answering with a 2xx status code accepts the notification;
// any other answer (or an unreachable server) fails the hook, and
// the remaining URLs are not called. Response bodies are ignored,
// except to quote them in the error message.
type Web[T any] struct {
	// BeforeURL is a list of URLs to notify before processing the value T.
	BeforeURL []*url.URL

	// AfterURL is a list of URLs to notify after processing the value T.
	AfterURL []*url.URL
}

func (w Web[T]) notify(value T, urls []*url.URL) error {
	if len(urls) == 0 {
		return nil
	}

	body, err := json.Marshal(value)
	if err != nil {
		return err
	}

	for _, u := range urls {
		if err := w.post(u.String(), body); err != nil {
			return err
		}
	}
	return nil
}

func (w Web[T]) post(dest string, body []byte) error {
	resp, err := http.Post(dest, "application/json", bytes.NewReader(body))
	if err != nil {
		return errors.Join(err, ErrHookFailed)
	}
	defer resp.Body.Close()

	if 200 <= resp.StatusCode && resp.StatusCode < 300 {
		return nil
	}

	// quote at most 1KiB of the answer. it is for humans reading logs.
	quote, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if len(quote) == 0 {
		return fmt.Errorf("%w (%s %d)", ErrHookFailed, dest, resp.StatusCode)
	}
	return fmt.Errorf(
		"%w (%s %d): %s", ErrHookFailed, dest, resp.StatusCode, string(quote),
	)
}

func (w Web[T]) Before(value T) error {
	return w.notify(value, w.BeforeURL)
}

func (w Web[T]) After(value T) error {
	return w.notify(value, w.AfterURL)
}
