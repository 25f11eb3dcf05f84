package fetchers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const (
	XEBuildID           = "lFsrCXsUT1R4egR02xO0Y"
	XEURLTemplate       = "https://www.xe.com/_next/data/%s/en/currencytables.json"
	ExchangeRatesAPIURL = "https://api.exchangeratesapi.io"

	dateLayout = "2006-01-02"
)

var (
	ErrClient            = errors.New("client error")
	ErrServer            = errors.New("server error")
	ErrUnknown           = errors.New("unknown error")
	ErrMalformedResponse = errors.New("malformed response")
	ErrFetcherNotFound   = errors.New("fetcher is not found")
)

func getData(ctx context.Context, url string) (*http.Request, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)

	if err != nil {
		return nil, err
	}

	req.Header.Add("Accept", "application/json")

	return req, nil
}

func handleHTTPStatusCodeError(res *http.Response) error {
	if res.StatusCode == http.StatusOK {
		return nil
	}

	if res.StatusCode >= http.StatusBadRequest && res.StatusCode < http.StatusInternalServerError {
		return fmt.Errorf("%w: status %d", ErrClient, res.StatusCode)
	}

	if res.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: status %d", ErrServer, res.StatusCode)
	}

	return fmt.Errorf("%w: status %d", ErrUnknown, res.StatusCode)
}

func doRequest(client *http.Client, req *http.Request) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	res, err := client.Do(req)

	if err != nil {
		return nil, err
	}

	defer res.Body.Close()

	if err := handleHTTPStatusCodeError(res); err != nil {
		return nil, err
	}

	return io.ReadAll(res.Body)
}
